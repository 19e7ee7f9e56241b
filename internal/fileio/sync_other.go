//go:build !linux && !freebsd && !darwin && !windows

package fileio

func fdatasync(uintptr, bool) error {
	return errNoPlatformSync
}
