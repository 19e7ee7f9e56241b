//go:build darwin

package fileio

import "golang.org/x/sys/unix"

// fdatasync uses F_FULLFSYNC when full is set so the drive cache is flushed
// too. macOS has no fdatasync; plain fsync is the default.
func fdatasync(fd uintptr, full bool) error {
	if full {
		_, err := unix.FcntlInt(fd, unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(fd))
}
