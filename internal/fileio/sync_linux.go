//go:build linux || freebsd

package fileio

import "golang.org/x/sys/unix"

// fdatasync flushes file data; full is ignored on Linux/FreeBSD.
func fdatasync(fd uintptr, _ bool) error {
	return unix.Fdatasync(int(fd))
}
