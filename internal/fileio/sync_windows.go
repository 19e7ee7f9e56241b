//go:build windows

package fileio

import "golang.org/x/sys/windows"

func fdatasync(fd uintptr, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(fd))
}
