//go:build !linux && !darwin && !freebsd && !windows

package mmfile

import "os"

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noop, err
	}
	return data, noop, nil
}
