//go:build windows

package mmfile

import "os"

// Map reads the whole file; the scan only needs a read-only view and Windows
// section objects lock the file against the write that usually follows.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noop, err
	}
	return data, noop, nil
}
