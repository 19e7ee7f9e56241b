// Package mmfile provides a read-only, whole-file view of a binary image:
// memory-mapped where the platform supports it, read into memory otherwise.
package mmfile

func noop() error { return nil }
