// Package fileio performs exact-length transfers at fixed offsets of an open
// binary. The underlying primitives may move fewer bytes than asked; every
// helper here keeps going until the full range is done or no progress is made.
package fileio

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/fusekit/internal/format"
)

// ReadFullAt fills p from r starting at off. A read that returns zero bytes
// before p is full reports format.ErrTruncated.
func ReadFullAt(r io.ReaderAt, p []byte, off int64) error {
	total := 0
	for total < len(p) {
		n, err := r.ReadAt(p[total:], off+int64(total))
		total += n
		if total == len(p) {
			// io.ReaderAt may pair a complete read with io.EOF.
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if n == 0 {
			return fmt.Errorf("read %d bytes at offset %d, got %d: %w", len(p), off, total, format.ErrTruncated)
		}
	}
	return nil
}

// WriteFullAt writes all of p to w starting at off.
func WriteFullAt(w io.WriterAt, p []byte, off int64) error {
	total := 0
	for total < len(p) {
		n, err := w.WriteAt(p[total:], off+int64(total))
		total += n
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("wrote %d of %d bytes at offset %d: %w", total, len(p), off, format.ErrTruncated)
		}
	}
	return nil
}
