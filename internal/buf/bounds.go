// Package buf holds overflow-safe offset arithmetic shared by the locator and
// the wire codec. File offsets are int64 throughout; slice offsets are int.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRegion validates that n bytes starting at off fit inside a file of
// size bytes. Returns the end offset if valid, or an error describing the
// specific failure (overflow or out of bounds).
//
//	end, err := buf.CheckRegion(fileSize, headerOff, format.HeaderSize)
//	if err != nil {
//	    return fmt.Errorf("header: %w", err)
//	}
func CheckRegion(size, off, n int64) (int64, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + len=%d", off, n)
	}
	if end > size {
		return 0, fmt.Errorf("bounds: end=%d > size=%d", end, size)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > math.MaxInt-off {
		return nil, false
	}
	end := off + n
	if end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
