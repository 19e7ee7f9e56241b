// Package locate finds the fuse wire sentinel inside a binary image.
//
// Two strategies are provided. Find streams the file through a Scanner and
// records the first and last occurrence, which is what a patch needs: a
// universal binary carries one wire per architecture slice and both must be
// rewritten. FindFirst maps the file and stops at the first occurrence, which
// is enough to report the current configuration.
package locate

import "bytes"

// Scanner is the rolling-window state of a streaming sentinel search. Chunks
// are fed in file order; a match that straddles two chunks is still seen
// because the window keeps the last len(pattern)-1 bytes of what came before.
//
// The zero value is not usable; call NewScanner.
type Scanner struct {
	pattern   []byte
	window    []byte // retained tail followed by the current chunk
	windowPos int64  // absolute offset of window[0]
	consumed  int64  // total bytes fed
	first     int64
	last      int64
	firstOnly bool
}

// NewScanner returns a scanner for pattern. With firstOnly set, Done reports
// true as soon as one match has been seen.
func NewScanner(pattern []byte, firstOnly bool) *Scanner {
	return &Scanner{
		pattern:   pattern,
		first:     -1,
		last:      -1,
		firstOnly: firstOnly,
	}
}

// Feed processes the next chunk of the file. The scanner copies what it
// retains, so chunk may be reused by the caller.
func (s *Scanner) Feed(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	s.window = append(s.window, chunk...)
	s.consumed += int64(len(chunk))

	if s.first < 0 {
		if i := bytes.Index(s.window, s.pattern); i >= 0 {
			s.first = s.windowPos + int64(i)
		}
	}
	if !s.firstOnly {
		// The retained tail is shorter than the pattern, so any match found
		// here ends inside the new chunk and is later than the previous one.
		if i := bytes.LastIndex(s.window, s.pattern); i >= 0 {
			s.last = s.windowPos + int64(i)
		}
	}
	s.trim()
}

// trim drops everything except the suffix that could begin a match spanning
// into the next chunk.
func (s *Scanner) trim() {
	keep := len(s.pattern) - 1
	if keep < 0 {
		keep = 0
	}
	if len(s.window) <= keep {
		return
	}
	drop := len(s.window) - keep
	s.windowPos += int64(drop)
	n := copy(s.window, s.window[drop:])
	s.window = s.window[:n]
}

// Done reports whether more input cannot change the result.
func (s *Scanner) Done() bool {
	return s.firstOnly && s.first >= 0
}

// First returns the offset of the first occurrence, or -1.
func (s *Scanner) First() int64 { return s.first }

// Last returns the offset of the last occurrence, or -1. In firstOnly mode it
// mirrors First.
func (s *Scanner) Last() int64 {
	if s.firstOnly {
		return s.first
	}
	return s.last
}

// Consumed returns the number of bytes fed so far.
func (s *Scanner) Consumed() int64 { return s.consumed }
