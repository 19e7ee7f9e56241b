package locate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/fusekit/internal/buf"
	"github.com/joshuapare/fusekit/internal/format"
	"github.com/joshuapare/fusekit/internal/mmfile"
)

// DefaultChunkSize is the read size used by Find when none is given.
const DefaultChunkSize = 64 * 1024

// Result describes where the wire header(s) sit in a file.
type Result struct {
	// Offsets holds one entry per region, each pointing just past the
	// sentinel (i.e. at the header). One entry for a normal binary, two for a
	// universal binary, in file order.
	Offsets []int64

	// Size is the file length observed during the scan.
	Size int64
}

// Universal reports whether two regions were found.
func (r Result) Universal() bool { return len(r.Offsets) > 1 }

// Find streams the file at path and returns every region to patch. chunkSize
// values below 1 select DefaultChunkSize.
func Find(path string, chunkSize int) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return Scan(f, chunkSize)
}

// Scan is Find over an arbitrary reader.
func Scan(r io.Reader, chunkSize int) (Result, error) {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	s := NewScanner(format.Sentinel, false)
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		s.Feed(chunk[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("locate: scan at offset %d: %w", s.Consumed(), err)
		}
	}
	return resolve(s.First(), s.Last(), s.Consumed())
}

// ScanFirst streams r until the first sentinel and returns that region alone.
// The reported Size is only the number of bytes read, which always covers the
// header when a match is accepted.
func ScanFirst(r io.Reader, chunkSize int) (Result, error) {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	s := NewScanner(format.Sentinel, true)
	chunk := make([]byte, chunkSize)
	need := int64(len(format.Sentinel)) + format.HeaderSize
	for {
		n, err := r.Read(chunk)
		s.Feed(chunk[:n])
		if s.Done() && s.Consumed() >= s.First()+need {
			break
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("locate: scan at offset %d: %w", s.Consumed(), err)
		}
	}
	return resolve(s.First(), s.First(), s.Consumed())
}

// FindFirst maps the file at path and returns only the first region. It is
// the fast path for read-only queries.
func FindFirst(path string) (Result, error) {
	data, release, err := mmfile.Map(path)
	if errors.Is(err, os.ErrNotExist) {
		return Result{}, err
	}
	if err != nil {
		// Not mappable (special file, too large for the address space).
		f, openErr := os.Open(path)
		if openErr != nil {
			return Result{}, openErr
		}
		defer f.Close()
		return ScanFirst(f, DefaultChunkSize)
	}
	defer release()

	first := int64(bytes.Index(data, format.Sentinel))
	return resolve(first, first, int64(len(data)))
}

// resolve turns raw match positions into header offsets. A single match, or
// first == last, is one region; distinct first and last are two.
func resolve(first, last, size int64) (Result, error) {
	if first < 0 {
		return Result{}, format.ErrNotFound
	}
	sentinelLen := int64(len(format.Sentinel))
	if _, err := buf.CheckRegion(size, last, sentinelLen+format.HeaderSize); err != nil {
		return Result{}, fmt.Errorf("%w (%v)", format.ErrNotFound, err)
	}
	res := Result{Size: size}
	if first != last {
		res.Offsets = []int64{first + sentinelLen, last + sentinelLen}
	} else {
		res.Offsets = []int64{first + sentinelLen}
	}
	return res, nil
}
