package fileio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FlushMode controls how hard a Handle pushes patched bytes to stable storage.
type FlushMode int

const (
	// FlushAuto calls fdatasync (fsync on macOS) after a write.
	FlushAuto FlushMode = iota

	// FlushNone leaves flushing to the OS.
	FlushNone

	// FlushFull is FlushAuto plus F_FULLFSYNC on macOS.
	FlushFull
)

// File is the subset of *os.File a Handle needs.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Stat() (os.FileInfo, error)
}

// Handle owns one open binary for the duration of a read or patch. Any I/O
// error closes the file before it is returned; Close is idempotent.
//
// NOT thread-safe.
type Handle struct {
	f      File
	path   string
	closed bool
}

// Open opens path read-only, or read-write when writable is set. The file is
// never created or truncated.
func Open(path string, writable bool) (*Handle, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	return &Handle{f: f, path: path}, nil
}

// NewHandle wraps an already open file.
func NewHandle(f File, path string) *Handle {
	return &Handle{f: f, path: path}
}

// Path returns the path the handle was opened with.
func (h *Handle) Path() string { return h.path }

// Size returns the current length of the file.
func (h *Handle) Size() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, h.fail(fmt.Errorf("stat %s: %w", h.path, err))
	}
	return info.Size(), nil
}

// ReadAt reads exactly n bytes at off.
func (h *Handle) ReadAt(n int, off int64) ([]byte, error) {
	if h.closed {
		return nil, os.ErrClosed
	}
	p := make([]byte, n)
	if err := ReadFullAt(h.f, p, off); err != nil {
		return nil, h.fail(fmt.Errorf("read %s: %w", h.path, err))
	}
	return p, nil
}

// WriteAt writes all of p at off.
func (h *Handle) WriteAt(p []byte, off int64) error {
	if h.closed {
		return os.ErrClosed
	}
	if err := WriteFullAt(h.f, p, off); err != nil {
		return h.fail(fmt.Errorf("write 0x%x at offset %d of %s: %w", p, off, h.path, err))
	}
	return nil
}

// Sync flushes written bytes according to mode.
func (h *Handle) Sync(mode FlushMode) error {
	if h.closed {
		return os.ErrClosed
	}
	if mode == FlushNone {
		return nil
	}
	err := errNoPlatformSync
	if fd, ok := h.f.(interface{ Fd() uintptr }); ok {
		err = fdatasync(fd.Fd(), mode == FlushFull)
	}
	if errors.Is(err, errNoPlatformSync) {
		s, ok := h.f.(interface{ Sync() error })
		if !ok {
			return nil
		}
		err = s.Sync()
	}
	if err != nil {
		return h.fail(fmt.Errorf("sync %s: %w", h.path, err))
	}
	return nil
}

// Close releases the file. Calling it more than once is a no-op.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.f.Close()
}

// fail closes the handle and returns err unchanged; a close failure is dropped.
func (h *Handle) fail(err error) error {
	_ = h.Close()
	return err
}
