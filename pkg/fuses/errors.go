package fuses

import (
	"errors"
	"fmt"

	"github.com/joshuapare/fusekit/internal/codesign"
	"github.com/joshuapare/fusekit/internal/format"
)

var (
	// ErrNotFound indicates the binary has no fuse wire (or is too old to have one).
	ErrNotFound = format.ErrNotFound
	// ErrTruncated indicates the binary ended in the middle of a transfer.
	ErrTruncated = format.ErrTruncated
	// ErrInvalidState indicates a payload byte that is not a known state.
	ErrInvalidState = format.ErrInvalidState
	// ErrUnknownVersion indicates a wire or config version this package has no table for.
	ErrUnknownVersion = errors.New("fuses: unsupported fuse wire version")
	// ErrVersionMismatch indicates the on-disk wire version differs from the config version.
	ErrVersionMismatch = errors.New("fuses: fuse wire version mismatch")
	// ErrUnsupportedFuse indicates a fuse the binary's wire is too short to hold.
	ErrUnsupportedFuse = errors.New("fuses: fuse not supported by this binary")
	// ErrIncompleteConfig indicates strict mode found a fuse the config leaves unset.
	ErrIncompleteConfig = errors.New("fuses: fuse not specified in strict config")
	// ErrSignFailed indicates the ad-hoc re-signing step failed.
	ErrSignFailed = codesign.ErrSignFailed
)

// FuseError ties a configuration failure to the fuse that caused it.
type FuseError struct {
	Op   string // "validate", "configure" or "require"
	Fuse Fuse
	Name string
	Err  error
}

// Error implements the error interface.
func (e *FuseError) Error() string {
	switch {
	case e.Op == "validate":
		return fmt.Sprintf("fuses: %s is not a valid fuse position: %v", e.Name, e.Err)
	case errors.Is(e.Err, ErrUnsupportedFuse):
		return fmt.Sprintf("fuses: trying to %s %s but the fuse wire in this binary is not long enough: %v",
			e.Op, e.Name, e.Err)
	case errors.Is(e.Err, ErrIncompleteConfig):
		return fmt.Sprintf("fuses: %s is not specified and strict mode requires every fuse: %v", e.Name, e.Err)
	default:
		return fmt.Sprintf("fuses: %s %s: %v", e.Op, e.Name, e.Err)
	}
}

// Unwrap returns the underlying error for error unwrapping.
func (e *FuseError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal finding of a patch.
type Warning struct {
	Region int    `json:"region"` // index of the wire, 0 or 1
	Offset int64  `json:"offset"` // header offset of that wire
	Fuse   Fuse   `json:"fuse"`
	Name   string `json:"name"`
}

// String describes the warning.
func (w Warning) String() string {
	return fmt.Sprintf("overriding fuse %q that has been marked as removed, setting this fuse is a noop", w.Name)
}
