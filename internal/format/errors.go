package format

import "errors"

var (
	// ErrNotFound indicates the sentinel is absent or too close to the end of
	// the file to carry a header.
	ErrNotFound = errors.New(
		"format: could not find a fuse wire in the provided binary, fuses are only supported in " +
			MinSupportedGeneration + " and higher",
	)
	// ErrTruncated indicates the data ended before the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated binary")
	// ErrInvalidState indicates a payload byte outside the four known states.
	ErrInvalidState = errors.New("format: invalid fuse state")
	// ErrPayloadTooLong indicates a payload that cannot be described by a one-byte length.
	ErrPayloadTooLong = errors.New("format: payload exceeds 255 bytes")
)
