// Package format houses the low-level codec for the fuse wire: the sentinel
// that marks it, the two-byte header that follows, and the state bytes of the
// payload. It knows nothing about files; callers hand it byte slices.
package format

import "fmt"

// Sentinel marks the start of a fuse wire inside a binary image.
// Layout:
//
//	0x00  sentinel (32 bytes, ASCII)
//	0x20  format version (u8)
//	0x21  payload length (u8)
//	0x22  payload (payload length state bytes)
var Sentinel = []byte("dL7pKGdnNz796PbbjQWNKmHXBZaB9tsX")

const (
	// HeaderSize is the number of bytes following the sentinel before the payload.
	HeaderSize = 2

	// Header field offsets, relative to the end of the sentinel.
	VersionOffset = 0x00
	LengthOffset  = 0x01

	// PayloadOffset is where the state bytes begin, relative to the end of the sentinel.
	PayloadOffset = HeaderSize

	// MaxPayloadLen is the largest payload a single length byte can describe.
	MaxPayloadLen = 0xFF

	// MinSupportedGeneration names the oldest build line that carries a fuse wire.
	MinSupportedGeneration = "Electron 12"
)

// State is a single fuse byte.
type State byte

const (
	StateEnable  State = 0
	StateDisable State = 1
	StateInherit State = 2
	StateRemoved State = 3
)

// Valid reports whether s is one of the four encodable states.
func (s State) Valid() bool {
	return s <= StateRemoved
}

// String returns the canonical upper-case name.
func (s State) String() string {
	switch s {
	case StateEnable:
		return "ENABLE"
	case StateDisable:
		return "DISABLE"
	case StateInherit:
		return "INHERIT"
	case StateRemoved:
		return "REMOVED"
	default:
		return "INVALID"
	}
}

// MarshalText encodes the canonical name, so []State renders as a list of
// names rather than base64.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("0x%02x: %w", byte(s), ErrInvalidState)
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts the canonical name.
func (s *State) UnmarshalText(b []byte) error {
	for v := StateEnable; v <= StateRemoved; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("%q: %w", b, ErrInvalidState)
}

// Label returns the human-readable form used in reports.
func (s State) Label() string {
	switch s {
	case StateEnable:
		return "Enabled"
	case StateDisable:
		return "Disabled"
	case StateInherit:
		return "Inherited"
	case StateRemoved:
		return "Removed"
	default:
		return "Invalid"
	}
}

// FromBool maps an explicit request onto ENABLE or DISABLE.
func FromBool(enabled bool) State {
	if enabled {
		return StateEnable
	}
	return StateDisable
}
