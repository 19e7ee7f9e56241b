package format

import (
	"fmt"

	"github.com/joshuapare/fusekit/internal/buf"
)

// Header is the two bytes that follow the sentinel.
type Header struct {
	Version uint8
	Length  uint8
}

// ParseHeader decodes the header from b, which must start right after the sentinel.
func ParseHeader(b []byte) (Header, error) {
	if !buf.Has(b, 0, HeaderSize) {
		return Header{}, fmt.Errorf("header: %w", ErrTruncated)
	}
	return Header{
		Version: b[VersionOffset],
		Length:  b[LengthOffset],
	}, nil
}

// Bytes encodes the header.
func (h Header) Bytes() []byte {
	return []byte{h.Version, h.Length}
}

// PayloadLen is the number of state bytes the header declares.
func (h Header) PayloadLen() int {
	return int(h.Length)
}

// DecodePayload converts raw payload bytes into states. Every byte must be a
// valid state; the first offender is reported by index.
func DecodePayload(b []byte) ([]State, error) {
	if len(b) > MaxPayloadLen {
		return nil, ErrPayloadTooLong
	}
	states := make([]State, len(b))
	for i, v := range b {
		s := State(v)
		if !s.Valid() {
			return nil, fmt.Errorf("position %d: 0x%02x: %w", i, v, ErrInvalidState)
		}
		states[i] = s
	}
	return states, nil
}

// EncodePayload is the inverse of DecodePayload.
func EncodePayload(states []State) ([]byte, error) {
	if len(states) > MaxPayloadLen {
		return nil, ErrPayloadTooLong
	}
	out := make([]byte, len(states))
	for i, s := range states {
		if !s.Valid() {
			return nil, fmt.Errorf("position %d: 0x%02x: %w", i, byte(s), ErrInvalidState)
		}
		out[i] = byte(s)
	}
	return out, nil
}

// EncodeWire builds a complete sentinel + header + payload region. Used to
// produce fixtures and by tooling that stamps a wire into a fresh image.
func EncodeWire(version uint8, states []State) ([]byte, error) {
	payload, err := EncodePayload(states)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(Sentinel)+HeaderSize+len(payload))
	out = append(out, Sentinel...)
	out = append(out, Header{Version: version, Length: uint8(len(payload))}.Bytes()...)
	out = append(out, payload...)
	return out, nil
}
