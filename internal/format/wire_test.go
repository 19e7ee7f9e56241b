package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseHeaderSuccess(t *testing.T) {
	hdr, err := ParseHeader([]byte{1, 8, 0xAA})
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Version != 1 || hdr.PayloadLen() != 8 {
		t.Fatalf("header mismatch: %+v", hdr)
	}
	if !bytes.Equal(hdr.Bytes(), []byte{1, 8}) {
		t.Fatalf("Bytes mismatch: %v", hdr.Bytes())
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	if _, err := ParseHeader([]byte{1}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodePayload(t *testing.T) {
	states, err := DecodePayload([]byte{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	want := []State{StateEnable, StateDisable, StateInherit, StateRemoved}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("position %d: got %v want %v", i, states[i], want[i])
		}
	}
}

func TestDecodePayloadRejectsUnknownByte(t *testing.T) {
	_, err := DecodePayload([]byte{0, 'r'})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestEncodePayloadRejectsInvalidState(t *testing.T) {
	if _, err := EncodePayload([]State{StateEnable, State(9)}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := EncodePayload(make([]State, MaxPayloadLen+1)); !errors.Is(err, ErrPayloadTooLong) {
		t.Fatalf("expected ErrPayloadTooLong, got %v", err)
	}
}

func TestEncodeWireLayout(t *testing.T) {
	wire, err := EncodeWire(1, []State{StateDisable, StateRemoved})
	if err != nil {
		t.Fatalf("EncodeWire: %v", err)
	}
	if !bytes.HasPrefix(wire, Sentinel) {
		t.Fatalf("wire does not start with sentinel")
	}
	tail := wire[len(Sentinel):]
	if !bytes.Equal(tail, []byte{1, 2, 1, 3}) {
		t.Fatalf("unexpected header+payload: %v", tail)
	}
}

func TestStateHelpers(t *testing.T) {
	if FromBool(true) != StateEnable || FromBool(false) != StateDisable {
		t.Fatalf("FromBool mapping wrong")
	}
	if State(4).Valid() {
		t.Fatalf("state 4 must be invalid")
	}
	if StateRemoved.String() != "REMOVED" || State(7).String() != "INVALID" {
		t.Fatalf("unexpected String output")
	}
}

func TestErrNotFoundNamesGeneration(t *testing.T) {
	if !bytes.Contains([]byte(ErrNotFound.Error()), []byte(MinSupportedGeneration)) {
		t.Fatalf("ErrNotFound should mention %q: %v", MinSupportedGeneration, ErrNotFound)
	}
}

func TestStateLabel(t *testing.T) {
	want := map[State]string{
		StateEnable:  "Enabled",
		StateDisable: "Disabled",
		StateInherit: "Inherited",
		StateRemoved: "Removed",
		State(200):   "Invalid",
	}
	for s, label := range want {
		if got := s.Label(); got != label {
			t.Fatalf("%d.Label() = %q, want %q", s, got, label)
		}
	}
}

func TestStateTextRoundTrip(t *testing.T) {
	b, err := StateRemoved.MarshalText()
	if err != nil || string(b) != "REMOVED" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
	var s State
	if err := s.UnmarshalText([]byte("DISABLE")); err != nil || s != StateDisable {
		t.Fatalf("UnmarshalText = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("maybe")); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := State(9).MarshalText(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
