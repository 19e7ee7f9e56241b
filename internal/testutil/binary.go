// Package testutil builds synthetic binaries carrying fuse wires so tests do
// not depend on downloading real application builds.
package testutil

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/fusekit/internal/format"
)

// Wire returns sentinel + header + payload for the given states.
func Wire(t *testing.T, version uint8, states ...format.State) []byte {
	t.Helper()
	w, err := format.EncodeWire(version, states)
	if err != nil {
		t.Fatalf("EncodeWire: %v", err)
	}
	return w
}

// Filler returns n deterministic pseudo-random bytes. The same seed always
// yields the same bytes, which keeps failures reproducible.
func Filler(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.UintN(256))
	}
	return out
}

// Concat joins parts into one image.
func Concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Binary returns filler, one wire, filler.
func Binary(t *testing.T, version uint8, states ...format.State) []byte {
	t.Helper()
	return Concat(Filler(4096, 1), Wire(t, version, states...), Filler(2048, 2))
}

// UniversalBinary returns an image holding two independent wires, as a
// two-slice universal build would.
func UniversalBinary(t *testing.T, version uint8, states ...format.State) []byte {
	t.Helper()
	return Concat(
		Filler(3000, 3), Wire(t, version, states...),
		Filler(5000, 4), Wire(t, version, states...),
		Filler(1000, 5),
	)
}

// WriteFile writes data to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// FrameworkBinary is where a macOS bundle keeps the image carrying the wire.
var FrameworkBinary = filepath.Join("Contents", "Frameworks", "Electron Framework.framework", "Electron Framework")

// AppBundle lays out a minimal Electron.app under a temp dir with data as the
// framework binary. It returns the bundle path and the framework binary path.
func AppBundle(t *testing.T, data []byte) (string, string) {
	t.Helper()
	app := filepath.Join(t.TempDir(), "Electron.app")
	bin := filepath.Join(app, FrameworkBinary)
	if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(app, "Contents", "MacOS"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(bin, data, 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return app, bin
}

// ReadFile reads path or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return data
}
