package fuses

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// v1Names is indexed by Fuse.
var v1Names = []string{
	RunAsNode:                             "RunAsNode",
	EnableCookieEncryption:                "EnableCookieEncryption",
	EnableNodeOptionsEnvironmentVariable:  "EnableNodeOptionsEnvironmentVariable",
	EnableNodeCliInspectArguments:         "EnableNodeCliInspectArguments",
	EnableEmbeddedAsarIntegrityValidation: "EnableEmbeddedAsarIntegrityValidation",
	OnlyLoadAppFromAsar:                   "OnlyLoadAppFromAsar",
	LoadBrowserProcessSpecificV8Snapshot:  "LoadBrowserProcessSpecificV8Snapshot",
	GrantFileProtocolExtraPrivileges:      "GrantFileProtocolExtraPrivileges",
}

var tables = map[Version][]string{
	V1: v1Names,
}

// Supported reports whether v has a known fuse table.
func Supported(v Version) bool {
	_, ok := tables[v]
	return ok
}

// KnownFuses returns every fuse the table for v names, in position order.
func KnownFuses(v Version) []Fuse {
	names := tables[v]
	out := make([]Fuse, len(names))
	for i := range names {
		out[i] = Fuse(i)
	}
	return out
}

// Name returns the table name of f, or "fuse#N" for positions the table does
// not know about (wires newer than this package).
func Name(v Version, f Fuse) string {
	names := tables[v]
	if f >= 0 && int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("fuse#%d", int(f))
}

// Lookup resolves a fuse by name. Matching is case-insensitive under Unicode
// case folding. Raw positions are accepted as "7" or "fuse#7".
func Lookup(v Version, name string) (Fuse, error) {
	names, ok := tables[v]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownVersion, v)
	}
	name = strings.TrimSpace(name)
	if n, err := strconv.Atoi(strings.TrimPrefix(name, "fuse#")); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("fuses: negative fuse position %d: %w", n, ErrUnsupportedFuse)
		}
		return Fuse(n), nil
	}
	fold := cases.Fold()
	want := fold.String(name)
	for i, candidate := range names {
		if fold.String(candidate) == want {
			return Fuse(i), nil
		}
	}
	return 0, fmt.Errorf("fuses: unknown fuse %q for version %d: %w", name, v, ErrUnsupportedFuse)
}
