package fuses

import (
	"fmt"
	"maps"
	"slices"

	"github.com/joshuapare/fusekit/internal/format"
)

// Config is a desired fuse configuration. Build one with PartialConfig or
// TotalConfig; the zero value has no version and fails validation.
type Config struct {
	// Version must match the version of every wire in the binary.
	Version Version

	// Fuses maps a position to its desired value. Absent fuses inherit the
	// on-disk value.
	Fuses map[Fuse]bool

	// StrictlyRequireAllFuses makes any fuse of the binary's wire that Fuses
	// leaves unset an error. Set it so a future upgrade that adds fuses cannot
	// silently keep the new fuses' defaults.
	StrictlyRequireAllFuses bool

	// IgnoreUnsupportedFuses drops fuses the binary's wire is too short to
	// hold instead of failing.
	IgnoreUnsupportedFuses bool

	// ResetAdHocDarwinSignature re-signs the enclosing .app bundle after
	// patching. Needed for arm64 macOS builds.
	ResetAdHocDarwinSignature bool
}

// PartialConfig returns a config that sets only the given fuses. The map is copied.
func PartialConfig(v Version, fuses map[Fuse]bool) *Config {
	c := &Config{Version: v, Fuses: make(map[Fuse]bool, len(fuses))}
	maps.Copy(c.Fuses, fuses)
	return c
}

// TotalConfig returns a strict config. Every fuse known for v must be present.
func TotalConfig(v Version, fuses map[Fuse]bool) (*Config, error) {
	c := PartialConfig(v, fuses)
	c.StrictlyRequireAllFuses = true
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Set records a desired value and returns c for chaining.
func (c *Config) Set(f Fuse, enabled bool) *Config {
	if c.Fuses == nil {
		c.Fuses = make(map[Fuse]bool)
	}
	c.Fuses[f] = enabled
	return c
}

// Validate checks the config on its own, before any binary is opened.
func (c *Config) Validate() error {
	if !Supported(c.Version) {
		return fmt.Errorf("%w: %d", ErrUnknownVersion, c.Version)
	}
	for _, f := range c.sortedFuses() {
		// Positions past the end of a wire are judged per binary in desired.
		if f < 0 {
			return &FuseError{Op: "validate", Fuse: f, Name: Name(c.Version, f), Err: ErrUnsupportedFuse}
		}
	}
	if c.StrictlyRequireAllFuses {
		for _, f := range KnownFuses(c.Version) {
			if _, ok := c.Fuses[f]; !ok {
				return &FuseError{Op: "require", Fuse: f, Name: Name(c.Version, f), Err: ErrIncompleteConfig}
			}
		}
	}
	return nil
}

func (c *Config) sortedFuses() []Fuse {
	return slices.Sorted(maps.Keys(c.Fuses))
}

// desired builds the per-position target states for a wire of n fuses. The
// drop callback is told about fuses skipped under IgnoreUnsupportedFuses.
func (c *Config) desired(n int, drop func(Fuse)) ([]State, error) {
	out := make([]State, n)
	for i := range out {
		out[i] = Inherit
	}
	for _, f := range c.sortedFuses() {
		if int(f) >= n {
			if c.IgnoreUnsupportedFuses {
				drop(f)
				continue
			}
			return nil, &FuseError{Op: "configure", Fuse: f, Name: Name(c.Version, f), Err: ErrUnsupportedFuse}
		}
		out[f] = format.FromBool(c.Fuses[f])
	}
	if c.StrictlyRequireAllFuses {
		for i, s := range out {
			if s == Inherit {
				return nil, &FuseError{Op: "require", Fuse: Fuse(i), Name: Name(c.Version, Fuse(i)), Err: ErrIncompleteConfig}
			}
		}
	}
	return out, nil
}
