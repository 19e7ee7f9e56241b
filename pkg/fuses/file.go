package fuses

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML form of a Config:
//
//	version: 1
//	strict: true
//	ignore_unsupported: false
//	reset_adhoc_darwin_signature: true
//	fuses:
//	  RunAsNode: false
//	  EnableCookieEncryption: true
type fileConfig struct {
	Version                   int             `yaml:"version"`
	Strict                    bool            `yaml:"strict"`
	IgnoreUnsupported         bool            `yaml:"ignore_unsupported"`
	ResetAdHocDarwinSignature bool            `yaml:"reset_adhoc_darwin_signature"`
	Fuses                     map[string]bool `yaml:"fuses"`
}

// ParseConfig decodes a YAML fuse config. Unknown keys are rejected so a
// misspelt policy flag cannot silently fall back to its default. Fuse names
// resolve through Lookup.
func ParseConfig(data []byte) (*Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("fuses: parse config: %w", err)
	}
	if fc.Version == 0 {
		return nil, errors.New("fuses: parse config: version is required")
	}
	if fc.Version < 0 || fc.Version > 0xFF {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, fc.Version)
	}
	v := Version(fc.Version)

	cfg := &Config{
		Version:                   v,
		Fuses:                     make(map[Fuse]bool, len(fc.Fuses)),
		StrictlyRequireAllFuses:   fc.Strict,
		IgnoreUnsupportedFuses:    fc.IgnoreUnsupported,
		ResetAdHocDarwinSignature: fc.ResetAdHocDarwinSignature,
	}
	for name, enabled := range fc.Fuses {
		f, err := Lookup(v, name)
		if err != nil {
			return nil, fmt.Errorf("fuses: parse config: %w", err)
		}
		if _, dup := cfg.Fuses[f]; dup {
			return nil, fmt.Errorf("fuses: parse config: %s given more than once", Name(v, f))
		}
		cfg.Fuses[f] = enabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML fuse config from path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fuses: read config: %w", err)
	}
	return ParseConfig(data)
}

// FormatConfig encodes cfg in the form ParseConfig reads. Fuses are written
// by table name, or as "fuse#N" past the end of the table.
func FormatConfig(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:                   int(cfg.Version),
		Strict:                    cfg.StrictlyRequireAllFuses,
		IgnoreUnsupported:         cfg.IgnoreUnsupportedFuses,
		ResetAdHocDarwinSignature: cfg.ResetAdHocDarwinSignature,
		Fuses:                     make(map[string]bool, len(cfg.Fuses)),
	}
	for f, enabled := range cfg.Fuses {
		fc.Fuses[Name(cfg.Version, f)] = enabled
	}
	data, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("fuses: format config: %w", err)
	}
	return data, nil
}
