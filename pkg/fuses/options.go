package fuses

import (
	"io"
	"log/slog"

	"github.com/joshuapare/fusekit/internal/codesign"
)

// Signer re-signs an application bundle after a patch.
type Signer interface {
	Sign(bundle string) error
}

// Options controls Read, ReadAll, Patch and Flip. A nil *Options selects the
// defaults.
type Options struct {
	// Logger receives debug events and removed-fuse warnings.
	// Default: discard.
	Logger *slog.Logger

	// Signer performs the ad-hoc re-sign for ResetAdHocDarwinSignature.
	// Default: the system codesign tool.
	Signer Signer

	// ChunkSize is the read size of the streaming sentinel scan.
	// Default: 64 KiB.
	ChunkSize int

	// OnWarning is called for each warning as it is found.
	OnWarning func(Warning)

	// Flush controls how patched bytes are pushed to disk. Default: FlushAuto.
	Flush FlushMode

	// CreateBackup copies the binary to <binary>.bak before the first byte
	// is written. No backup is made when nothing changes.
	CreateBackup bool
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if out.Signer == nil {
		out.Signer = codesign.New()
	}
	if out.OnWarning == nil {
		out.OnWarning = func(Warning) {}
	}
	return out
}
