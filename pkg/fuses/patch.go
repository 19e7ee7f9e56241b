package fuses

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/fusekit/internal/codesign"
	"github.com/joshuapare/fusekit/internal/fileio"
	"github.com/joshuapare/fusekit/internal/format"
	"github.com/joshuapare/fusekit/internal/locate"
)

// Report describes the outcome of Patch.
type Report struct {
	// Path is the resolved binary that was patched.
	Path string `json:"path"`

	// Regions has one entry per wire, in file order.
	Regions []RegionReport `json:"regions"`

	// Warnings lists removed fuses the config tried to set.
	Warnings []Warning `json:"warnings,omitempty"`

	// Backup is the path of the backup copy, if one was made.
	Backup string `json:"backup,omitempty"`

	// Signed is true when the bundle was re-signed.
	Signed bool `json:"signed"`
}

// Count is the number of wires processed.
func (r *Report) Count() int { return len(r.Regions) }

// Written is the number of wires whose bytes changed.
func (r *Report) Written() int {
	n := 0
	for _, rr := range r.Regions {
		if rr.Written {
			n++
		}
	}
	return n
}

// RegionReport describes one wire of a patch.
type RegionReport struct {
	Offset  int64   `json:"offset"`
	Version Version `json:"version"`
	Before  []State `json:"before"`
	After   []State `json:"after"`
	Written bool    `json:"written"`
}

// Flip applies cfg to the binary at path and returns the number of wires
// processed: 1 for a normal build, 2 for a universal build.
func Flip(path string, cfg *Config, opts *Options) (int, error) {
	r, err := Patch(path, cfg, opts)
	if err != nil {
		return 0, err
	}
	return r.Count(), nil
}

// regionPlan is the fully validated change for one wire.
type regionPlan struct {
	index   int
	wire    *Wire
	payload []byte
	dirty   bool
}

// Patch applies cfg to the binary at path and reports what changed.
//
// Every wire is read and validated before any byte is written, so a config
// error leaves the file untouched. Only wires whose bytes change are
// rewritten; applying the same config twice is a no-op the second time.
func Patch(path string, cfg *Config, opts *Options) (*Report, error) {
	if cfg == nil {
		return nil, errors.New("fuses: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := opts.withDefaults()
	bin := ResolveBinaryPath(path)
	log := o.Logger.With("path", bin)

	loc, err := locate.Find(bin, o.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("fuses: locate wire in %s: %w", bin, err)
	}
	log.Debug("located fuse wires", "offsets", loc.Offsets, "universal", loc.Universal())

	h, err := fileio.Open(bin, true)
	if err != nil {
		return nil, fmt.Errorf("fuses: %w", err)
	}
	defer h.Close()

	report := &Report{Path: bin}
	plans := make([]regionPlan, 0, len(loc.Offsets))
	for i, off := range loc.Offsets {
		p, warnings, err := planRegion(h, loc.Size, i, off, cfg, log)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			log.Warn(w.String(), "fuse", w.Name, "region", w.Region)
			o.OnWarning(w)
		}
		report.Warnings = append(report.Warnings, warnings...)
		plans = append(plans, p)
	}

	dirty := false
	for _, p := range plans {
		dirty = dirty || p.dirty
	}
	if dirty && o.CreateBackup {
		report.Backup = bin + ".bak"
		if err := copyFile(bin, report.Backup); err != nil {
			return nil, fmt.Errorf("fuses: create backup at %s: %w", report.Backup, err)
		}
		log.Debug("created backup", "backup", report.Backup)
	}

	for _, p := range plans {
		if p.dirty {
			off := p.wire.Offset + format.PayloadOffset
			if err := h.WriteAt(p.payload, off); err != nil {
				log.Error("failed to write the fuse wire, it may be corrupted",
					"region", p.index, "offset", off, "bytes", fmt.Sprintf("0x%x", p.payload))
				return nil, fmt.Errorf("fuses: %w", err)
			}
			log.Debug("wrote fuse wire", "region", p.index, "offset", off)
		} else {
			log.Debug("fuse wire unchanged", "region", p.index)
		}
		after, _ := format.DecodePayload(p.payload)
		report.Regions = append(report.Regions, RegionReport{
			Offset:  p.wire.Offset,
			Version: p.wire.Version,
			Before:  p.wire.States,
			After:   after,
			Written: p.dirty,
		})
	}
	if dirty {
		if err := h.Sync(o.Flush); err != nil {
			return nil, fmt.Errorf("fuses: %w", err)
		}
	}
	if err := h.Close(); err != nil {
		return nil, fmt.Errorf("fuses: close %s: %w", bin, err)
	}

	if cfg.ResetAdHocDarwinSignature {
		if app, ok := codesign.BundleRoot(path); ok {
			log.Debug("resetting ad-hoc signature", "bundle", app)
			if err := o.Signer.Sign(app); err != nil {
				return nil, err
			}
			report.Signed = true
		}
	}
	return report, nil
}

// planRegion reads one wire, checks it against cfg and computes the merged
// payload. Fuses marked REMOVED on disk are checked first so an explicit
// value can never overwrite them.
func planRegion(h *fileio.Handle, size int64, index int, off int64, cfg *Config, log *slog.Logger) (regionPlan, []Warning, error) {
	wire, err := readWire(h, size, off)
	if err != nil {
		return regionPlan{}, nil, err
	}
	if wire.Version != cfg.Version {
		return regionPlan{}, nil, fmt.Errorf(
			"%w: provided version %d does not match version %d found in the binary at offset %d",
			ErrVersionMismatch, cfg.Version, wire.Version, off)
	}

	want, err := cfg.desired(len(wire.States), func(f Fuse) {
		log.Debug("ignoring unsupported fuse", "fuse", Name(cfg.Version, f), "wire_length", len(wire.States))
	})
	if err != nil {
		return regionPlan{}, nil, err
	}

	payload := make([]byte, len(wire.States))
	var warnings []Warning
	dirty := false
	for i, cur := range wire.States {
		payload[i] = byte(cur)
		next := want[i]
		if cur == Removed && next != Inherit {
			warnings = append(warnings, Warning{Region: index, Offset: off, Fuse: Fuse(i), Name: Name(cfg.Version, Fuse(i))})
			continue
		}
		if next == Inherit || next == cur {
			continue
		}
		payload[i] = byte(next)
		dirty = true
	}
	return regionPlan{index: index, wire: wire, payload: payload, dirty: dirty}, warnings, nil
}
