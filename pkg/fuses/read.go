package fuses

import (
	"fmt"

	"github.com/joshuapare/fusekit/internal/buf"
	"github.com/joshuapare/fusekit/internal/fileio"
	"github.com/joshuapare/fusekit/internal/format"
	"github.com/joshuapare/fusekit/internal/locate"
)

// Read returns the first fuse wire of the binary at path. path may be an
// executable or a .app bundle. For universal binaries both wires are
// expected to agree; use ReadAll to see each.
func Read(path string, opts *Options) (*Wire, error) {
	o := opts.withDefaults()
	bin := ResolveBinaryPath(path)

	loc, err := locate.FindFirst(bin)
	if err != nil {
		return nil, fmt.Errorf("fuses: locate wire in %s: %w", bin, err)
	}
	o.Logger.Debug("located fuse wire", "path", bin, "offset", loc.Offsets[0])

	h, err := fileio.Open(bin, false)
	if err != nil {
		return nil, fmt.Errorf("fuses: %w", err)
	}
	defer h.Close()

	w, err := readWire(h, loc.Size, loc.Offsets[0])
	if err != nil {
		return nil, err
	}
	if !Supported(w.Version) {
		return nil, fmt.Errorf("%w: %d found in %s", ErrUnknownVersion, w.Version, bin)
	}
	return w, nil
}

// ReadAll returns every fuse wire of the binary at path: one for a normal
// build, two for a universal build.
func ReadAll(path string, opts *Options) ([]*Wire, error) {
	o := opts.withDefaults()
	bin := ResolveBinaryPath(path)

	loc, err := locate.Find(bin, o.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("fuses: locate wire in %s: %w", bin, err)
	}
	o.Logger.Debug("located fuse wires", "path", bin, "offsets", loc.Offsets)

	h, err := fileio.Open(bin, false)
	if err != nil {
		return nil, fmt.Errorf("fuses: %w", err)
	}
	defer h.Close()

	wires := make([]*Wire, 0, len(loc.Offsets))
	for _, off := range loc.Offsets {
		w, err := readWire(h, loc.Size, off)
		if err != nil {
			return nil, err
		}
		if !Supported(w.Version) {
			return nil, fmt.Errorf("%w: %d found in %s at offset %d", ErrUnknownVersion, w.Version, bin, off)
		}
		wires = append(wires, w)
	}
	return wires, nil
}

// readWire decodes the header at off and the payload it declares. A payload
// that would run past the end of the file means there is no usable wire.
func readWire(h *fileio.Handle, size, off int64) (*Wire, error) {
	raw, err := h.ReadAt(format.HeaderSize, off)
	if err != nil {
		return nil, fmt.Errorf("fuses: header: %w", err)
	}
	hdr, err := format.ParseHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("fuses: %w", err)
	}
	payloadOff := off + format.PayloadOffset
	if _, err := buf.CheckRegion(size, payloadOff, int64(hdr.PayloadLen())); err != nil {
		return nil, fmt.Errorf("fuses: payload of %d bytes at offset %d: %w (%v)",
			hdr.PayloadLen(), payloadOff, ErrNotFound, err)
	}
	payload, err := h.ReadAt(hdr.PayloadLen(), payloadOff)
	if err != nil {
		return nil, fmt.Errorf("fuses: payload: %w", err)
	}
	states, err := format.DecodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("fuses: wire at offset %d: %w", off, err)
	}
	return &Wire{Version: Version(hdr.Version), States: states, Offset: off}, nil
}
