package fuses

import (
	"github.com/joshuapare/fusekit/internal/fileio"
	"github.com/joshuapare/fusekit/internal/format"
)

// Version identifies the layout of a fuse wire.
type Version uint8

// V1 is the only wire layout shipped so far.
const V1 Version = 1

// Fuse is a position in the wire payload.
type Fuse int

// V1 fuse positions.
const (
	RunAsNode Fuse = iota
	EnableCookieEncryption
	EnableNodeOptionsEnvironmentVariable
	EnableNodeCliInspectArguments
	EnableEmbeddedAsarIntegrityValidation
	OnlyLoadAppFromAsar
	LoadBrowserProcessSpecificV8Snapshot
	GrantFileProtocolExtraPrivileges
)

// State is the on-disk value of one fuse.
type State = format.State

const (
	Enable  = format.StateEnable
	Disable = format.StateDisable
	Inherit = format.StateInherit
	Removed = format.StateRemoved
)

// FromBool is the state an explicit request writes: Enable or Disable.
func FromBool(enabled bool) State { return format.FromBool(enabled) }

// FlushMode controls durability of a patch; see Options.Flush.
type FlushMode = fileio.FlushMode

const (
	FlushAuto = fileio.FlushAuto
	FlushNone = fileio.FlushNone
	FlushFull = fileio.FlushFull
)

// Wire is the decoded content of one fuse wire.
type Wire struct {
	// Version is the on-disk format version.
	Version Version `json:"version"`

	// States holds one entry per payload byte, in position order.
	States []State `json:"states"`

	// Offset is the file offset of the header (just past the sentinel).
	Offset int64 `json:"offset"`
}

// Get returns the state of f, or false if the wire is too short to hold it.
func (w *Wire) Get(f Fuse) (State, bool) {
	if f < 0 || int(f) >= len(w.States) {
		return 0, false
	}
	return w.States[f], true
}

// Entry is one named fuse of a Wire.
type Entry struct {
	Fuse  Fuse   `json:"fuse"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Entries lists every fuse of the wire with its name from the version table.
func (w *Wire) Entries() []Entry {
	out := make([]Entry, len(w.States))
	for i, s := range w.States {
		out[i] = Entry{Fuse: Fuse(i), Name: Name(w.Version, Fuse(i)), State: s.String()}
	}
	return out
}
