// Package fuses reads and flips the fuse wire baked into an Electron binary.
//
// # Overview
//
// A fuse is an immutable-until-patched runtime toggle compiled into the
// framework binary. All fuses of one image live in a single region, the fuse
// wire:
//
//	[sentinel 32 bytes] [version u8] [length u8] [length state bytes]
//
// Each state byte is ENABLE, DISABLE, INHERIT or REMOVED. Universal macOS
// builds carry two images and therefore two wires, both of which are patched.
//
// # Reading
//
//	wire, err := fuses.Read("/Applications/My.app", nil)
//	if err != nil {
//	    return err
//	}
//	state, _ := wire.Get(fuses.RunAsNode)
//
// Read stops at the first wire; ReadAll reports every region.
//
// # Flipping
//
//	cfg := fuses.PartialConfig(fuses.V1, map[fuses.Fuse]bool{
//	    fuses.RunAsNode:              false,
//	    fuses.EnableCookieEncryption: true,
//	})
//	cfg.ResetAdHocDarwinSignature = true
//	n, err := fuses.Flip("/Applications/My.app", cfg, nil)
//
// Fuses absent from a partial config keep their on-disk value. TotalConfig
// requires every known fuse, and strict mode additionally rejects binaries
// whose wire has grown fuses the caller has not decided on. Fuses marked
// REMOVED on disk are never rewritten; attempting to set one produces a
// Warning instead of an error.
//
// # Thread Safety
//
// Calls share no state and may run concurrently on different files.
// Concurrent calls against the same file must be serialised by the caller.
package fuses
