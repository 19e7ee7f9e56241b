package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

var readAll bool

func init() {
	cmd := newReadCmd()
	cmd.Flags().BoolVar(&readAll, "all", false, "Report every fuse wire (both slices of a universal binary)")
	rootCmd.AddCommand(cmd)
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <app-or-binary>",
		Short: "Show the current fuse configuration",
		Long: `The read command locates the fuse wire in an Electron binary and prints the
state of every fuse. A .app bundle is resolved to its framework binary.

Example:
  fusectl read /Applications/Slack.app
  fusectl read ./electron --json
  fusectl read Universal.app --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	return cmd
}

func runRead(args []string) error {
	target := args[0]
	opts := &fuses.Options{Logger: logger()}

	printVerbose("Resolved binary: %s\n", fuses.ResolveBinaryPath(target))

	var wires []*fuses.Wire
	if readAll {
		all, err := fuses.ReadAll(target, opts)
		if err != nil {
			return fmt.Errorf("failed to read fuses: %w", err)
		}
		wires = all
	} else {
		w, err := fuses.Read(target, opts)
		if err != nil {
			return fmt.Errorf("failed to read fuses: %w", err)
		}
		wires = []*fuses.Wire{w}
	}

	if jsonOut {
		type wireJSON struct {
			Version fuses.Version `json:"version"`
			Offset  int64         `json:"offset"`
			Fuses   []fuses.Entry `json:"fuses"`
		}
		out := make([]wireJSON, len(wires))
		for i, w := range wires {
			out[i] = wireJSON{Version: w.Version, Offset: w.Offset, Fuses: w.Entries()}
		}
		return printJSON(map[string]any{"path": target, "wires": out})
	}

	printInfo("Analyzing app: %s\n", valueStyle.Render(filepath.Base(target)))
	for i, w := range wires {
		if len(wires) > 1 {
			printInfo("Fuse wire %d (offset 0x%X):\n", i+1, w.Offset)
		}
		printInfo("Fuse Version: %s\n", valueStyle.Render(fmt.Sprintf("v%d", w.Version)))
		for j, s := range w.States {
			printInfo("  %s is %s\n", nameStyle.Render(fuses.Name(w.Version, fuses.Fuse(j))), renderState(s))
		}
	}
	return nil
}
