package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

var editBackup bool

func init() {
	cmd := newEditCmd()
	cmd.Flags().BoolVar(&editBackup, "backup", false, "Create <binary>.bak before the first write")
	rootCmd.AddCommand(cmd)
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <app-or-binary>",
		Short: "Toggle fuses interactively",
		Long: `The edit command opens a terminal editor over the fuse wire of a binary.
Changes are staged until written with 'w'; every fuse wire of a universal
binary is patched. 'c' copies the resulting settings as a YAML config for
use with 'fusectl write --config'.

Example:
  fusectl edit /Applications/My.app --backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(args)
		},
	}
	return cmd
}

func runEdit(args []string) error {
	target := args[0]

	// The terminal belongs to the editor; library logs would tear the screen.
	opts := &fuses.Options{Logger: slog.New(slog.DiscardHandler), CreateBackup: editBackup}

	w, err := fuses.Read(target, opts)
	if err != nil {
		return fmt.Errorf("failed to read fuses: %w", err)
	}

	p := tea.NewProgram(newEditorModel(target, w, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if m, ok := final.(editorModel); ok && m.status != "" {
		printVerbose("%s\n", m.status)
	}
	return nil
}
