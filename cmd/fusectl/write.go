package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

var (
	writeConfig            string
	writeVersion           uint8
	writeStrict            bool
	writeIgnoreUnsupported bool
	writeResetSignature    bool
	writeBackup            bool
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVar(&writeConfig, "config", "", "YAML fuse config file")
	cmd.Flags().Uint8Var(&writeVersion, "fuse-version", 0, "Fuse wire version the settings are written for (default 1, or the --config version)")
	cmd.Flags().BoolVar(&writeStrict, "strict", false, "Require every fuse of the binary to be set")
	cmd.Flags().BoolVar(&writeIgnoreUnsupported, "ignore-unsupported", false, "Skip fuses this binary does not have")
	cmd.Flags().BoolVar(&writeResetSignature, "reset-adhoc-signature", false, "Ad-hoc re-sign the .app bundle afterwards")
	cmd.Flags().BoolVar(&writeBackup, "backup", false, "Create <binary>.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <app-or-binary> [Fuse=on|off ...]",
		Short: "Flip fuses in place",
		Long: `The write command sets fuses in an Electron binary. Settings come from a
YAML config file, from Fuse=value arguments, or both (arguments win). Fuses
that are not mentioned keep their current value unless --strict is given.

Example:
  fusectl write /Applications/My.app RunAsNode=off EnableCookieEncryption=on
  fusectl write ./electron --config fuses.yaml --strict
  fusectl write My.app OnlyLoadAppFromAsar=on --reset-adhoc-signature`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	target := args[0]

	cfg, err := buildConfig(args[1:])
	if err != nil {
		return err
	}
	if len(cfg.Fuses) == 0 && !cfg.StrictlyRequireAllFuses {
		return errors.New("no fuses to set\nUsage: fusectl write <app-or-binary> [Fuse=on|off ...]")
	}

	printVerbose("Patching: %s\n", fuses.ResolveBinaryPath(target))

	opts := &fuses.Options{Logger: logger(), CreateBackup: writeBackup}
	report, err := fuses.Patch(target, cfg, opts)
	if err != nil {
		return fmt.Errorf("failed to write fuses: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}

	for _, w := range report.Warnings {
		if !quiet {
			fmt.Fprintf(os.Stderr, "%s %s\n", warnStyle.Render("Warning:"), w.String())
		}
	}
	printInfo("Processed %d fuse wire(s), %d changed\n", report.Count(), report.Written())
	if report.Backup != "" {
		printInfo("Backup: %s\n", report.Backup)
	}
	if report.Signed {
		printInfo("Ad-hoc signature reset\n")
	}
	return nil
}

// buildConfig merges the --config file with Fuse=value arguments and the
// policy flags.
func buildConfig(assignments []string) (*fuses.Config, error) {
	v := fuses.V1
	if writeVersion != 0 {
		v = fuses.Version(writeVersion)
	}
	cfg := fuses.PartialConfig(v, nil)
	if writeConfig != "" {
		loaded, err := fuses.LoadConfigFile(writeConfig)
		if err != nil {
			return nil, err
		}
		if writeVersion != 0 && loaded.Version != v {
			return nil, fmt.Errorf("--fuse-version %d does not match version %d in %s", v, loaded.Version, writeConfig)
		}
		cfg = loaded
	}
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid fuse setting %q, expected Fuse=on|off", a)
		}
		f, err := fuses.Lookup(cfg.Version, name)
		if err != nil {
			return nil, err
		}
		enabled, err := parseSwitch(value)
		if err != nil {
			return nil, fmt.Errorf("fuse %s: %w", name, err)
		}
		cfg.Set(f, enabled)
	}
	cfg.StrictlyRequireAllFuses = cfg.StrictlyRequireAllFuses || writeStrict
	cfg.IgnoreUnsupportedFuses = cfg.IgnoreUnsupportedFuses || writeIgnoreUnsupported
	cfg.ResetAdHocDarwinSignature = cfg.ResetAdHocDarwinSignature || writeResetSignature
	return cfg, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "enable", "enabled", "yes":
		return true, nil
	case "off", "false", "0", "disable", "disabled", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q, expected on or off", s)
	}
}
