// Package codesign re-applies an ad-hoc signature to a macOS application
// bundle after its framework binary has been patched. Patching invalidates
// the existing signature and arm64 macOS refuses to launch unsigned code.
package codesign

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultTool is the signing binary looked up on PATH.
const DefaultTool = "codesign"

// ErrSignFailed is matched by every *Error.
var ErrSignFailed = errors.New("codesign: ad-hoc signing failed")

// Error reports a signing run that did not exit cleanly.
type Error struct {
	Bundle string // bundle that was being signed
	Status int    // exit status, -1 if the tool never ran
	Stderr string // tool diagnostics
	Cause  error  // launch failure, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("codesign: ad-hoc signing of %s failed with status %d", e.Bundle, e.Status)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes ErrSignFailed and the launch failure.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrSignFailed, e.Cause}
	}
	return []error{ErrSignFailed}
}

// Runner executes name with args and reports its stderr and exit status. A
// non-nil error means the process could not be run at all.
type Runner func(name string, args ...string) (stderr []byte, status int, err error)

// Signer runs the signing tool.
type Signer struct {
	Tool string
	run  Runner
}

// New returns a Signer that invokes DefaultTool through os/exec.
func New() *Signer {
	return &Signer{Tool: DefaultTool, run: execRunner}
}

// NewWithRunner returns a Signer that hands every invocation to run.
func NewWithRunner(run Runner) *Signer {
	return &Signer{Tool: DefaultTool, run: run}
}

// Args returns the argument list used to ad-hoc sign bundle, preserving the
// entitlements, requirements, flags and hardened-runtime setting of the
// existing signature.
func Args(bundle string) []string {
	return []string{
		"--sign", "-",
		"--force",
		"--preserve-metadata=entitlements,requirements,flags,runtime",
		"--deep",
		bundle,
	}
}

// Sign ad-hoc signs bundle.
func (s *Signer) Sign(bundle string) error {
	tool := s.Tool
	if tool == "" {
		tool = DefaultTool
	}
	run := s.run
	if run == nil {
		run = execRunner
	}
	stderr, status, err := run(tool, Args(bundle)...)
	if err != nil {
		return &Error{Bundle: bundle, Status: -1, Stderr: string(stderr), Cause: err}
	}
	if status != 0 {
		return &Error{Bundle: bundle, Status: status, Stderr: string(stderr)}
	}
	return nil
}

func execRunner(name string, args ...string) ([]byte, int, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stderr.Bytes(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return stderr.Bytes(), -1, err
	}
	return stderr.Bytes(), 0, nil
}

// BundleRoot returns the enclosing .app bundle of path, if any: everything up
// to and including the first ".app" component.
func BundleRoot(path string) (string, bool) {
	i := strings.Index(path, ".app")
	if i < 0 {
		return "", false
	}
	return path[:i] + ".app", true
}
