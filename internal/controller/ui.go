// Package controller provides output adapters for displaying scan results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithScanMode sets the UI to live scan mode. This is the default.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithViewMode sets the UI to replay a saved report.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeScan}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// ScanInfo describes a run before any file is scanned.
type ScanInfo struct {
	Root      m.Path
	Workers   int
	QueueSize int
	Engine    string
	Rules     int
}

// UI is the result sink of the scanning pipeline. DisplayMatch is called
// concurrently by every worker; implementations serialize their output.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayScanInfo(ctx context.Context, info ScanInfo)
	DisplayMatch(ctx context.Context, result m.MatchResult)
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// NewUI picks the interactive TUI when requested and the output is a
// terminal, and the plain console UI otherwise.
func NewUI(cmd *cobra.Command, tui bool) UI {
	out := cmd.OutOrStdout()
	if tui && IsTTY(out) {
		return NewTUI(out)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
