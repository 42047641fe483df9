package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// SimpleUI implements UI by writing plain text to the cobra command output.
type SimpleUI struct {
	cmd *cobra.Command

	mu      sync.Mutex
	ruleClr *color.Color
	warnClr *color.Color
}

// NewSimpleUI creates a new SimpleUI. Colors are only emitted when the
// command output is a terminal.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	ruleClr := color.New(color.FgRed, color.Bold)
	warnClr := color.New(color.FgYellow)

	if !IsTTY(cmd.OutOrStdout()) {
		ruleClr.DisableColor()
		warnClr.DisableColor()
	} else {
		ruleClr.EnableColor()
		warnClr.EnableColor()
	}

	return &SimpleUI{cmd: cmd, ruleClr: ruleClr, warnClr: warnClr}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayScanInfo prints the run configuration.
func (s *SimpleUI) DisplayScanInfo(_ context.Context, info ScanInfo) {
	s.printf("Scanning %s with %d worker(s), queue %d, %d rule(s) [%s]\n",
		info.Root, info.Workers, info.QueueSize, info.Rules, info.Engine)
}

// DisplayMatch prints one match record. The record is written in a single
// call under the lock so concurrent workers never interleave.
func (s *SimpleUI) DisplayMatch(_ context.Context, result m.MatchResult) {
	var b strings.Builder

	fmt.Fprintf(&b, "file: %s matches rules:\n", result.Path)

	for _, rule := range result.Rules {
		fmt.Fprintf(&b, "\t%s\n", s.ruleClr.Sprint(rule))
	}

	s.printf("%s", b.String())
}

// DisplaySummary prints the run counters as a table.
func (s *SimpleUI) DisplaySummary(_ context.Context, summary m.Summary) {
	if summary.EnumerationErr != nil {
		s.printf("%s\n", s.warnClr.Sprintf("enumeration failed: %v", summary.EnumerationErr))
	}

	if summary.Cancelled {
		s.printf("%s\n", s.warnClr.Sprint("scan cancelled before all files were dispatched"))
	}

	s.printf("\n%s", renderSummaryTable(summary))
}

// RuleSourceStatus is one row of the rule listing.
type RuleSourceStatus struct {
	Name  string
	Rules []string
	Err   error
}

// DisplayRuleSources prints the rule sources and the rules they declare.
func (s *SimpleUI) DisplayRuleSources(_ context.Context, sources []RuleSourceStatus) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Rules", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	total, failed := 0, 0

	for _, src := range sources {
		status := "ok"
		if src.Err != nil {
			status = "error: " + src.Err.Error()
			failed++
		}

		total += len(src.Rules)

		table.Append([]string{src.Name, strings.Join(src.Rules, ", "), status})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d source(s)", len(sources)),
		fmt.Sprintf("%d rule(s)", total),
		fmt.Sprintf("%d failed", failed),
	})

	table.Render()

	s.printf("%s", tableBuffer.String())
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	rows := [][2]string{
		{"Root", summary.Root.String()},
		{"Workers", fmt.Sprintf("%d", summary.Workers)},
		{"Rules compiled", fmt.Sprintf("%d", summary.RulesCompiled)},
		{"Rule sources failed", fmt.Sprintf("%d", summary.RuleSourcesFailed)},
		{"Files enumerated", fmt.Sprintf("%d", summary.FilesEnumerated)},
		{"Files scanned", fmt.Sprintf("%d", summary.FilesScanned)},
		{"Files skipped", fmt.Sprintf("%d", summary.FilesSkipped)},
		{"Read errors", fmt.Sprintf("%d", summary.ReadErrors)},
		{"Scan errors", fmt.Sprintf("%d", summary.ScanErrors)},
		{"Worker failures", fmt.Sprintf("%d", summary.WorkerFailures)},
	}

	for _, row := range rows {
		table.Append(row[:])
	}

	table.SetFooter([]string{
		fmt.Sprintf("Matched %d", summary.FilesMatched),
		summary.Duration.Round(time.Millisecond).String(),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
