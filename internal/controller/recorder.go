package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
	"fastcheck.dev/pkg/fastcheck/pkg/spill"
)

// Recorder is a UI decorator that keeps every match in a spill file so a
// report can be written once the run completes.
type Recorder struct {
	UI

	spill spill.Spill[m.MatchResult]
}

// NewRecorder wraps inner. Matches are spooled to a temp file in dir.
func NewRecorder(inner UI, dir string) (*Recorder, error) {
	s, err := spill.New[m.MatchResult](dir)
	if err != nil {
		return nil, fmt.Errorf("create match spill: %w", err)
	}

	return &Recorder{UI: inner, spill: s}, nil
}

// DisplayMatch records result and forwards it to the wrapped UI.
func (r *Recorder) DisplayMatch(ctx context.Context, result m.MatchResult) {
	if err := r.spill.Append(result); err != nil {
		slog.Error("Failed to record match", "path", result.Path, "error", err)
	}

	r.UI.DisplayMatch(ctx, result)
}

// Report builds a report from the recorded matches, sorted by path.
func (r *Recorder) Report(summary m.Summary) (m.Report, error) {
	report := m.Report{
		Version:     m.CurrentReportVersion,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Matches:     make([]m.MatchResult, 0, r.spill.Len()),
	}

	if summary.EnumerationErr != nil {
		report.Error = summary.EnumerationErr.Error()
	}

	err := r.spill.Range(func(_ uint64, result m.MatchResult) error {
		report.Matches = append(report.Matches, result)
		return nil
	})
	if err != nil {
		return m.Report{}, fmt.Errorf("read recorded matches: %w", err)
	}

	SortMatches(report.Matches)

	return report, nil
}

// Close releases the spill file and closes the wrapped UI.
func (r *Recorder) Close(ctx context.Context) {
	if err := r.spill.Close(); err != nil {
		slog.Warn("Failed to remove match spill", "path", r.spill.Path(), "error", err)
	}

	r.UI.Close(ctx)
}

// SortMatches orders results by path.
func SortMatches(results []m.MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
}
