// Package domain implements the scanning pipeline: enumeration, dispatch,
// the worker pool and the coordinator that joins them.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/controller"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// ErrNoRuleSet is returned when the rule engine yields no rule set at all.
var ErrNoRuleSet = errors.New("rule engine returned no rule set")

// ScanArgs contains the arguments for a scan run.
type ScanArgs struct {
	Root             m.Path
	Workers          int
	QueueSize        int
	Exclude          []string
	MaxFileSize      int64
	SkipUnresolvable bool
	Bundle           m.RuleBundle
	Report           m.Path
}

// ViewArgs contains the arguments for replaying a saved report.
type ViewArgs struct {
	Report m.Path
}

// Workflow coordinates the commands of the CLI.
type Workflow interface {
	// Scan runs the pipeline to completion. Partial failures are logged and
	// counted in the summary; only setup and report errors are returned.
	Scan(ctx context.Context, args ScanArgs) (m.Summary, error)
	View(ctx context.Context, args ViewArgs) error
	InspectRules(bundle m.RuleBundle) []controller.RuleSourceStatus
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	adapter.RuleEngine
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	engine adapter.RuleEngine,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		RuleEngine:      engine,
		UI:              ui,
	}
}

// QueueSize returns the jobs channel capacity: queue when positive,
// otherwise twice the worker count.
func QueueSize(queue, workers int) int {
	if queue > 0 {
		return queue
	}

	return 2 * ClampWorkers(workers)
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.Summary, error) {
	started := time.Now()
	workers := ClampWorkers(args.Workers)
	queue := QueueSize(args.QueueSize, workers)

	summary := m.Summary{Root: args.Root, Workers: workers}

	if args.Report != "" {
		if err := adapter.ValidateReportPath(args.Report); err != nil {
			return summary, err
		}
	}

	ruleSet, errs := w.Compile(args.Bundle)
	if ruleSet == nil {
		return summary, ErrNoRuleSet
	}

	defer func() {
		if err := ruleSet.Close(); err != nil {
			slog.Warn("Failed to release rule set", "error", err)
		}
	}()

	summary.RulesCompiled = len(ruleSet.Identifiers())
	summary.RuleSourcesFailed = len(errs)

	slog.Info("Compiled rules", "engine", w.Name(), "rules", summary.RulesCompiled, "failed_sources", len(errs))

	if err := w.Start(ctx, controller.WithScanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return summary, err
	}

	var recorder *controller.Recorder

	ui := w.UI

	if args.Report != "" {
		rec, err := controller.NewRecorder(w.UI, "")
		if err != nil {
			w.Close(ctx)
			return summary, err
		}

		recorder, ui = rec, rec
	}

	// Closing the recorder removes its spill file and closes the wrapped UI.
	defer ui.Close(ctx)

	ui.DisplayScanInfo(ctx, controller.ScanInfo{
		Root:      args.Root,
		Workers:   workers,
		QueueSize: queue,
		Engine:    w.Name(),
		Rules:     summary.RulesCompiled,
	})

	paths, err := w.Enumerate(ctx, args.Root, adapter.EnumerateOptions{
		Exclude:          args.Exclude,
		SkipUnresolvable: args.SkipUnresolvable,
	})
	if err != nil {
		slog.Error("Failed to enumerate scan root", "root", args.Root, "error", err)

		summary.EnumerationErr = err
		paths = nil
	}

	stats := &Stats{}
	stats.Enumerated.Store(int64(len(paths)))

	jobs := make(chan m.Job, queue)

	pool := NewWorkerPool(ruleSet, ui, workers, stats)
	pool.Start(ctx, jobs)

	if err := NewDispatcher(w.SourceFSAdapter, args.MaxFileSize, stats).Run(ctx, paths, jobs); err != nil {
		slog.Warn("Dispatch stopped early", "error", err)
	}

	pool.Wait()

	stats.Fill(&summary)
	summary.Cancelled = ctx.Err() != nil
	summary.Duration = time.Since(started)

	slog.Info("Scan finished",
		"root", args.Root,
		"scanned", summary.FilesScanned,
		"matched", summary.FilesMatched,
		"duration", summary.Duration)

	ui.DisplaySummary(ctx, summary)

	if recorder != nil {
		if err := w.saveReport(recorder, args.Report, summary); err != nil {
			return summary, err
		}
	}

	ui.Wait(ctx)

	return summary, nil
}

func (w *workflow) saveReport(recorder *controller.Recorder, path m.Path, summary m.Summary) error {
	report, err := recorder.Report(summary)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if err := w.SaveReport(path, report); err != nil {
		slog.Error("Failed to save report", "path", path, "error", err)
		return fmt.Errorf("save report: %w", err)
	}

	slog.Info("Saved report", "path", path, "matches", len(report.Matches))

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	matches := append([]m.MatchResult(nil), report.Matches...)
	controller.SortMatches(matches)

	for _, match := range matches {
		w.DisplayMatch(ctx, match)
	}

	summary := report.Summary
	if report.Error != "" {
		summary.EnumerationErr = errors.New(report.Error)
	}

	w.DisplaySummary(ctx, summary)
	w.Wait(ctx)

	return nil
}

// InspectRules compiles the sources in order, each on top of the sources
// accepted before it, and reports the public rules each one adds. A failing
// source is reported and left out of the following compiles, as a scan would.
func (w *workflow) InspectRules(bundle m.RuleBundle) []controller.RuleSourceStatus {
	sources := bundle.Sources()
	out := make([]controller.RuleSourceStatus, 0, len(sources))

	var accepted []m.RuleSource

	known := make(map[string]bool)

	for _, src := range sources {
		status := controller.RuleSourceStatus{Name: src.Name}

		candidate := append(append([]m.RuleSource(nil), accepted...), src)

		set, errs := w.Compile(m.NewRuleBundle(candidate...))
		if len(errs) > 0 {
			status.Err = errors.Join(errs...)
		} else {
			accepted = candidate
		}

		if set != nil {
			if status.Err == nil {
				for _, id := range set.Identifiers() {
					if !known[id] {
						known[id] = true
						status.Rules = append(status.Rules, id)
					}
				}
			}

			if err := set.Close(); err != nil {
				slog.Debug("Failed to release rule set", "source", src.Name, "error", err)
			}
		}

		out = append(out, status)
	}

	return out
}
