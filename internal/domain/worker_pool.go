package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/controller"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 10

// WorkerPool runs a fixed number of symmetric workers draining one jobs
// channel against a shared, read-only RuleSet.
type WorkerPool struct {
	ruleSet adapter.RuleSet
	sink    controller.UI
	workers int
	stats   *Stats
	group   errgroup.Group
}

// NewWorkerPool creates a pool of workers. A count below one is clamped to one.
func NewWorkerPool(ruleSet adapter.RuleSet, sink controller.UI, workers int, stats *Stats) *WorkerPool {
	return &WorkerPool{
		ruleSet: ruleSet,
		sink:    sink,
		workers: ClampWorkers(workers),
		stats:   stats,
	}
}

// ClampWorkers returns n, or 1 when n is lower.
func ClampWorkers(n int) int {
	if n < 1 {
		return 1
	}

	return n
}

// Workers returns the effective worker count.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Start launches the workers. Each exits once jobs is closed and drained.
// Jobs already enqueued are scanned even after ctx is cancelled.
func (p *WorkerPool) Start(ctx context.Context, jobs <-chan m.Job) {
	scanCtx := context.WithoutCancel(ctx)

	for id := range p.workers {
		p.group.Go(func() error {
			for job := range jobs {
				p.handle(scanCtx, id, job)
			}

			slog.Debug("Worker finished", "worker", id)

			return nil
		})
	}
}

// Wait joins every worker.
func (p *WorkerPool) Wait() {
	_ = p.group.Wait()
}

// handle scans one job. A panic is contained to the job so the worker keeps
// draining the channel.
func (p *WorkerPool) handle(ctx context.Context, id int, job m.Job) {
	defer func() {
		if r := recover(); r != nil {
			p.stats.WorkerFailures.Add(1)
			slog.Error("Worker panicked while scanning",
				"worker", id, "path", job.Path, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()

	rules, err := p.scan(ctx, job)
	if err != nil {
		p.stats.ScanErrors.Add(1)
		slog.Warn("Failed to scan file", "worker", id, "path", job.Path, "error", err)

		return
	}

	p.stats.Scanned.Add(1)

	if len(rules) == 0 {
		return
	}

	p.stats.Matched.Add(1)
	p.sink.DisplayMatch(ctx, m.MatchResult{Path: job.Path, Rules: rules})
}

func (p *WorkerPool) scan(ctx context.Context, job m.Job) ([]string, error) {
	sc, err := p.ruleSet.NewScanContext()
	if err != nil {
		return nil, fmt.Errorf("create scan context: %w", err)
	}

	defer func() {
		if err := sc.Close(); err != nil {
			slog.Debug("Failed to release scan context", "path", job.Path, "error", err)
		}
	}()

	return sc.Scan(ctx, job.Content)
}
