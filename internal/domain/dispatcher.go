package domain

import (
	"context"
	"log/slog"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// Dispatcher is the single producer of the pipeline: it loads each file and
// sends it as a job on the bounded jobs channel.
type Dispatcher struct {
	fs          adapter.SourceFSAdapter
	maxFileSize int64
	stats       *Stats
}

// NewDispatcher creates a Dispatcher. Files larger than maxFileSize are
// skipped when maxFileSize is positive.
func NewDispatcher(fs adapter.SourceFSAdapter, maxFileSize int64, stats *Stats) *Dispatcher {
	return &Dispatcher{fs: fs, maxFileSize: maxFileSize, stats: stats}
}

// Run sends one job per readable path and closes jobs when it returns. A send
// blocks while the channel is full. Run stops early and returns the context
// error when ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, paths []m.Path, jobs chan<- m.Job) error {
	defer close(jobs)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		job, ok := d.load(path)
		if !ok {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case jobs <- job:
		}
	}

	return nil
}

func (d *Dispatcher) load(path m.Path) (m.Job, bool) {
	if d.maxFileSize > 0 {
		info, err := d.fs.FileInfo(path)
		if err != nil {
			slog.Warn("Failed to stat file", "path", path, "error", err)
			d.stats.ReadErrors.Add(1)

			return m.Job{}, false
		}

		if info.Size() > d.maxFileSize {
			slog.Debug("Skipping oversized file", "path", path, "size", info.Size(), "limit", d.maxFileSize)
			d.stats.Skipped.Add(1)

			return m.Job{}, false
		}
	}

	content, err := d.fs.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read file", "path", path, "error", err)
		d.stats.ReadErrors.Add(1)

		return m.Job{}, false
	}

	return m.Job{Path: path, Content: content}, true
}
