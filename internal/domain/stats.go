package domain

import (
	"sync/atomic"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// Stats holds the counters shared by the dispatcher and the workers.
type Stats struct {
	Enumerated     atomic.Int64
	Scanned        atomic.Int64
	Matched        atomic.Int64
	Skipped        atomic.Int64
	ReadErrors     atomic.Int64
	ScanErrors     atomic.Int64
	WorkerFailures atomic.Int64
}

// Fill copies the counters into summary.
func (s *Stats) Fill(summary *m.Summary) {
	summary.FilesEnumerated = int(s.Enumerated.Load())
	summary.FilesScanned = int(s.Scanned.Load())
	summary.FilesMatched = int(s.Matched.Load())
	summary.FilesSkipped = int(s.Skipped.Load())
	summary.ReadErrors = int(s.ReadErrors.Load())
	summary.ScanErrors = int(s.ScanErrors.Load())
	summary.WorkerFailures = int(s.WorkerFailures.Load())
}
