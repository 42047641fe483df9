package model

import "time"

// Summary aggregates the counters of a single scan run.
type Summary struct {
	Root              Path          `json:"root" yaml:"root"`
	Workers           int           `json:"workers" yaml:"workers"`
	RulesCompiled     int           `json:"rules_compiled" yaml:"rules_compiled"`
	RuleSourcesFailed int           `json:"rule_sources_failed" yaml:"rule_sources_failed"`
	FilesEnumerated   int           `json:"files_enumerated" yaml:"files_enumerated"`
	FilesScanned      int           `json:"files_scanned" yaml:"files_scanned"`
	FilesMatched      int           `json:"files_matched" yaml:"files_matched"`
	FilesSkipped      int           `json:"files_skipped" yaml:"files_skipped"`
	ReadErrors        int           `json:"read_errors" yaml:"read_errors"`
	ScanErrors        int           `json:"scan_errors" yaml:"scan_errors"`
	WorkerFailures    int           `json:"worker_failures" yaml:"worker_failures"`
	Duration          time.Duration `json:"duration" yaml:"duration"`
	Cancelled         bool          `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`

	// EnumerationErr is set when the scan root could not be resolved or walked.
	EnumerationErr error `json:"-" yaml:"-"`
}

// Report is the persisted outcome of a scan run.
type Report struct {
	Version     int           `json:"version" yaml:"version"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Summary     Summary       `json:"summary" yaml:"summary"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	Matches     []MatchResult `json:"matches" yaml:"matches"`
}

// CurrentReportVersion is the report format version written by this build.
const CurrentReportVersion = 1
