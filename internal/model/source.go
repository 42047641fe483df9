// Package model defines the data structures shared by the scanning pipeline.
package model

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Job pairs a canonical file path with its fully loaded content.
// A Job is owned by exactly one goroutine at a time: the dispatcher until it
// is sent on the jobs channel, then the worker that received it.
type Job struct {
	Path    Path
	Content []byte
}

// MatchResult is emitted for a file that matched at least one rule.
// Rules keeps the order in which the engine reported them.
type MatchResult struct {
	Path  Path     `json:"path" yaml:"path"`
	Rules []string `json:"rules" yaml:"rules"`
}
