package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
	"fastcheck.dev/pkg/fastcheck/internal/rules"
)

// Engine names accepted by NewRuleEngine.
const (
	EngineBuiltin = "builtin"
	EngineYara    = "yara"
)

// ErrUnknownEngine is returned by NewRuleEngine for an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown rule engine")

// CompileError reports a rule source that failed to compile.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// RuleEngine compiles rule bundles into immutable rule sets.
type RuleEngine interface {
	// Name identifies the engine in logs and summaries.
	Name() string

	// Compile builds a RuleSet from every source of bundle that compiles.
	// Failing sources are skipped and reported; a bundle with no usable
	// source still yields a RuleSet that never matches.
	Compile(bundle m.RuleBundle) (RuleSet, []error)
}

// RuleSet is a compiled, read-only rule set shared by all workers.
type RuleSet interface {
	// Identifiers lists the public rules in declaration order.
	Identifiers() []string

	// NewScanContext returns a fresh matching handle for a single scan.
	NewScanContext() (ScanContext, error)

	// Close releases engine resources once no scan is running.
	Close() error
}

// ScanContext holds per-scan state and is used by exactly one goroutine.
type ScanContext interface {
	Scan(ctx context.Context, data []byte) ([]string, error)
	Close() error
}

// NewRuleEngine returns the engine registered under name.
func NewRuleEngine(name string) (RuleEngine, error) {
	switch name {
	case "", EngineBuiltin:
		return NewBuiltinRuleEngine(), nil
	case EngineYara:
		return newYaraRuleEngine()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// BuiltinRuleEngine compiles rules with the in-process matcher.
type BuiltinRuleEngine struct{}

// NewBuiltinRuleEngine creates the default pure-Go engine.
func NewBuiltinRuleEngine() *BuiltinRuleEngine {
	return &BuiltinRuleEngine{}
}

// Name implements RuleEngine.
func (e *BuiltinRuleEngine) Name() string {
	return EngineBuiltin
}

// Compile implements RuleEngine.
func (e *BuiltinRuleEngine) Compile(bundle m.RuleBundle) (RuleSet, []error) {
	compiler := rules.NewCompiler()

	var errs []error

	for _, src := range bundle.Sources() {
		if err := compiler.AddSource(src.Name, src.Text); err != nil {
			slog.Warn("Skipping rule source", "source", src.Name, "error", err)
			errs = append(errs, &CompileError{Source: src.Name, Err: err})

			continue
		}

		slog.Debug("Compiled rule source", "source", src.Name)
	}

	return &builtinRuleSet{rules: compiler.Build()}, errs
}

type builtinRuleSet struct {
	rules *rules.Rules
}

func (s *builtinRuleSet) Identifiers() []string {
	return s.rules.Identifiers()
}

func (s *builtinRuleSet) NewScanContext() (ScanContext, error) {
	return &builtinScanContext{scanner: rules.NewScanner(s.rules)}, nil
}

func (s *builtinRuleSet) Close() error {
	return nil
}

type builtinScanContext struct {
	scanner *rules.Scanner
}

func (c *builtinScanContext) Scan(ctx context.Context, data []byte) ([]string, error) {
	return c.scanner.Scan(ctx, data)
}

func (c *builtinScanContext) Close() error {
	return nil
}
