//go:build yara

package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hillu/go-yara/v4"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// YaraRuleEngine compiles rules with libyara.
type YaraRuleEngine struct {
	namespace string
}

func newYaraRuleEngine() (RuleEngine, error) {
	return &YaraRuleEngine{namespace: "fastcheck"}, nil
}

// Name implements RuleEngine.
func (e *YaraRuleEngine) Name() string {
	return EngineYara
}

// Compile implements RuleEngine. A libyara compiler is unusable after its
// first error, so each source is first tried on a scratch compiler together
// with the sources accepted so far.
func (e *YaraRuleEngine) Compile(bundle m.RuleBundle) (RuleSet, []error) {
	var (
		accepted []m.RuleSource
		errs     []error
	)

	for _, src := range bundle.Sources() {
		if err := e.tryCompile(append(accepted, src)); err != nil {
			slog.Warn("Skipping rule source", "source", src.Name, "error", err)
			errs = append(errs, &CompileError{Source: src.Name, Err: err})

			continue
		}

		accepted = append(accepted, src)
	}

	rules, err := e.build(accepted)
	if err != nil {
		errs = append(errs, &CompileError{Source: "bundle", Err: err})

		rules, err = e.build(nil)
		if err != nil {
			errs = append(errs, err)
			return &yaraRuleSet{}, errs
		}
	}

	return &yaraRuleSet{rules: rules}, errs
}

func (e *YaraRuleEngine) tryCompile(sources []m.RuleSource) error {
	rules, err := e.build(sources)
	if err != nil {
		return err
	}

	rules.Destroy()

	return nil
}

func (e *YaraRuleEngine) build(sources []m.RuleSource) (*yara.Rules, error) {
	compiler, err := yara.NewCompiler()
	if err != nil {
		return nil, fmt.Errorf("yara compiler init: %w", err)
	}

	defer compiler.Destroy()

	for _, src := range sources {
		if err := compiler.AddString(src.Text, e.namespace); err != nil {
			return nil, fmt.Errorf("%s: %w", src.Name, err)
		}
	}

	rules, err := compiler.GetRules()
	if err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}

	return rules, nil
}

type yaraRuleSet struct {
	rules *yara.Rules
}

func (s *yaraRuleSet) Identifiers() []string {
	if s.rules == nil {
		return nil
	}

	var out []string

	for _, r := range s.rules.GetRules() {
		if !r.IsPrivate() {
			out = append(out, r.Identifier())
		}
	}

	return out
}

func (s *yaraRuleSet) NewScanContext() (ScanContext, error) {
	if s.rules == nil {
		return emptyScanContext{}, nil
	}

	scanner, err := yara.NewScanner(s.rules)
	if err != nil {
		return nil, fmt.Errorf("yara scanner init: %w", err)
	}

	return &yaraScanContext{scanner: scanner}, nil
}

func (s *yaraRuleSet) Close() error {
	if s.rules != nil {
		s.rules.Destroy()
		s.rules = nil
	}

	return nil
}

type yaraScanContext struct {
	scanner *yara.Scanner
}

func (c *yaraScanContext) Scan(ctx context.Context, data []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches yara.MatchRules
	if err := c.scanner.SetCallback(&matches).ScanMem(data); err != nil {
		return nil, fmt.Errorf("yara scan: %w", err)
	}

	out := make([]string, 0, len(matches))
	for _, mr := range matches {
		out = append(out, mr.Rule)
	}

	return out, nil
}

func (c *yaraScanContext) Close() error {
	c.scanner.Destroy()
	return nil
}

type emptyScanContext struct{}

func (emptyScanContext) Scan(context.Context, []byte) ([]string, error) { return nil, nil }

func (emptyScanContext) Close() error { return nil }
