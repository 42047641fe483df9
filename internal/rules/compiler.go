// Package rules implements a compiler and matcher for a subset of the YARA
// rule language.
//
// Supported: rule qualifiers private/global, tags, meta, text strings with the
// nocase, ascii, wide, fullword and private modifiers, hex strings with ??
// and nibble wildcards, regular expressions (/.../is), and conditions built
// from and/or/not, comparisons, $a, $a at N, #a, filesize, the uintXX/intXX
// readers, references to earlier rules and "all|any|none|N|N% of" sets.
// Unsupported: modules, includes, hex jumps/alternatives, for-loops and
// arithmetic.
//
// Compiled Rules are immutable and may be shared by any number of Scanners.
// A Scanner holds per-scan state and must not be shared between goroutines.
package rules

import (
	"fmt"
	"regexp"
	"sort"
)

// Rule describes one compiled rule.
type Rule struct {
	Identifier string
	Tags       []string
	Meta       map[string]any
	Private    bool
	Global     bool
}

type compiledRule struct {
	Rule
	condition expr
}

// Compiler accumulates rule sources. A source that fails to parse leaves the
// compiler untouched, so callers can skip it and keep adding others.
type Compiler struct {
	decls []*ruleDecl
	index map[string]int
	slots int
}

// NewCompiler returns an empty compiler.
func NewCompiler() *Compiler {
	return &Compiler{index: make(map[string]int)}
}

// AddSource parses src and adds its rules. name is only used in errors.
func (c *Compiler) AddSource(name, src string) error {
	decls, err := parseSource(src, len(c.decls), func(id string) (int, bool) {
		idx, ok := c.index[id]
		return idx, ok
	})
	if err != nil {
		return withSource(err, name)
	}

	for _, d := range decls {
		for _, s := range d.strings {
			if err := validateString(s); err != nil {
				return withSource(&SyntaxError{Line: s.line, Msg: err.Error()}, name)
			}
		}
	}

	for _, d := range decls {
		for _, s := range d.strings {
			s.slot = c.slots
			c.slots++
		}

		c.index[d.name] = len(c.decls)
		c.decls = append(c.decls, d)
	}

	return nil
}

func withSource(err error, name string) error {
	if se, ok := err.(*SyntaxError); ok {
		se.Source = name
		return se
	}

	return fmt.Errorf("%s: %w", name, err)
}

func validateString(s *stringDef) error {
	if s.kind != stringRegex {
		return nil
	}

	if s.mods.wide {
		return fmt.Errorf("modifier \"wide\" is not supported on regular expression %s", s.id)
	}

	if _, err := regexp.Compile(regexExpr(s)); err != nil {
		return fmt.Errorf("invalid regular expression in %s: %w", s.id, err)
	}

	return nil
}

// regexExpr folds the /.../is flags and the nocase modifier into Go syntax.
func regexExpr(s *stringDef) string {
	flags := s.flags
	if s.mods.nocase {
		flags += "i"
	}

	if flags == "" {
		return s.regex
	}

	return "(?" + flags + ")" + s.regex
}

// Build compiles every added rule into an immutable Rules value. Build may be
// called again after adding more sources; earlier Rules are unaffected.
func (c *Compiler) Build() *Rules {
	r := &Rules{
		exact:  newAutomaton(),
		nocase: newAutomaton(),
	}

	for _, d := range c.decls {
		for _, s := range d.strings {
			r.addString(s)
		}

		r.rules = append(r.rules, &compiledRule{
			Rule: Rule{
				Identifier: d.name,
				Tags:       append([]string(nil), d.tags...),
				Meta:       copyMeta(d.meta),
				Private:    d.private,
				Global:     d.global,
			},
			condition: d.condition,
		})
	}

	r.slots = c.slots
	r.exact.build()
	r.nocase.build()

	return r
}

func copyMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}

	return out
}

// patternRef maps an automaton pattern back to its string slot.
type patternRef struct {
	slot     int
	fullword bool
	step     int
}

type maskedPattern struct {
	slot int
	data []byte
	mask []byte
}

type regexPattern struct {
	slot     int
	re       *regexp.Regexp
	fullword bool
}

// Rules is a compiled, immutable rule set.
type Rules struct {
	rules      []*compiledRule
	slots      int
	exact      *automaton
	exactRefs  []patternRef
	nocase     *automaton
	nocaseRefs []patternRef
	masked     []maskedPattern
	regexes    []regexPattern
}

func (r *Rules) addString(s *stringDef) {
	switch s.kind {
	case stringHex:
		if s.mask != nil {
			r.masked = append(r.masked, maskedPattern{slot: s.slot, data: s.text, mask: s.mask})
			return
		}

		r.exact.add(s.text)
		r.exactRefs = append(r.exactRefs, patternRef{slot: s.slot, step: 1})
	case stringRegex:
		re := regexp.MustCompile(regexExpr(s))
		r.regexes = append(r.regexes, regexPattern{slot: s.slot, re: re, fullword: s.mods.fullword})
	default:
		variants := make([][]byte, 0, 2)
		steps := make([]int, 0, 2)

		if s.mods.ascii || !s.mods.wide {
			variants = append(variants, s.text)
			steps = append(steps, 1)
		}

		if s.mods.wide {
			variants = append(variants, toWide(s.text))
			steps = append(steps, 2)
		}

		for i, v := range variants {
			ref := patternRef{slot: s.slot, fullword: s.mods.fullword, step: steps[i]}

			if s.mods.nocase {
				r.nocase.add(lowerASCII(v))
				r.nocaseRefs = append(r.nocaseRefs, ref)

				continue
			}

			r.exact.add(v)
			r.exactRefs = append(r.exactRefs, ref)
		}
	}
}

// Len returns the number of compiled rules, private rules included.
func (r *Rules) Len() int {
	return len(r.rules)
}

// Identifiers returns the identifiers of all public rules in declaration order.
func (r *Rules) Identifiers() []string {
	out := make([]string, 0, len(r.rules))

	for _, cr := range r.rules {
		if !cr.Private {
			out = append(out, cr.Identifier)
		}
	}

	return out
}

// Lookup returns the rule with the given identifier.
func (r *Rules) Lookup(identifier string) (Rule, bool) {
	for _, cr := range r.rules {
		if cr.Identifier == identifier {
			return cr.Rule, true
		}
	}

	return Rule{}, false
}

// Tags returns the distinct tags declared across all rules, sorted.
func (r *Rules) Tags() []string {
	seen := make(map[string]bool)

	var out []string

	for _, cr := range r.rules {
		for _, t := range cr.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}

	sort.Strings(out)

	return out
}

func toWide(b []byte) []byte {
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, c, 0)
	}

	return out
}

func lowerASCII(b []byte) []byte {
	out := make([]byte, len(b))

	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}

		out[i] = c
	}

	return out
}
