package model

// RuleSource is the text of one rule file, identified by name.
type RuleSource struct {
	Name string
	Text string
}

// RuleBundle is the ordered, read-only set of rule sources handed to the
// rule engine at startup.
type RuleBundle struct {
	sources []RuleSource
}

// NewRuleBundle creates a bundle holding a private copy of sources.
func NewRuleBundle(sources ...RuleSource) RuleBundle {
	cp := make([]RuleSource, len(sources))
	copy(cp, sources)

	return RuleBundle{sources: cp}
}

// Len returns the number of rule sources in the bundle.
func (b RuleBundle) Len() int {
	return len(b.sources)
}

// Sources returns a copy of the bundle's sources in order.
func (b RuleBundle) Sources() []RuleSource {
	cp := make([]RuleSource, len(b.sources))
	copy(cp, b.sources)

	return cp
}

// With returns a new bundle with extra appended after the existing sources.
func (b RuleBundle) With(extra ...RuleSource) RuleBundle {
	return NewRuleBundle(append(b.Sources(), extra...)...)
}
