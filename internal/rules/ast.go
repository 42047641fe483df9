package rules

import "fmt"

// SyntaxError reports a problem in rule source text.
type SyntaxError struct {
	Source string
	Line   int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
	}

	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type stringKind int

const (
	stringText stringKind = iota
	stringHex
	stringRegex
)

type modifiers struct {
	nocase   bool
	ascii    bool
	wide     bool
	fullword bool
	private  bool
}

// stringDef is one entry of a rule's strings section.
type stringDef struct {
	id    string // including the leading '$'
	kind  stringKind
	text  []byte // text literal or hex bytes
	mask  []byte // hex wildcard mask, nil for exact bytes
	regex string
	flags string
	mods  modifiers
	line  int

	// slot is the index of this string in the compiled string table.
	slot int
}

// ruleDecl is a parsed rule before compilation.
type ruleDecl struct {
	name      string
	tags      []string
	meta      map[string]any
	metaOrder []string
	strings   []*stringDef
	condition expr
	private   bool
	global    bool
	line      int
}

// expr is a node of a condition expression.
type expr interface {
	eval(sc *Scanner) value
}

type valueKind int

const (
	valUndefined valueKind = iota
	valBool
	valInt
)

type value struct {
	kind valueKind
	b    bool
	i    int64
}

func boolValue(b bool) value {
	return value{kind: valBool, b: b}
}

func intValue(i int64) value {
	return value{kind: valInt, i: i}
}

func (v value) truthy() bool {
	switch v.kind {
	case valBool:
		return v.b
	case valInt:
		return v.i != 0
	default:
		return false
	}
}
