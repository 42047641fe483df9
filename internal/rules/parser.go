package rules

import (
	"fmt"
	"strings"
)

// ruleLookup resolves a rule identifier declared earlier to its index.
type ruleLookup func(name string) (int, bool)

type parser struct {
	lx       *lexer
	tok      token
	lookup   ruleLookup
	base     int
	declared map[string]int
	rules    []*ruleDecl
	current  *ruleDecl
}

// parseSource parses every rule in src. base is the index the first rule of
// this source will receive once compiled; lookup resolves rules compiled from
// earlier sources.
func parseSource(src string, base int, lookup ruleLookup) ([]*ruleDecl, error) {
	p := &parser{
		lx:       newLexer(src),
		lookup:   lookup,
		base:     base,
		declared: make(map[string]int),
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	for p.tok.kind != tokEOF {
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}

		p.declared[rule.name] = p.base + len(p.rules)
		p.rules = append(p.rules, rule)
	}

	return p.rules, nil
}

func (p *parser) advance() error {
	tok, err := p.lx.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.tok.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.tok
	if tok.kind != kind {
		return tok, p.errorf("expected %s, found %q", kind, tok.text)
	}

	return tok, p.advance()
}

func (p *parser) isKeyword(word string) bool {
	return p.tok.kind == tokIdent && p.tok.text == word
}

func (p *parser) expectKeyword(word string) error {
	if !p.isKeyword(word) {
		return p.errorf("expected %q, found %q", word, p.tok.text)
	}

	return p.advance()
}

var reservedWords = map[string]bool{
	"all": true, "and": true, "any": true, "ascii": true, "at": true, "condition": true,
	"false": true, "filesize": true, "fullword": true, "global": true, "import": true,
	"in": true, "include": true, "meta": true, "nocase": true, "none": true, "not": true,
	"of": true, "or": true, "private": true, "rule": true, "strings": true, "them": true,
	"true": true, "wide": true,
}

func (p *parser) parseRule() (*ruleDecl, error) {
	rule := &ruleDecl{line: p.tok.line, meta: make(map[string]any)}

qualifiers:
	for {
		switch {
		case p.isKeyword("private"):
			rule.private = true
		case p.isKeyword("global"):
			rule.global = true
		case p.isKeyword("import"), p.isKeyword("include"):
			return nil, p.errorf("%s statements are not supported", p.tok.text)
		default:
			break qualifiers
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("rule"); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	if reservedWords[nameTok.text] {
		return nil, &SyntaxError{Line: nameTok.line, Msg: fmt.Sprintf("%q is a reserved word", nameTok.text)}
	}

	if _, dup := p.declared[nameTok.text]; dup {
		return nil, &SyntaxError{Line: nameTok.line, Msg: fmt.Sprintf("duplicated rule identifier %q", nameTok.text)}
	}

	if _, dup := p.lookup(nameTok.text); dup {
		return nil, &SyntaxError{Line: nameTok.line, Msg: fmt.Sprintf("duplicated rule identifier %q", nameTok.text)}
	}

	rule.name = nameTok.text
	p.current = rule

	if p.tok.kind == tokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}

		for p.tok.kind == tokIdent {
			rule.tags = append(rule.tags, p.tok.text)
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		if len(rule.tags) == 0 {
			return nil, p.errorf("expected at least one tag after ':'")
		}
	}

	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	if p.isKeyword("meta") {
		if err := p.parseMeta(rule); err != nil {
			return nil, err
		}
	}

	if p.isKeyword("strings") {
		if err := p.parseStrings(rule); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("condition"); err != nil {
		return nil, err
	}

	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	rule.condition = cond

	if _, err := p.expect(tokRBrace); err != nil {
		return nil, err
	}

	return rule, nil
}

func (p *parser) parseMeta(rule *ruleDecl) error {
	if err := p.advance(); err != nil {
		return err
	}

	if _, err := p.expect(tokColon); err != nil {
		return err
	}

	for p.tok.kind == tokIdent && !p.isKeyword("strings") && !p.isKeyword("condition") {
		key := p.tok.text
		if err := p.advance(); err != nil {
			return err
		}

		if _, err := p.expect(tokAssign); err != nil {
			return err
		}

		var val any

		switch {
		case p.tok.kind == tokString:
			val = p.tok.text
		case p.tok.kind == tokNumber:
			val = p.tok.num
		case p.isKeyword("true"):
			val = true
		case p.isKeyword("false"):
			val = false
		default:
			return p.errorf("invalid meta value %q", p.tok.text)
		}

		if _, seen := rule.meta[key]; !seen {
			rule.metaOrder = append(rule.metaOrder, key)
		}

		rule.meta[key] = val

		if err := p.advance(); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) parseStrings(rule *ruleDecl) error {
	if err := p.advance(); err != nil {
		return err
	}

	if _, err := p.expect(tokColon); err != nil {
		return err
	}

	seen := make(map[string]bool)

	for p.tok.kind == tokStringID {
		def := &stringDef{id: p.tok.text, line: p.tok.line}

		if strings.HasSuffix(def.id, "*") {
			return p.errorf("invalid string identifier %q", def.id)
		}

		if def.id != "$" && seen[def.id] {
			return p.errorf("duplicated string identifier %q", def.id)
		}

		seen[def.id] = true

		// The lexer sits right after the identifier; '=' and the value are
		// read in raw mode because hex strings and regexps are context dependent.
		if err := p.lx.skipSpace(); err != nil {
			return err
		}

		if p.lx.peekByte() != '=' {
			return p.errorf("expected '=' after %s", def.id)
		}

		p.lx.pos++

		if err := p.parseStringValue(def); err != nil {
			return err
		}

		rule.strings = append(rule.strings, def)
	}

	if len(rule.strings) == 0 {
		return p.errorf("empty strings section")
	}

	return nil
}

func (p *parser) parseStringValue(def *stringDef) error {
	if err := p.lx.skipSpace(); err != nil {
		return err
	}

	switch p.lx.peekByte() {
	case '{':
		data, mask, err := p.lx.readHex()
		if err != nil {
			return err
		}

		def.kind = stringHex
		def.text = data

		for _, b := range mask {
			if b != 0xFF {
				def.mask = mask
				break
			}
		}
	case '/':
		pattern, flags, err := p.lx.readRegex()
		if err != nil {
			return err
		}

		def.kind = stringRegex
		def.regex = pattern
		def.flags = flags
	case '"':
		s, err := p.lx.quoted()
		if err != nil {
			return err
		}

		if s == "" {
			return p.errorf("empty string %s", def.id)
		}

		def.kind = stringText
		def.text = []byte(s)
	default:
		return &SyntaxError{Line: p.lx.line, Msg: fmt.Sprintf("invalid value for %s", def.id)}
	}

	if err := p.advance(); err != nil {
		return err
	}

	return p.parseModifiers(def)
}

func (p *parser) parseModifiers(def *stringDef) error {
	for p.tok.kind == tokIdent {
		switch p.tok.text {
		case "nocase":
			def.mods.nocase = true
		case "ascii":
			def.mods.ascii = true
		case "wide":
			def.mods.wide = true
		case "fullword":
			def.mods.fullword = true
		case "private":
			def.mods.private = true
		case "condition":
			return nil
		default:
			return p.errorf("unsupported string modifier %q", p.tok.text)
		}

		if def.kind == stringHex && p.tok.text != "private" {
			return p.errorf("modifier %q is not allowed on hex strings", p.tok.text)
		}

		if err := p.advance(); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) findString(id string) (*stringDef, error) {
	if id == "$" {
		return nil, p.errorf("anonymous strings can only be referenced through sets")
	}

	for _, def := range p.current.strings {
		if def.id == id {
			return def, nil
		}
	}

	return nil, p.errorf("undefined string identifier %q", id)
}

func (p *parser) matchStrings(pattern string) ([]*stringDef, error) {
	var out []*stringDef

	prefix, wildcard := strings.CutSuffix(pattern, "*")
	for _, def := range p.current.strings {
		if (wildcard && strings.HasPrefix(def.id, prefix)) || def.id == pattern {
			out = append(out, def)
		}
	}

	if len(out) == 0 {
		return nil, p.errorf("undefined string identifier %q", pattern)
	}

	return out, nil
}

func (p *parser) parseExpr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.isKeyword("or") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &orExpr{left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.isKeyword("and") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		left = &andExpr{left: left, right: right}
	}

	return left, nil
}

func (p *parser) parseNot() (expr, error) {
	if p.isKeyword("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}

		return &notExpr{inner: inner}, nil
	}

	return p.parseComparison()
}

var comparisonOps = map[tokenKind]string{
	tokEq: "==", tokNeq: "!=", tokLt: "<", tokLe: "<=", tokGt: ">", tokGe: ">=",
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOps[p.tok.kind]
	if !ok {
		return left, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return &cmpExpr{op: op, left: left, right: right}, nil
}

//nolint:cyclop // one case per primary form keeps the grammar readable
func (p *parser) parsePrimary() (expr, error) {
	tok := p.tok

	switch tok.kind {
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}

		return inner, nil
	case tokNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.tok.kind == tokPercent {
			if err := p.advance(); err != nil {
				return nil, err
			}

			return p.parseOf(quantPercent, tok.num)
		}

		if p.isKeyword("of") {
			return p.parseOf(quantCount, tok.num)
		}

		return &intLit{v: tok.num}, nil
	case tokStringID:
		def, err := p.findString(tok.text)
		if err != nil {
			return nil, err
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.isKeyword("at") {
			if err := p.advance(); err != nil {
				return nil, err
			}

			offset, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}

			return &stringAtExpr{def: def, offset: offset}, nil
		}

		return &stringMatchExpr{def: def}, nil
	case tokStringCount:
		def, err := p.findString(tok.text)
		if err != nil {
			return nil, err
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &stringCountExpr{def: def}, nil
	case tokIdent:
		return p.parseIdentPrimary(tok)
	}

	return nil, p.errorf("unexpected %s %q in condition", tok.kind, tok.text)
}

func (p *parser) parseIdentPrimary(tok token) (expr, error) {
	switch tok.text {
	case "true", "false":
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &boolLit{v: tok.text == "true"}, nil
	case "filesize":
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &filesizeExpr{}, nil
	case "all":
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.parseOf(quantAll, 0)
	case "any":
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.parseOf(quantAny, 0)
	case "none":
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.parseOf(quantNone, 0)
	}

	if fn, ok := intFunctions[tok.text]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}

		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}

		offset, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}

		return &intFuncExpr{fn: fn, offset: offset}, nil
	}

	if idx, ok := p.declared[tok.text]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ruleRefExpr{index: idx}, nil
	}

	if idx, ok := p.lookup(tok.text); ok {
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ruleRefExpr{index: idx}, nil
	}

	return nil, p.errorf("undefined identifier %q", tok.text)
}

func (p *parser) parseOf(q quantifier, n int64) (expr, error) {
	if err := p.expectKeyword("of"); err != nil {
		return nil, err
	}

	of := &ofExpr{quant: q, n: n}

	if p.isKeyword("them") {
		if len(p.current.strings) == 0 {
			return nil, p.errorf("'them' used in a rule without strings")
		}

		of.defs = append(of.defs, p.current.strings...)

		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}

		for {
			if p.tok.kind != tokStringID {
				return nil, p.errorf("expected string identifier in set, found %q", p.tok.text)
			}

			defs, err := p.matchStrings(p.tok.text)
			if err != nil {
				return nil, err
			}

			of.defs = append(of.defs, defs...)

			if err := p.advance(); err != nil {
				return nil, err
			}

			if p.tok.kind != tokComma {
				break
			}

			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
	}

	if q == quantCount && (n < 0 || int(n) > len(of.defs)) {
		return nil, p.errorf("quantifier %d exceeds the %d strings in the set", n, len(of.defs))
	}

	if q == quantPercent && (n < 1 || n > 100) {
		return nil, p.errorf("percentage %d%% out of range", n)
	}

	return of, nil
}
