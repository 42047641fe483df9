package rules

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokStringID    // $name, $name*, $
	tokStringCount // #name
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokColon
	tokComma
	tokAssign
	tokEq
	tokNeq
	tokLt
	tokLe
	tokGt
	tokGe
	tokPercent
)

var tokenNames = map[tokenKind]string{
	tokEOF:         "end of input",
	tokIdent:       "identifier",
	tokString:      "string",
	tokNumber:      "number",
	tokStringID:    "string identifier",
	tokStringCount: "string count",
	tokLBrace:      "'{'",
	tokRBrace:      "'}'",
	tokLParen:      "'('",
	tokRParen:      "')'",
	tokColon:       "':'",
	tokComma:       "','",
	tokAssign:      "'='",
	tokEq:          "'=='",
	tokNeq:         "'!='",
	tokLt:          "'<'",
	tokLe:          "'<='",
	tokGt:          "'>'",
	tokGe:          "'>='",
	tokPercent:     "'%'",
}

func (k tokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}

	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	text string
	num  int64
	line int
}

// lexer turns rule source text into tokens. Hex strings and regular
// expressions are context dependent, so the parser reads them through
// readHex and readRegex instead of next.
type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: lx.line, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) peekByte() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}

	return lx.src[lx.pos]
}

func (lx *lexer) skipSpace() error {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		switch {
		case c == '\n':
			lx.line++
			lx.pos++
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case strings.HasPrefix(lx.src[lx.pos:], "//"):
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case strings.HasPrefix(lx.src[lx.pos:], "/*"):
			end := strings.Index(lx.src[lx.pos+2:], "*/")
			if end < 0 {
				return lx.errorf("unterminated comment")
			}

			lx.line += strings.Count(lx.src[lx.pos:lx.pos+2+end], "\n")
			lx.pos += end + 4
		default:
			return nil
		}
	}

	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (lx *lexer) next() (token, error) {
	if err := lx.skipSpace(); err != nil {
		return token{}, err
	}

	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, line: lx.line}, nil
	}

	c := lx.src[lx.pos]
	line := lx.line

	switch {
	case isIdentStart(c):
		start := lx.pos
		for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
			lx.pos++
		}

		return token{kind: tokIdent, text: lx.src[start:lx.pos], line: line}, nil
	case isDigit(c):
		return lx.number()
	case c == '"':
		s, err := lx.quoted()
		if err != nil {
			return token{}, err
		}

		return token{kind: tokString, text: s, line: line}, nil
	case c == '$' || c == '#':
		lx.pos++
		start := lx.pos

		for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
			lx.pos++
		}

		if c == '$' && lx.peekByte() == '*' {
			lx.pos++
		}

		kind := tokStringID
		if c == '#' {
			kind = tokStringCount
			if lx.pos == start {
				return token{}, lx.errorf("expected identifier after '#'")
			}
		}

		return token{kind: kind, text: "$" + lx.src[start:lx.pos], line: line}, nil
	}

	lx.pos++

	switch c {
	case '{':
		return token{kind: tokLBrace, text: "{", line: line}, nil
	case '}':
		return token{kind: tokRBrace, text: "}", line: line}, nil
	case '(':
		return token{kind: tokLParen, text: "(", line: line}, nil
	case ')':
		return token{kind: tokRParen, text: ")", line: line}, nil
	case ':':
		return token{kind: tokColon, text: ":", line: line}, nil
	case ',':
		return token{kind: tokComma, text: ",", line: line}, nil
	case '%':
		return token{kind: tokPercent, text: "%", line: line}, nil
	case '=':
		if lx.peekByte() == '=' {
			lx.pos++
			return token{kind: tokEq, text: "==", line: line}, nil
		}

		return token{kind: tokAssign, text: "=", line: line}, nil
	case '!':
		if lx.peekByte() == '=' {
			lx.pos++
			return token{kind: tokNeq, text: "!=", line: line}, nil
		}
	case '<':
		if lx.peekByte() == '=' {
			lx.pos++
			return token{kind: tokLe, text: "<=", line: line}, nil
		}

		return token{kind: tokLt, text: "<", line: line}, nil
	case '>':
		if lx.peekByte() == '=' {
			lx.pos++
			return token{kind: tokGe, text: ">=", line: line}, nil
		}

		return token{kind: tokGt, text: ">", line: line}, nil
	}

	return token{}, lx.errorf("unexpected character %q", c)
}

func (lx *lexer) number() (token, error) {
	line := lx.line
	start := lx.pos

	if strings.HasPrefix(lx.src[lx.pos:], "0x") || strings.HasPrefix(lx.src[lx.pos:], "0X") {
		lx.pos += 2
		for lx.pos < len(lx.src) && isHexDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	} else {
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}

	text := lx.src[start:lx.pos]

	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return token{}, lx.errorf("invalid number %q", text)
	}

	switch {
	case strings.HasPrefix(lx.src[lx.pos:], "KB"):
		n *= 1024
		lx.pos += 2
	case strings.HasPrefix(lx.src[lx.pos:], "MB"):
		n *= 1024 * 1024
		lx.pos += 2
	}

	if lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
		return token{}, lx.errorf("invalid number suffix after %q", text)
	}

	return token{kind: tokNumber, text: text, num: n, line: line}, nil
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// quoted reads a double-quoted string starting at the current position.
func (lx *lexer) quoted() (string, error) {
	lx.pos++

	var b strings.Builder

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		lx.pos++

		switch c {
		case '"':
			return b.String(), nil
		case '\n':
			return "", lx.errorf("unterminated string")
		case '\\':
			if lx.pos >= len(lx.src) {
				return "", lx.errorf("unterminated string")
			}

			esc := lx.src[lx.pos]
			lx.pos++

			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(esc)
			case 'x':
				if lx.pos+2 > len(lx.src) || !isHexDigit(lx.src[lx.pos]) || !isHexDigit(lx.src[lx.pos+1]) {
					return "", lx.errorf("invalid \\x escape")
				}

				b.WriteByte(hexValue(lx.src[lx.pos])<<4 | hexValue(lx.src[lx.pos+1]))
				lx.pos += 2
			default:
				return "", lx.errorf("unknown escape sequence \\%c", esc)
			}
		default:
			b.WriteByte(c)
		}
	}

	return "", lx.errorf("unterminated string")
}

// readHex reads a hex string body such as { 4D 5A ?? 90 }.
func (lx *lexer) readHex() ([]byte, []byte, error) {
	if err := lx.skipSpace(); err != nil {
		return nil, nil, err
	}

	if lx.peekByte() != '{' {
		return nil, nil, lx.errorf("expected '{' to open hex string")
	}

	lx.pos++

	var (
		data  []byte
		mask  []byte
		nibs  []byte
		nmask []byte
	)

	flush := func() {
		data = append(data, nibs[0]<<4|nibs[1])
		mask = append(mask, nmask[0]<<4|nmask[1])
		nibs, nmask = nibs[:0], nmask[:0]
	}

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		lx.pos++

		switch {
		case c == '}':
			if len(nibs) != 0 {
				return nil, nil, lx.errorf("odd number of hex digits")
			}

			if len(data) == 0 {
				return nil, nil, lx.errorf("empty hex string")
			}

			if mask[0] != 0xFF || mask[len(mask)-1] != 0xFF {
				return nil, nil, lx.errorf("hex string cannot start or end with a wildcard")
			}

			return data, mask, nil
		case c == '\n':
			lx.line++
		case c == ' ' || c == '\t' || c == '\r':
		case isHexDigit(c):
			nibs = append(nibs, hexValue(c))
			nmask = append(nmask, 0xF)
		case c == '?':
			nibs = append(nibs, 0)
			nmask = append(nmask, 0)
		case c == '[' || c == '(' || c == '|':
			return nil, nil, lx.errorf("hex jumps and alternatives are not supported")
		default:
			return nil, nil, lx.errorf("invalid character %q in hex string", c)
		}

		if len(nibs) == 2 {
			flush()
		}
	}

	return nil, nil, lx.errorf("unterminated hex string")
}

// readRegex reads /pattern/flags and returns the pattern and flag letters.
func (lx *lexer) readRegex() (string, string, error) {
	if err := lx.skipSpace(); err != nil {
		return "", "", err
	}

	if lx.peekByte() != '/' {
		return "", "", lx.errorf("expected '/' to open regular expression")
	}

	lx.pos++

	var b strings.Builder

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		lx.pos++

		switch c {
		case '\n':
			return "", "", lx.errorf("unterminated regular expression")
		case '\\':
			if lx.pos < len(lx.src) && lx.src[lx.pos] == '/' {
				b.WriteByte('/')
				lx.pos++

				continue
			}

			b.WriteByte(c)

			if lx.pos < len(lx.src) {
				b.WriteByte(lx.src[lx.pos])
				lx.pos++
			}
		case '/':
			start := lx.pos
			for lx.pos < len(lx.src) && (lx.src[lx.pos] == 'i' || lx.src[lx.pos] == 's') {
				lx.pos++
			}

			if b.Len() == 0 {
				return "", "", lx.errorf("empty regular expression")
			}

			return b.String(), lx.src[start:lx.pos], nil
		default:
			b.WriteByte(c)
		}
	}

	return "", "", lx.errorf("unterminated regular expression")
}
