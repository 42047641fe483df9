package rules

import (
	"context"
	"errors"
	"fmt"
)

// MaxMatchesPerString caps how many offsets are recorded for one string in
// a single scan. A scan that finds more fails with ErrTooManyMatches since
// counts and offsets past the cap would be wrong.
const MaxMatchesPerString = 10000

var (
	// ErrNilRules is returned when a Scanner is used without compiled rules.
	ErrNilRules = errors.New("rules: scanner has no compiled rules")

	// ErrTooManyMatches is returned when a string matches more than
	// MaxMatchesPerString times in the scanned data.
	ErrTooManyMatches = errors.New("rules: too many matches")
)

// Scanner runs compiled rules against data. A Scanner carries per-scan
// state; create one per scan and never share it between goroutines.
type Scanner struct {
	rules       *Rules
	data        []byte
	matches     [][]int
	ruleMatched []bool
	overflow    int
}

// NewScanner binds a fresh scanner to rules.
func NewScanner(rules *Rules) *Scanner {
	return &Scanner{rules: rules}
}

// Scan returns the identifiers of the public rules matching data, in rule
// declaration order.
func (s *Scanner) Scan(ctx context.Context, data []byte) ([]string, error) {
	if s.rules == nil {
		return nil, ErrNilRules
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.data = data
	s.matches = make([][]int, s.rules.slots)
	s.ruleMatched = make([]bool, len(s.rules.rules))
	s.overflow = -1

	s.collect()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.overflow >= 0 {
		return nil, fmt.Errorf("%w: a string matched more than %d times", ErrTooManyMatches, MaxMatchesPerString)
	}

	return s.evaluate(), nil
}

// record stores one match offset and reports whether the slot can take more.
func (s *Scanner) record(slot, offset int) bool {
	if len(s.matches[slot]) >= MaxMatchesPerString {
		s.overflow = slot
		return false
	}

	s.matches[slot] = append(s.matches[slot], offset)

	return true
}

func (s *Scanner) collect() {
	r := s.rules

	if !r.exact.empty() {
		r.exact.scan(s.data, func(id int32, offset int) bool {
			ref := r.exactRefs[id]
			if !ref.fullword || s.isFullword(offset, r.exact.lengths[id], ref.step) {
				s.record(ref.slot, offset)
			}

			return true
		})
	}

	if !r.nocase.empty() {
		r.nocase.scan(lowerASCII(s.data), func(id int32, offset int) bool {
			ref := r.nocaseRefs[id]
			if !ref.fullword || s.isFullword(offset, r.nocase.lengths[id], ref.step) {
				s.record(ref.slot, offset)
			}

			return true
		})
	}

	for _, mp := range r.masked {
		s.scanMasked(mp)
	}

	for _, rp := range r.regexes {
		for _, loc := range rp.re.FindAllIndex(s.data, MaxMatchesPerString+1) {
			if loc[1] == loc[0] {
				continue
			}

			if !rp.fullword || s.isFullword(loc[0], loc[1]-loc[0], 1) {
				if !s.record(rp.slot, loc[0]) {
					break
				}
			}
		}
	}
}

func (s *Scanner) scanMasked(mp maskedPattern) {
	n := len(mp.data)

	for i := 0; i+n <= len(s.data); i++ {
		if s.data[i]&mp.mask[0] != mp.data[0] {
			continue
		}

		ok := true

		for j := 1; j < n; j++ {
			if s.data[i+j]&mp.mask[j] != mp.data[j]&mp.mask[j] {
				ok = false
				break
			}
		}

		if ok && !s.record(mp.slot, i) {
			return
		}
	}
}

func isAlnum(c byte) bool {
	return isIdentChar(c) && c != '_'
}

// isFullword reports whether the match at offset is delimited by
// non-alphanumeric characters. step is 2 for wide strings.
func (s *Scanner) isFullword(offset, length, step int) bool {
	if before := offset - step; before >= 0 && isAlnum(s.data[before]) {
		return false
	}

	if after := offset + length; after < len(s.data) && isAlnum(s.data[after]) {
		return false
	}

	return true
}

func (s *Scanner) evaluate() []string {
	var out []string

	for i, cr := range s.rules.rules {
		matched := cr.condition.eval(s).truthy()
		s.ruleMatched[i] = matched

		if cr.Global && !matched {
			return nil
		}
	}

	for i, cr := range s.rules.rules {
		if s.ruleMatched[i] && !cr.Private {
			out = append(out, cr.Identifier)
		}
	}

	return out
}
