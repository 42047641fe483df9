package rules

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loremRule = `
rule lorem_ipsum {
	strings:
		$a = "Lorem ipsum"
	condition:
		$a
}`

func scan(t *testing.T, r *Rules, data string) []string {
	t.Helper()

	matched, err := NewScanner(r).Scan(context.Background(), []byte(data))
	require.NoError(t, err)

	return matched
}

func TestScanner_Scan(t *testing.T) {
	t.Run("matches a literal", func(t *testing.T) {
		r := compile(t, loremRule)

		assert.Equal(t, []string{"lorem_ipsum"}, scan(t, r, "Lorem ipsum dolor sit amet"))
		assert.Empty(t, scan(t, r, "dolor sit amet"))
		assert.Empty(t, scan(t, r, ""))
	})

	t.Run("text modifiers", func(t *testing.T) {
		r := compile(t, `
rule nocase_rule { strings: $a = "HeLLo" nocase condition: $a }
rule wide_rule { strings: $a = "ab" wide condition: $a }
rule both_rule { strings: $a = "cd" wide ascii condition: #a == 2 }
rule word_rule { strings: $a = "cat" fullword condition: $a }`)

		assert.Equal(t, []string{"nocase_rule"}, scan(t, r, "say hello"))
		assert.Equal(t, []string{"wide_rule"}, scan(t, r, "a\x00b\x00"))
		assert.Equal(t, []string{"both_rule"}, scan(t, r, "cd c\x00d\x00"))
		assert.Equal(t, []string{"word_rule"}, scan(t, r, "the cat sat"))
		assert.Empty(t, scan(t, r, "concatenate"))
	})

	t.Run("hex strings with wildcards", func(t *testing.T) {
		r := compile(t, `
rule mz { strings: $mz = { 4D 5A } condition: $mz at 0 }
rule masked { strings: $h = { 41 ?? 43 4? 45 } condition: $h }`)

		assert.Equal(t, []string{"mz"}, scan(t, r, "MZ\x90\x00"))
		assert.Empty(t, scan(t, r, "xMZ"))
		assert.Equal(t, []string{"masked"}, scan(t, r, "--AxCDE--"))
		assert.Equal(t, []string{"masked"}, scan(t, r, "AZCFE"))
		assert.Empty(t, scan(t, r, "AxC5E"))
	})

	t.Run("regular expressions", func(t *testing.T) {
		r := compile(t, `
rule re_rule { strings: $r = /ab+c/i condition: $r }
rule re_word { strings: $r = /key[0-9]/ fullword condition: $r }`)

		assert.Equal(t, []string{"re_rule"}, scan(t, r, "xxABBBCxx"))
		assert.Equal(t, []string{"re_word"}, scan(t, r, "a key7 b"))
		assert.Empty(t, scan(t, r, "monkey7"))
	})

	t.Run("conditions", func(t *testing.T) {
		r := compile(t, `
rule counts { strings: $a = "x" condition: #a >= 3 and filesize < 100 }
rule sets { strings: $p1 = "one" $p2 = "two" $q = "three" condition: all of ($p*) and not $q }
rule any_set { strings: $a = "red" $b = "blue" condition: any of them }
rule none_set { strings: $a = "red" $b = "blue" condition: none of them }
rule pct { strings: $a = "aa" $b = "bb" $c = "cc" $d = "dd" condition: 50% of them }
rule ints { condition: uint16(0) == 0x5A4D and uint8be(2) == 0x90 }
rule refs { condition: ints or counts }`)

		assert.ElementsMatch(t, []string{"counts", "none_set", "refs"}, scan(t, r, "xxx"))
		assert.ElementsMatch(t, []string{"sets", "none_set"}, scan(t, r, "one two"))
		assert.ElementsMatch(t, []string{"none_set"}, scan(t, r, "one two three"))
		assert.ElementsMatch(t, []string{"any_set", "pct"}, scan(t, r, "red aa bb"))
		assert.ElementsMatch(t, []string{"ints", "refs", "none_set"}, scan(t, r, "MZ\x90"))
	})

	t.Run("out of range reads are undefined", func(t *testing.T) {
		r := compile(t, `
rule short_read { condition: uint32(0) == 0 }
rule negated { condition: not (uint32(0) == 0) }`)

		assert.Empty(t, scan(t, r, "ab"))
	})

	t.Run("global rules gate every match", func(t *testing.T) {
		r := compile(t, `
global rule small { condition: filesize < 10 }
rule any_data { condition: filesize > 0 }`)

		assert.ElementsMatch(t, []string{"small", "any_data"}, scan(t, r, "tiny"))
		assert.Empty(t, scan(t, r, strings.Repeat("z", 20)))
	})

	t.Run("private strings and rules are hidden", func(t *testing.T) {
		r := compile(t, `
private rule has_magic { strings: $m = "MAGIC" private condition: $m }
rule magic_file { condition: has_magic }`)

		assert.Equal(t, []string{"magic_file"}, scan(t, r, "xxMAGICxx"))
	})

	t.Run("match count up to the cap", func(t *testing.T) {
		r := compile(t, `rule many { strings: $a = "a" condition: #a == 10000 }`)

		assert.Equal(t, []string{"many"}, scan(t, r, strings.Repeat("a", MaxMatchesPerString)))
	})

	t.Run("too many matches fails the scan", func(t *testing.T) {
		for name, src := range map[string]string{
			"literal": `rule many { strings: $a = "a" condition: #a > 10000 }`,
			"hex":     `rule many { strings: $a = { 61 ?? } condition: #a > 5000 }`,
			"regex":   `rule many { strings: $a = /a/ condition: #a > 10000 }`,
		} {
			t.Run(name, func(t *testing.T) {
				r := compile(t, src)

				matched, err := NewScanner(r).Scan(context.Background(), []byte(strings.Repeat("a", 2*MaxMatchesPerString)))
				require.ErrorIs(t, err, ErrTooManyMatches)
				assert.Nil(t, matched)
			})
		}
	})

	t.Run("honors cancellation", func(t *testing.T) {
		r := compile(t, loremRule)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewScanner(r).Scan(ctx, []byte("Lorem ipsum"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil rules", func(t *testing.T) {
		_, err := NewScanner(nil).Scan(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNilRules)
	})
}

func TestScanner_SharedRules(t *testing.T) {
	r := compile(t, loremRule)

	var wg sync.WaitGroup

	results := make([][]string, 16)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			data := "nothing here"
			if i%2 == 0 {
				data = "prefix Lorem ipsum suffix"
			}

			matched, err := NewScanner(r).Scan(context.Background(), []byte(data))
			assert.NoError(t, err)

			results[i] = matched
		}(i)
	}

	wg.Wait()

	for i, matched := range results {
		if i%2 == 0 {
			assert.Equal(t, []string{"lorem_ipsum"}, matched)
		} else {
			assert.Empty(t, matched)
		}
	}
}

func TestAutomaton(t *testing.T) {
	a := newAutomaton()
	he := a.add([]byte("he"))
	she := a.add([]byte("she"))
	hers := a.add([]byte("hers"))
	a.build()

	found := map[int32][]int{}
	a.scan([]byte("ushers"), func(id int32, offset int) bool {
		found[id] = append(found[id], offset)
		return true
	})

	assert.Equal(t, []int{2}, found[he])
	assert.Equal(t, []int{1}, found[she])
	assert.Equal(t, []int{2}, found[hers])
}
