// Package bundle embeds the default rule sources shipped with fastcheck.
package bundle

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

//go:embed rules/*.yar
var FS embed.FS

const rulesDir = "rules"

// Load returns every embedded rule source, ordered by file name.
func Load() (m.RuleBundle, error) {
	return LoadFS(FS, rulesDir)
}

// LoadFS reads every *.yar and *.yara file directly under dir in fsys.
func LoadFS(fsys fs.FS, dir string) (m.RuleBundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return m.RuleBundle{}, fmt.Errorf("read rule bundle %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !IsRuleFile(entry.Name()) {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	sources := make([]m.RuleSource, 0, len(names))

	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return m.RuleBundle{}, fmt.Errorf("read rule source %s: %w", name, err)
		}

		sources = append(sources, m.RuleSource{Name: name, Text: string(data)})
	}

	return m.NewRuleBundle(sources...), nil
}

// IsRuleFile reports whether name carries a rule source extension.
func IsRuleFile(name string) bool {
	switch path.Ext(name) {
	case ".yar", ".yara":
		return true
	default:
		return false
	}
}
