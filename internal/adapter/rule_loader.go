package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fastcheck.dev/pkg/fastcheck/internal/bundle"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// LoadRuleBundle returns the embedded rule sources followed by the *.yar and
// *.yara files found directly in each of dirs. Unreadable directories are
// logged, reported and skipped.
func LoadRuleBundle(dirs []string) (m.RuleBundle, []error) {
	embedded, err := bundle.Load()
	if err != nil {
		return m.RuleBundle{}, []error{err}
	}

	var errs []error

	result := embedded

	for _, dir := range dirs {
		loaded, err := bundle.LoadFS(os.DirFS(dir), ".")
		if err != nil {
			slog.Warn("Skipping rule directory", "dir", dir, "error", err)
			errs = append(errs, fmt.Errorf("rule directory %s: %w", dir, err))

			continue
		}

		sources := loaded.Sources()
		for i := range sources {
			sources[i].Name = filepath.Join(dir, sources[i].Name)
		}

		slog.Debug("Loaded rule directory", "dir", dir, "sources", len(sources))

		result = result.With(sources...)
	}

	return result, errs
}
