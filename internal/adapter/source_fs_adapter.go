// Package adapter contains infrastructure adapters for the fastcheck CLI.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// ErrNotFound is returned when the scan root does not exist.
var ErrNotFound = errors.New("path not found")

// EnumerateOptions tunes how a scan root is expanded into files.
type EnumerateOptions struct {
	// Exclude holds regular expressions matched against canonical paths.
	// A matching directory is pruned, a matching file is skipped.
	Exclude []string

	// SkipUnresolvable logs and skips entries that fail to canonicalize
	// instead of failing the whole enumeration.
	SkipUnresolvable bool
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning. It hides direct `os` access so the pipeline can be
// tested without touching the disk.
type SourceFSAdapter interface {
	// Enumerate resolves root to the canonical paths of every regular file it
	// denotes. Each file is reported exactly once, in no particular order.
	Enumerate(ctx context.Context, root m.Path, opts EnumerateOptions) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Enumerate expands root into canonical file paths. An empty root or "./"
// denotes the current working directory.
func (a *LocalSourceFSAdapter) Enumerate(ctx context.Context, root m.Path, opts EnumerateOptions) ([]m.Path, error) {
	exclude, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	canonical, err := canonicalize(string(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}

		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
		}

		return nil, fmt.Errorf("stat %s: %w", canonical, err)
	}

	if info.Mode().IsRegular() {
		return []m.Path{m.Path(canonical)}, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is neither a regular file nor a directory", canonical)
	}

	w := &walker{
		exclude: exclude,
		skip:    opts.SkipUnresolvable,
		visited: map[string]struct{}{canonical: {}},
		files:   make(map[string]struct{}),
	}

	return w.walk(ctx, canonical)
}

func canonicalize(root string) (string, error) {
	if root == "" || root == "./" {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		out = append(out, re)
	}

	return out, nil
}

// walker performs an iterative depth-first traversal. visited holds the
// canonical directories already queued so symlink cycles terminate.
type walker struct {
	exclude []*regexp.Regexp
	skip    bool
	visited map[string]struct{}
	files   map[string]struct{}
	out     []m.Path
}

func (w *walker) walk(ctx context.Context, root string) ([]m.Path, error) {
	stack := []string{root}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return w.out, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if err := w.unresolvable(dir, err); err != nil {
				return nil, err
			}

			continue
		}

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())

			canonical, info, err := resolveEntry(full, entry)
			if err != nil {
				if err := w.unresolvable(full, err); err != nil {
					return nil, err
				}

				continue
			}

			if w.excluded(canonical) {
				slog.Debug("Excluded path", "path", canonical)
				continue
			}

			switch {
			case info.IsDir():
				if _, seen := w.visited[canonical]; seen {
					continue
				}

				w.visited[canonical] = struct{}{}
				stack = append(stack, canonical)
			case info.Mode().IsRegular():
				if _, seen := w.files[canonical]; seen {
					continue
				}

				w.files[canonical] = struct{}{}
				w.out = append(w.out, m.Path(canonical))
			}
		}
	}

	return w.out, nil
}

// resolveEntry returns the canonical path of a directory entry and the
// metadata of its target. Only symlinks need resolving since the parent
// directory is already canonical.
func resolveEntry(full string, entry fs.DirEntry) (string, fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		info, err := entry.Info()
		return full, info, err
	}

	canonical, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", nil, err
	}

	info, err := os.Stat(canonical)

	return canonical, info, err
}

func (w *walker) unresolvable(path string, err error) error {
	if !w.skip {
		return fmt.Errorf("canonicalize %s: %w", path, err)
	}

	slog.Warn("Skipping unresolvable path", "path", path, "error", err)

	return nil
}

func (w *walker) excluded(path string) bool {
	for _, re := range w.exclude {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - paths come from Enumerate
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
