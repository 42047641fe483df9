package domain_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/controller"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

const loremRule = `rule lorem_ipsum { strings: $a = "Lorem ipsum" condition: $a }`

// fakeFS serves file contents from memory and counts reads.
type fakeFS struct {
	files   map[m.Path][]byte
	order   []m.Path
	failOn  map[m.Path]bool
	enumErr error
	reads   atomic.Int64
}

func newFakeFS(n int, content func(i int) string) *fakeFS {
	f := &fakeFS{files: make(map[m.Path][]byte), failOn: make(map[m.Path]bool)}

	for i := range n {
		p := m.Path(fmt.Sprintf("/fake/d%d/f%04d", i%7, i))
		f.files[p] = []byte(content(i))
		f.order = append(f.order, p)
	}

	return f
}

func (f *fakeFS) Enumerate(_ context.Context, _ m.Path, _ adapter.EnumerateOptions) ([]m.Path, error) {
	if f.enumErr != nil {
		return nil, f.enumErr
	}

	return append([]m.Path(nil), f.order...), nil
}

func (f *fakeFS) ReadFile(path m.Path) ([]byte, error) {
	f.reads.Add(1)

	if f.failOn[path] {
		return nil, fs.ErrPermission
	}

	data, ok := f.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}

	return data, nil
}

func (f *fakeFS) FileInfo(path m.Path) (os.FileInfo, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}

	return fakeInfo{size: int64(len(data))}, nil
}

type fakeInfo struct {
	os.FileInfo
	size int64
}

func (i fakeInfo) Size() int64 { return i.size }

// funcRuleSet is a RuleSet whose scans run fn.
type funcRuleSet struct {
	fn func(data []byte) ([]string, error)
}

func (s *funcRuleSet) Identifiers() []string { return []string{"fake"} }

func (s *funcRuleSet) NewScanContext() (adapter.ScanContext, error) {
	return &funcScanContext{fn: s.fn}, nil
}

func (s *funcRuleSet) Close() error { return nil }

type funcScanContext struct {
	fn func(data []byte) ([]string, error)
}

func (c *funcScanContext) Scan(_ context.Context, data []byte) ([]string, error) {
	return c.fn(data)
}

func (c *funcScanContext) Close() error { return nil }

// funcEngine always compiles to the same RuleSet.
type funcEngine struct {
	set adapter.RuleSet
}

func (e *funcEngine) Name() string { return "fake" }

func (e *funcEngine) Compile(m.RuleBundle) (adapter.RuleSet, []error) { return e.set, nil }

// collectingUI records every call; it is safe for concurrent use.
type collectingUI struct {
	mu      sync.Mutex
	info    []controller.ScanInfo
	matches []m.MatchResult
	summary []m.Summary
	started int
	closed  int
}

func (u *collectingUI) Start(context.Context, ...controller.StartOption) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.started++

	return nil
}

func (u *collectingUI) Close(context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed++
}

func (u *collectingUI) Wait(context.Context) {}

func (u *collectingUI) DisplayScanInfo(_ context.Context, info controller.ScanInfo) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.info = append(u.info, info)
}

func (u *collectingUI) DisplayMatch(_ context.Context, result m.MatchResult) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.matches = append(u.matches, result)
}

func (u *collectingUI) DisplaySummary(_ context.Context, summary m.Summary) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.summary = append(u.summary, summary)
}

func (u *collectingUI) matchedPaths() []m.Path {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]m.Path, 0, len(u.matches))
	for _, r := range u.matches {
		out = append(out, r.Path)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// scanWithTimeout runs fn and fails the test if it does not return in time.
func scanWithTimeout(t *testing.T, timeout time.Duration, fn func() (m.Summary, error)) (m.Summary, error) {
	t.Helper()

	type result struct {
		summary m.Summary
		err     error
	}

	done := make(chan result, 1)

	go func() {
		s, err := fn()
		done <- result{s, err}
	}()

	select {
	case r := <-done:
		return r.summary, r.err
	case <-time.After(timeout):
		t.Fatalf("scan did not terminate within %s", timeout)
		return m.Summary{}, errors.New("timeout")
	}
}
