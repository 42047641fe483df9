package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// lockedBuffer lets the test read the output while workers write to it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func newTestCmd() (*cobra.Command, *lockedBuffer) {
	buf := &lockedBuffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return cmd, buf
}

func TestSimpleUI_DisplayMatch(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.Start(context.Background()))
	ui.DisplayMatch(context.Background(), m.MatchResult{Path: "/data/a.txt", Rules: []string{"lorem_ipsum", "other"}})

	assert.Equal(t, "file: /data/a.txt matches rules:\n\tlorem_ipsum\n\tother\n", buf.String())
}

func TestSimpleUI_ConcurrentMatchesDoNotInterleave(t *testing.T) {
	cmd, buf := newTestCmd()
	ui := NewSimpleUI(cmd)

	var wg sync.WaitGroup

	for w := range 16 {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := range 50 {
				ui.DisplayMatch(context.Background(), m.MatchResult{
					Path:  m.Path(fmt.Sprintf("/w%d/f%d", w, i)),
					Rules: []string{"r1", "r2", "r3"},
				})
			}
		}(w)
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 16*50*4)

	for i := 0; i < len(lines); i += 4 {
		assert.True(t, strings.HasPrefix(lines[i], "file: /w"), "record header at line %d: %q", i, lines[i])
		assert.Equal(t, []string{"\tr1", "\tr2", "\tr3"}, lines[i+1:i+4])
	}
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	tests := []struct {
		name         string
		summary      m.Summary
		wantContains []string
	}{
		{
			name: "complete run",
			summary: m.Summary{
				Root:            "/data",
				Workers:         4,
				FilesEnumerated: 10,
				FilesScanned:    9,
				FilesMatched:    2,
				ReadErrors:      1,
				Duration:        1234 * time.Millisecond,
			},
			wantContains: []string{"/data", "Files scanned", "Read errors", "MATCHED 2", "1.234S"},
		},
		{
			name: "enumeration failure",
			summary: m.Summary{
				Root:           "/missing",
				EnumerationErr: errors.New("path not found: /missing"),
			},
			wantContains: []string{"enumeration failed: path not found: /missing", "MATCHED 0"},
		},
		{
			name:         "cancelled",
			summary:      m.Summary{Cancelled: true},
			wantContains: []string{"scan cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCmd()
			NewSimpleUI(cmd).DisplaySummary(context.Background(), tt.summary)

			got := buf.String()
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestSimpleUI_DisplayScanInfo(t *testing.T) {
	cmd, buf := newTestCmd()
	NewSimpleUI(cmd).DisplayScanInfo(context.Background(), ScanInfo{
		Root: "/data", Workers: 10, QueueSize: 20, Engine: "builtin", Rules: 6,
	})

	assert.Equal(t, "Scanning /data with 10 worker(s), queue 20, 6 rule(s) [builtin]\n", buf.String())
}

func TestSimpleUI_DisplayRuleSources(t *testing.T) {
	cmd, buf := newTestCmd()
	NewSimpleUI(cmd).DisplayRuleSources(context.Background(), []RuleSourceStatus{
		{Name: "lorem_ipsum.yar", Rules: []string{"lorem_ipsum"}},
		{Name: "broken.yar", Err: errors.New("line 2: unexpected")},
	})

	got := buf.String()
	assert.Contains(t, got, "lorem_ipsum.yar")
	assert.Contains(t, got, "error: line 2: unexpected")
	assert.Contains(t, got, "1 FAILED")
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCmd()

	_, ok := NewUI(cmd, false).(*SimpleUI)
	assert.True(t, ok)

	// A buffer is never a terminal, so the TUI request falls back.
	_, ok = NewUI(cmd, true).(*SimpleUI)
	assert.True(t, ok)
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
