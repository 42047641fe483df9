package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// recentMatches is how many match records the live view keeps on screen.
const recentMatches = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ruleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// TUI implements UI with a Bubble Tea program. Every Display call becomes a
// message on the program's event loop, which serializes them.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

type scanInfoMsg ScanInfo

type matchMsg m.MatchResult

type summaryMsg m.Summary

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options...)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	t.program = tea.NewProgram(newScanModel(cfg), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = p.Run()
	}(t.program, t.done)

	return nil
}

// Close stops the program and restores the terminal.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	p, done := t.program, t.done
	t.mu.Unlock()

	if p == nil {
		return
	}

	p.Quit()
	<-done
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-done:
	}
}

// DisplayScanInfo implements UI.
func (t *TUI) DisplayScanInfo(_ context.Context, info ScanInfo) {
	t.send(scanInfoMsg(info))
}

// DisplayMatch implements UI.
func (t *TUI) DisplayMatch(_ context.Context, result m.MatchResult) {
	t.send(matchMsg(result))
}

// DisplaySummary implements UI.
func (t *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	t.send(summaryMsg(summary))
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

// scanModel is the Bubble Tea model behind TUI.
type scanModel struct {
	cfg     StartConfig
	spinner spinner.Model
	info    *ScanInfo
	recent  []m.MatchResult
	matched int
	started time.Time
	summary *m.Summary
}

func newScanModel(cfg StartConfig) scanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return scanModel{cfg: cfg, spinner: s, started: time.Now()}
}

func (sm scanModel) Init() tea.Cmd {
	return sm.spinner.Tick
}

func (sm scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return sm, tea.Quit
		}
	case scanInfoMsg:
		info := ScanInfo(msg)
		sm.info = &info
	case matchMsg:
		sm.matched++

		sm.recent = append(sm.recent, m.MatchResult(msg))
		if len(sm.recent) > recentMatches {
			sm.recent = sm.recent[len(sm.recent)-recentMatches:]
		}
	case summaryMsg:
		summary := m.Summary(msg)
		sm.summary = &summary
	case spinner.TickMsg:
		var cmd tea.Cmd

		sm.spinner, cmd = sm.spinner.Update(msg)

		return sm, cmd
	}

	return sm, nil
}

func (sm scanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fastcheck"))
	b.WriteString("\n\n")

	if sm.info != nil {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render("root:"), pathStyle.Render(sm.info.Root.String()))
		fmt.Fprintf(&b, "%s %d  %s %d  %s %d (%s)\n\n",
			mutedStyle.Render("workers:"), sm.info.Workers,
			mutedStyle.Render("queue:"), sm.info.QueueSize,
			mutedStyle.Render("rules:"), sm.info.Rules, sm.info.Engine)
	}

	if sm.summary == nil && sm.cfg.mode == ModeScan {
		fmt.Fprintf(&b, "%s scanning... %d matching file(s), %s\n\n",
			sm.spinner.View(), sm.matched, time.Since(sm.started).Round(time.Second))
	}

	for _, r := range sm.recent {
		rules := make([]string, len(r.Rules))
		for i, rule := range r.Rules {
			rules[i] = ruleStyle.Render(rule)
		}

		fmt.Fprintf(&b, "%s %s\n", pathStyle.Render(r.Path.String()), strings.Join(rules, " "))
	}

	if hidden := sm.matched - len(sm.recent); hidden > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("... and %d earlier match(es)", hidden)))
		b.WriteString("\n")
	}

	if sm.summary != nil {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(renderSummaryBox(*sm.summary)))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("q: quit"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderSummaryBox(s m.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "scanned %d of %d file(s), %d matched, %d skipped\n",
		s.FilesScanned, s.FilesEnumerated, s.FilesMatched, s.FilesSkipped)
	fmt.Fprintf(&b, "read errors %d, scan errors %d, worker failures %d\n",
		s.ReadErrors, s.ScanErrors, s.WorkerFailures)
	fmt.Fprintf(&b, "%d rule(s), %d failed source(s), %s",
		s.RulesCompiled, s.RuleSourcesFailed, s.Duration.Round(time.Millisecond))

	if s.EnumerationErr != nil {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("enumeration failed: " + s.EnumerationErr.Error()))
	}

	if s.Cancelled {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("cancelled"))
	}

	return b.String()
}
