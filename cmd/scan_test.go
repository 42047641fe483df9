package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fastcheck.dev/pkg/fastcheck/internal/domain"
	domainmocks "fastcheck.dev/pkg/fastcheck/internal/domain/mocks"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

func TestScanCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	calls := stubWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().Scan(mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Root == m.Path("./") &&
			args.Workers == domain.DefaultWorkers &&
			args.QueueSize == 0 &&
			args.MaxFileSize == 0 &&
			args.Report == "" &&
			args.Bundle.Len() > 0
	})).Return(m.Summary{}, nil).Once()

	cmd, _, _ := newTestRoot(newScanCmd())
	cmd.SetArgs([]string{"scan"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []workflowCall{{engine: "builtin"}}, *calls)
}

func TestScanCmd_Flags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	calls := stubWorkflow(t, mockWorkflow)

	rulesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(rulesDir, "extra.yar"),
		[]byte(`rule extra { strings: $a = "extra" condition: $a }`), 0o644))

	mockWorkflow.EXPECT().Scan(mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		sources := args.Bundle.Sources()
		last := sources[len(sources)-1]

		return args.Root == m.Path("/data") &&
			args.Workers == 4 &&
			args.QueueSize == 16 &&
			assert.ObjectsAreEqual([]string{`\.git$`, `node_modules`}, args.Exclude) &&
			args.MaxFileSize == 1024 &&
			args.SkipUnresolvable &&
			args.Report == m.Path("out.json") &&
			last.Name == filepath.Join(rulesDir, "extra.yar")
	})).Return(m.Summary{}, nil).Once()

	cmd, _, _ := newTestRoot(newScanCmd())
	cmd.SetArgs([]string{
		"scan", "-p", "/data", "-t", "4", "-q", "16",
		"-x", `\.git$`, "-x", "node_modules",
		"--max-size", "1024", "--skip-unresolvable",
		"-r", rulesDir, "--report", "out.json", "--tui",
	})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []workflowCall{{engine: "builtin", tui: true}}, *calls)
}

func TestScanCmd_Alias(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().Scan(mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Root == m.Path("somewhere")
	})).Return(m.Summary{}, nil).Once()

	cmd, _, _ := newTestRoot(newScanCmd())
	cmd.SetArgs([]string{"dp", "--path", "somewhere"})
	require.NoError(t, cmd.Execute())
}

func TestScanCmd_InvalidThreadFallsBackToDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	stubWorkflow(t, mockWorkflow)

	mockWorkflow.EXPECT().Scan(mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Workers == 10
	})).Return(m.Summary{}, nil).Once()

	cmd, _, errOut := newTestRoot(newScanCmd())
	cmd.SetArgs([]string{"scan", "--thread", "abc"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "Invalid worker count")
	assert.Contains(t, errOut.String(), "value=abc")
}

func TestScanCmd_Errors(t *testing.T) {
	t.Run("workflow error fails the command", func(t *testing.T) {
		mockWorkflow := domainmocks.NewMockWorkflow(t)
		stubWorkflow(t, mockWorkflow)

		mockWorkflow.EXPECT().Scan(mock.Anything, mock.Anything).Return(m.Summary{}, errors.New("save report: disk full")).Once()

		cmd, _, _ := newTestRoot(newScanCmd())
		cmd.SetArgs([]string{"scan", "--report", "r.yaml"})
		require.ErrorContains(t, cmd.Execute(), "disk full")
	})

	t.Run("missing rule directory", func(t *testing.T) {
		stubWorkflow(t, domainmocks.NewMockWorkflow(t))

		cmd, _, _ := newTestRoot(newScanCmd())
		cmd.SetArgs([]string{"scan", "-r", filepath.Join(t.TempDir(), "nope")})
		require.ErrorContains(t, cmd.Execute(), "load rules")
	})

	t.Run("positional arguments are rejected", func(t *testing.T) {
		stubWorkflow(t, domainmocks.NewMockWorkflow(t))

		cmd, _, _ := newTestRoot(newScanCmd())
		cmd.SetArgs([]string{"scan", "./dir"})
		require.Error(t, cmd.Execute())
	})
}

func TestScanCmd_EndToEnd(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("Lorem ipsum dolor sit amet"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.bin"), []byte{0x00, 0x13, 0x37}, 0o644))

	cmd, out, _ := newTestRoot(newScanCmd())
	cmd.SetArgs([]string{"scan", "-p", root, "-t", "2"})
	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "file: "+filepath.Join(root, "a.txt")+" matches rules:\n\tlorem_ipsum\n")
	assert.NotContains(t, output, "b.bin")
	assert.Contains(t, output, "MATCHED 1")
}

func TestScanCmd_EndToEnd_MissingRoot(t *testing.T) {
	cmd, out, errOut := newTestRoot(newScanCmd())
	cmd.SetArgs([]string{"scan", "-p", filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "enumeration failed")
	assert.Contains(t, errOut.String(), "Failed to enumerate scan root")
}

func TestParseWorkers(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"10", 10},
		{" 3 ", 3},
		{"64", 64},
		{"0", 1},
		{"-5", 1},
		{"abc", domain.DefaultWorkers},
		{"", domain.DefaultWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseWorkers(tt.value))
		})
	}
}
