package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastcheck.dev/pkg/fastcheck/internal/domain"
)

type workflowCall struct {
	engine string
	tui    bool
}

// stubWorkflow makes every command use wf and records how it was requested.
func stubWorkflow(t *testing.T, wf domain.Workflow) *[]workflowCall {
	t.Helper()

	original := newWorkflow
	t.Cleanup(func() { newWorkflow = original })

	calls := &[]workflowCall{}
	newWorkflow = func(_ *cobra.Command, engine string, tui bool) (domain.Workflow, error) {
		*calls = append(*calls, workflowCall{engine: engine, tui: tui})
		return wf, nil
	}

	return calls
}

// newTestRoot returns a root command with sub attached and captured output.
func newTestRoot(sub *cobra.Command) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := newRootCmd()
	cmd.AddCommand(sub)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return cmd, out, errOut
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "fastcheck", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup(logFileFlagName))
	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("v"))
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd, out, _ := newTestRoot(newScanCmd())

	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "scan")
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Subset(t, names, []string{"scan", "rules", "view", "init", "version"})
}

func TestInit(t *testing.T) {
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, reportStore)
	assert.NotNil(t, newWorkflow)
}

func TestDefaultWorkflow(t *testing.T) {
	cmd, _, _ := newTestRoot(newScanCmd())

	wf, err := defaultWorkflow(cmd, "", false)
	require.NoError(t, err)
	assert.NotNil(t, wf)

	_, err = defaultWorkflow(cmd, "clamav", false)
	require.Error(t, err)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd

		Execute()

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)
	assert.Contains(t, string(output), "command failed")

	var exitErr *exec.ExitError
	if assert.ErrorAs(t, err, &exitErr) {
		assert.Equal(t, 1, exitErr.ExitCode())
	}
}
