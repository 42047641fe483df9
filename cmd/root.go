// Package cmd provides the root command and CLI setup for fastcheck.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/controller"
	"fastcheck.dev/pkg/fastcheck/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore

// newWorkflow builds the workflow for one command run. Tests replace it.
var newWorkflow = defaultWorkflow

// logFileFlag and verboseFlag are root-level flags shared by every command.
var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewLocalReportStore()
}

const rootLongDescription = `Fastcheck scans a directory tree with a set of YARA-style rules and
reports every file that matches at least one rule.

Files are read by a single dispatcher and handed to a pool of workers through
a bounded queue, so memory stays flat on large trees. Rules come from the
embedded bundle plus any directories passed with --rules.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "fastcheck",
		Short:         "Concurrent YARA-style file scanner",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(cmd.ErrOrStderr(), logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd creates a root command with its persistent flags but without
// subcommands.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "also write logs to this file (rotated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func bindFlagsToConfig(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		bindFlagToConfig(flags.Lookup(name), key)
	}
}

// defaultWorkflow wires the local adapters with the requested engine and UI.
func defaultWorkflow(cmd *cobra.Command, engineName string, tui bool) (domain.Workflow, error) {
	engine, err := adapter.NewRuleEngine(engineName)
	if err != nil {
		return nil, err
	}

	return domain.NewWorkflow(fsAdapter, reportStore, engine, controller.NewUI(cmd, tui)), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
