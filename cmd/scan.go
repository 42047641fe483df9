package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/domain"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

const scanLongDescription = `Scan every regular file under --path (default: the current directory)
and print each file that matches at least one rule.

Unreadable files, rule sources that fail to compile and a missing root are
logged and counted in the summary; they do not fail the run.`

var (
	scanPathFlag             string
	scanThreadFlag           string
	scanQueueFlag            int
	scanRulesFlag            []string
	scanExcludeFlag          []string
	scanMaxSizeFlag          int64
	scanSkipUnresolvableFlag bool
	scanEngineFlag           string
	scanReportFlag           string
	scanTUIFlag              bool
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scan",
		Aliases: []string{"dp"},
		Short:   "Scan a directory tree with the rule set",
		Long:    scanLongDescription,
		Args:    cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagsToConfig(cmd.Flags(), scanFlagKeys)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, errs := adapter.LoadRuleBundle(viper.GetStringSlice(rulesDirsKey))
			if len(errs) > 0 {
				return fmt.Errorf("load rules: %w", errors.Join(errs...))
			}

			wf, err := newWorkflow(cmd, viper.GetString(rulesEngineKey), viper.GetBool(outputTUIKey))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := wf.Scan(ctx, domain.ScanArgs{
				Root:             m.Path(viper.GetString(scanPathKey)),
				Workers:          parseWorkers(viper.GetString(scanThreadsKey)),
				QueueSize:        viper.GetInt(scanQueueKey),
				Exclude:          viper.GetStringSlice(scanExcludeKey),
				MaxFileSize:      viper.GetInt64(scanMaxSizeKey),
				SkipUnresolvable: viper.GetBool(scanSkipUnresolvableKey),
				Bundle:           bundle,
				Report:           m.Path(viper.GetString(outputReportKey)),
			})
			if err != nil {
				return err
			}

			slog.Debug("Scan command finished", "matched", summary.FilesMatched, "cancelled", summary.Cancelled)

			return nil
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// scanFlagKeys maps every scan flag to its config key. The bindings are made
// when the command runs since rules shares some of the flag names.
var scanFlagKeys = map[string]string{
	pathFlagName:             scanPathKey,
	threadFlagName:           scanThreadsKey,
	queueFlagName:            scanQueueKey,
	rulesFlagName:            rulesDirsKey,
	excludeFlagName:          scanExcludeKey,
	maxSizeFlagName:          scanMaxSizeKey,
	skipUnresolvableFlagName: scanSkipUnresolvableKey,
	engineFlagName:           rulesEngineKey,
	reportFlagName:           outputReportKey,
	tuiFlagName:              outputTUIKey,
}

func configureScanFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVarP(&scanPathFlag, pathFlagName, "p", defaultScanPath, "root directory or file to scan")
	flags.StringVarP(&scanThreadFlag, threadFlagName, "t", strconv.Itoa(domain.DefaultWorkers), "number of scanning workers")
	flags.IntVarP(&scanQueueFlag, queueFlagName, "q", 0, "job queue capacity (default: twice the worker count)")
	flags.StringArrayVarP(&scanRulesFlag, rulesFlagName, "r", nil, "extra directory of *.yar/*.yara rules (can be repeated)")
	flags.StringArrayVarP(&scanExcludeFlag, excludeFlagName, "x", nil, "exclude paths matching regex (can be repeated)")
	flags.Int64Var(&scanMaxSizeFlag, maxSizeFlagName, 0, "skip files larger than this many bytes (0: no limit)")
	flags.BoolVar(&scanSkipUnresolvableFlag, skipUnresolvableFlagName, false, "skip entries whose path cannot be resolved instead of failing the walk")
	flags.StringVar(&scanEngineFlag, engineFlagName, defaultEngine, "rule engine: builtin or yara")
	flags.StringVar(&scanReportFlag, reportFlagName, "", "write a report to this .yaml, .yml or .json file")
	flags.BoolVar(&scanTUIFlag, tuiFlagName, false, "show an interactive view when the output is a terminal")
}

// parseWorkers converts the --thread value. Non-numeric input falls back to
// the default worker count and values below one are clamped to one.
func parseWorkers(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		slog.Warn("Invalid worker count, using default", "value", value, "default", domain.DefaultWorkers)
		return domain.DefaultWorkers
	}

	return domain.ClampWorkers(n)
}
