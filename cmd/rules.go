package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fastcheck.dev/pkg/fastcheck/internal/adapter"
	"fastcheck.dev/pkg/fastcheck/internal/controller"
)

var rulesDirsFlag []string
var rulesEngineFlag string

var rulesFlagKeys = map[string]string{
	rulesFlagName:  rulesDirsKey,
	engineFlagName: rulesEngineKey,
}

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule sources and the rules they declare",
		Long: `Compile every rule source on its own and list the rule identifiers it
declares. Sources that fail to compile are flagged with their error.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagsToConfig(cmd.Flags(), rulesFlagKeys)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, errs := adapter.LoadRuleBundle(viper.GetStringSlice(rulesDirsKey))
			if len(errs) > 0 {
				return fmt.Errorf("load rules: %w", errors.Join(errs...))
			}

			wf, err := newWorkflow(cmd, viper.GetString(rulesEngineKey), false)
			if err != nil {
				return err
			}

			controller.NewSimpleUI(cmd).DisplayRuleSources(cmd.Context(), wf.InspectRules(bundle))

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&rulesDirsFlag, rulesFlagName, "r", nil, "extra directory of *.yar/*.yara rules (can be repeated)")
	cmd.Flags().StringVar(&rulesEngineFlag, engineFlagName, defaultEngine, "rule engine: builtin or yara")

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
