package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fastcheck.dev/pkg/fastcheck/internal/domain"
	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view REPORT",
		Short: "View a previously saved scan report",
		Long:  "Replay the matches and summary of a report written with scan --report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := newWorkflow(cmd, viper.GetString(rulesEngineKey), false)
			if err != nil {
				return err
			}

			return wf.View(cmd.Context(), domain.ViewArgs{Report: m.Path(args[0])})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
