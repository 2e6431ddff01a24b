package cli

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/openkraft/localelint/internal/adapters/outbound/tui"
)

func newReportCmd() *cobra.Command {
	var (
		path        string
		showHistory bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the results of the last validation run",
		Long:  "Print the persisted results of the last check, or with --history the summary of every recorded run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newCheckService(loggerFor(cmd))

			if showHistory {
				entries, err := svc.History(path)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				if jsonOutput {
					return printJSON(cmd, entries)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			last, err := svc.LastReport(path)
			if err != nil {
				return fmt.Errorf("loading report: %w", err)
			}
			if jsonOutput {
				// A nil report encodes as null.
				return printJSON(cmd, last)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(last))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project root")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show run history instead of the last report")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
