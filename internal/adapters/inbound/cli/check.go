package cli

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/openkraft/localelint/internal/adapters/outbound/tui"
	"github.com/openkraft/localelint/internal/application"
	"github.com/openkraft/localelint/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		path       string
		files      string
		since      string
		reference  string
		dir        string
		out        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate translation files against the reference document",
		Long: `Validate translation files against the reference document.

Candidates come from, in order of precedence: the positional arguments, --files,
the CHANGED_FILES environment variable, --since, and finally every recognized
file in the translations directory. The results are always written to the
configured results path. Exits 1 when any check fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := application.CheckRequest{
				Since:     since,
				Reference: reference,
				Dir:       dir,
				Out:       out,
			}

			switch {
			case len(args) > 0:
				req.Files, req.FilesSet = args, true
			case cmd.Flags().Changed("files"):
				req.Files, req.FilesSet = application.SplitFileList(files), true
			default:
				if env, ok := application.FilesFromEnv(os.Getenv(application.ChangedFilesEnv)); ok {
					req.Files, req.FilesSet = env, true
				}
			}

			logger := loggerFor(cmd)
			defer func() { _ = logger.Sync() }()

			result, err := newCheckService(logger).Check(path, req)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderCheckJSON(cmd, result.Report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(result))
				fmt.Fprint(cmd.ErrOrStderr(), tui.RenderFailures(result))
			}

			if !result.Report.Valid {
				return domain.ErrValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project root holding the reference and .localelint.yaml")
	cmd.Flags().StringVar(&files, "files", "", "Comma-separated translation files to validate")
	cmd.Flags().StringVar(&since, "since", "", "Only validate files changed in git since this revision")
	cmd.Flags().StringVar(&reference, "reference", "", "Reference document (overrides config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Translations directory (overrides config)")
	cmd.Flags().StringVar(&out, "out", "", "Where to write the results JSON (overrides config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the results JSON instead of styled output")

	return cmd
}

func renderCheckJSON(cmd *cobra.Command, report domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
