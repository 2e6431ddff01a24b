package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openkraft/localelint/internal/adapters/outbound/config"
	"github.com/openkraft/localelint/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/localelint/internal/adapters/outbound/history"
	"github.com/openkraft/localelint/internal/adapters/outbound/parser"
	"github.com/openkraft/localelint/internal/adapters/outbound/report"
	"github.com/openkraft/localelint/internal/adapters/outbound/source"
	"github.com/openkraft/localelint/internal/application"
	"github.com/openkraft/localelint/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "localelint",
		Short:         "Keep every translation in step with the reference locale",
		Long:          "localelint checks translation files against a reference locale document and reports malformed files, missing keys, and extra keys.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI. A failed validation has already printed its
// messages, so only other errors are written to stderr.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, domain.ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loggerFor builds the console logger for a command, writing to its stderr.
func loggerFor(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return newLogger(cmd.ErrOrStderr(), verbose)
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func newCheckService(logger *zap.Logger) *application.CheckService {
	return application.NewCheckService(
		config.New(),
		source.New(),
		parser.NewRegistry(),
		report.New(),
		application.WithLogger(logger),
		application.WithHistory(history.New()),
		application.WithChangeDetector(gitinfo.New()),
	)
}
