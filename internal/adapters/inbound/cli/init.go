package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/localelint/internal/adapters/outbound/config"
	"github.com/openkraft/localelint/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		force    bool
		yamlDocs bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .localelint.yaml configuration file",
		Long:  "Create a .localelint.yaml with the default reference, translations directory, and results path.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig(yamlDocs)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .localelint.yaml")
	cmd.Flags().BoolVar(&yamlDocs, "yaml", false, "Configure for YAML locale documents")

	return cmd
}

func generateConfig(yamlDocs bool) string {
	reference := domain.DefaultReference
	extensions := "[.json]"
	if yamlDocs {
		reference = "en-US.yaml"
		extensions = "[.yaml, .yml]"
	}

	return fmt.Sprintf(`# localelint configuration
# Docs: localelint check --help

# Reference document every translation is compared against.
reference: %s

# Directory holding the translation documents.
translations_dir: %s

# Results of every run are written here.
results_path: %s

# Candidate file extensions (.json, .yaml, .yml).
extensions: %s

# Reject translation files whose name is not a BCP 47 tag such as fr-FR.
require_locale_names: false

# Append a summary of every run to .localelint/history/runs.json.
history: false
`, reference, domain.DefaultTranslationsDir, domain.DefaultResultsPath, extensions)
}
