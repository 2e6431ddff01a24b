package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default locations, relative to the project root.
const (
	DefaultReference       = "en-US.json"
	DefaultTranslationsDir = "translations"
	DefaultResultsPath     = ".localelint/validation-results.json"
)

// ValidExtensions enumerates the document extensions a parser exists for.
var ValidExtensions = []string{".json", ".yaml", ".yml"}

// ProjectConfig holds project-level configuration loaded from .localelint.yaml.
type ProjectConfig struct {
	Reference          string   `yaml:"reference"            json:"reference"`
	TranslationsDir    string   `yaml:"translations_dir"     json:"translations_dir"`
	ResultsPath        string   `yaml:"results_path"         json:"results_path"`
	Extensions         []string `yaml:"extensions"           json:"extensions"`
	RequireLocaleNames bool     `yaml:"require_locale_names" json:"require_locale_names,omitempty"`
	History            bool     `yaml:"history"              json:"history,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Reference:       DefaultReference,
		TranslationsDir: DefaultTranslationsDir,
		ResultsPath:     DefaultResultsPath,
		Extensions:      []string{".json"},
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.Reference == "" {
		c.Reference = d.Reference
	}
	if c.TranslationsDir == "" {
		c.TranslationsDir = d.TranslationsDir
	}
	if c.ResultsPath == "" {
		c.ResultsPath = d.ResultsPath
	}
	if len(c.Extensions) == 0 {
		c.Extensions = d.Extensions
	}
	return c
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if strings.TrimSpace(c.Reference) == "" {
		return fmt.Errorf("reference must not be empty")
	}
	if strings.TrimSpace(c.TranslationsDir) == "" {
		return fmt.Errorf("translations_dir must not be empty")
	}
	if strings.TrimSpace(c.ResultsPath) == "" {
		return fmt.Errorf("results_path must not be empty")
	}
	if !IsRecognizedExtension(c.Reference, ValidExtensions) {
		return fmt.Errorf("reference %q has unsupported extension (valid: %s)",
			c.Reference, strings.Join(ValidExtensions, ", "))
	}
	for _, ext := range c.Extensions {
		if !isValidExtension(ext) {
			return fmt.Errorf("unknown extension %q (valid: %s)", ext, strings.Join(ValidExtensions, ", "))
		}
	}
	return nil
}

// IsRecognizedExtension reports whether name ends in one of extensions.
// The comparison ignores case.
func IsRecognizedExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func isValidExtension(ext string) bool {
	for _, v := range ValidExtensions {
		if strings.EqualFold(ext, v) {
			return true
		}
	}
	return false
}
