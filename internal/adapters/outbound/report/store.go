package report

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/openkraft/localelint/internal/domain"
)

// Store is a file-based implementation of domain.ReportStore.
type Store struct{}

// New creates a new file-based report store.
func New() *Store {
	return &Store{}
}

// Save writes report to path as indented JSON, creating directories as needed.
func (s *Store) Save(path string, report domain.RunReport) error {
	if report.Errors == nil {
		report.Errors = []string{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Load reads a persisted report. Returns (nil, nil) if none exists yet.
func (s *Store) Load(path string) (*domain.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
