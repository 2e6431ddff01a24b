package domain

import "errors"

var (
	// ErrDocumentNotFound is returned by a DocumentSource when a path does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrValidationFailed is returned by commands after a failing run whose
	// messages were already printed.
	ErrValidationFailed = errors.New("validation failed")
)

// DocumentParser parses the raw text of one locale document.
type DocumentParser interface {
	// Format is the human-readable format name used in diagnostics, e.g. "JSON".
	Format() string
	Parse(raw []byte) (*Mapping, error)
}

// ParserRegistry selects the DocumentParser for a file name.
type ParserRegistry interface {
	ForFile(name string) (DocumentParser, bool)
}

// DocumentSource reads and enumerates locale documents on disk.
type DocumentSource interface {
	Read(path string) ([]byte, error)
	List(dir string, extensions []string) ([]string, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ReportStore persists run reports at a fixed location.
type ReportStore interface {
	Save(path string, report RunReport) error
	Load(path string) (*RunReport, error)
}

// RunHistory records a summary of every run.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// ChangeDetector lists files changed in version control since a revision.
type ChangeDetector interface {
	ChangedFiles(projectPath, since, dir string, extensions []string) ([]string, error)
	CommitHash(projectPath string) (string, error)
}

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp    string `json:"timestamp"`
	CommitHash   string `json:"commit_hash,omitempty"`
	Valid        bool   `json:"valid"`
	FilesChecked int    `json:"files_checked"`
	ErrorCount   int    `json:"error_count"`
}
