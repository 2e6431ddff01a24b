package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/openkraft/localelint/internal/domain"
)

// runsFile is relative to the project root.
const runsFile = ".localelint/history/runs.json"

// FileHistory keeps every recorded run in a single JSON array on disk.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// Save appends entry to the project's run log. The log is rewritten through a
// sibling temp file and renamed into place, so readers see either the old or
// the new array.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	runs, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(append(runs, entry), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run history: %w", err)
	}
	return replaceFile(filepath.Join(projectPath, runsFile), append(data, '\n'))
}

// Load returns the recorded runs, oldest first. A project with no log yet has
// no runs.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, runsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading run history: %w", err)
	}

	var runs []domain.RunEntry
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("decoding run history: %w", err)
	}
	return runs, nil
}

func replaceFile(target string, data []byte) (err error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "runs-*.json.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
