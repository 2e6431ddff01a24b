package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/openkraft/localelint/internal/domain"
)

// FileSource implements domain.DocumentSource on the local filesystem.
type FileSource struct{}

func New() *FileSource {
	return &FileSource{}
}

// Read returns the contents of path. A path that does not exist, or that
// names a directory, yields domain.ErrDocumentNotFound.
func (s *FileSource) Read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrDocumentNotFound)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, domain.ErrDocumentNotFound)
	}
	return os.ReadFile(path)
}

// List returns the names of regular files directly inside dir whose
// extension is in extensions, sorted by name. Subdirectories are not walked.
func (s *FileSource) List(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("translations directory %s: %w", dir, domain.ErrDocumentNotFound)
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if domain.IsRecognizedExtension(e.Name(), extensions) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
