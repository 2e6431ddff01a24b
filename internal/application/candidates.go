package application

import (
	"path"
	"path/filepath"
	"strings"
)

// ChangedFilesEnv names the environment variable CI sets to a comma-separated
// list of candidate files.
const ChangedFilesEnv = "CHANGED_FILES"

// SplitFileList splits a comma-separated list, trimming entries and dropping
// blanks. The result is never nil.
func SplitFileList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FilesFromEnv interprets the value of CHANGED_FILES. The second result is
// false when the variable is unset or empty, meaning the caller should fall
// through to the next candidate source.
func FilesFromEnv(value string) ([]string, bool) {
	if value == "" {
		return nil, false
	}
	return SplitFileList(value), true
}

// candidateID strips a redundant "<dir>/" prefix so that "translations/fr.json"
// and "fr.json" name the same candidate.
func candidateID(dir, name string) string {
	name = path.Clean(filepath.ToSlash(name))
	prefix := path.Clean(filepath.ToSlash(dir)) + "/"
	if prefix != "./" && strings.HasPrefix(name, prefix) {
		return strings.TrimPrefix(name, prefix)
	}
	return name
}

func resolvePath(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}
