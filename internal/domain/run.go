package domain

import (
	"path/filepath"
	"strings"
)

// RunResult is everything one validation run produced. Report is what gets
// persisted; the rest feeds terminal output.
type RunResult struct {
	Report    RunReport
	Reference string
	Files     []string
	Outcomes  []Outcome
	Config    ProjectConfig
}

// FileHints groups the rename hints found for one candidate.
type FileHints struct {
	File  string
	Hints []RenameHint
}

// FailedCount returns how many outcomes did not pass.
func (r *RunResult) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed() {
			n++
		}
	}
	return n
}

// Hints collects rename hints across structural outcomes, in outcome order.
func (r *RunResult) Hints() []FileHints {
	var out []FileHints
	for _, o := range r.Outcomes {
		sr, ok := o.(StructuralResult)
		if !ok {
			continue
		}
		if hints := RenameHints(sr.MissingKeys, sr.ExtraKeys); len(hints) > 0 {
			out = append(out, FileHints{File: sr.File, Hints: hints})
		}
	}
	return out
}

// FormatOf names the document format implied by a file extension.
func FormatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "YAML"
	default:
		return "JSON"
	}
}
