package parser

import (
	"path/filepath"
	"strings"

	"github.com/openkraft/localelint/internal/domain"
)

// ForFile returns the parser registered for name's extension.
func ForFile(name string) (domain.DocumentParser, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return NewJSON(), true
	case ".yaml", ".yml":
		return NewYAML(), true
	}
	return nil, false
}

// Registry implements domain.ParserRegistry over ForFile.
type Registry struct{}

func NewRegistry() *Registry { return &Registry{} }

func (Registry) ForFile(name string) (domain.DocumentParser, bool) {
	return ForFile(name)
}
