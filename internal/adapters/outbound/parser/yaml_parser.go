package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/openkraft/localelint/internal/domain"
)

// YAMLParser implements domain.DocumentParser for YAML locale files.
// yaml.v3 reports errors by line only, so diagnostics carry no location.
type YAMLParser struct{}

// NewYAML creates a YAMLParser.
func NewYAML() *YAMLParser { return &YAMLParser{} }

func (p *YAMLParser) Format() string { return "YAML" }

func (p *YAMLParser) Parse(raw []byte) (*domain.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &domain.ParseError{Message: err.Error(), Offset: -1}
	}

	m := domain.NewMapping()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &domain.ParseError{
			Message: fmt.Sprintf("top-level value must be a mapping (line %d)", root.Line),
			Offset:  -1,
		}
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		m.Set(key.Value, value.Value)
	}
	return m, nil
}
