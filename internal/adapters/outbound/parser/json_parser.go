package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/openkraft/localelint/internal/domain"
)

// JSONParser implements domain.DocumentParser for JSON locale files.
type JSONParser struct{}

// NewJSON creates a JSONParser.
func NewJSON() *JSONParser { return &JSONParser{} }

func (p *JSONParser) Format() string { return "JSON" }

// Parse checks raw for strict RFC 8259 syntax, then reads the top-level keys
// in document order, exactly as written. Syntax errors carry the decoder's
// byte offset.
func (p *JSONParser) Parse(raw []byte) (*domain.Mapping, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, toParseError(err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, &domain.ParseError{
			Message: fmt.Sprintf("top-level value must be an object, got %s", kindOf(doc)),
			Offset:  -1,
		}
	}

	m := domain.NewMapping()
	err := jsonparser.ObjectEach(raw, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("decoding key %q: %w", key, err)
		}
		m.Set(k, string(value))
		return nil
	})
	if err != nil {
		return nil, &domain.ParseError{Message: err.Error(), Offset: -1}
	}
	return m, nil
}

func toParseError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &domain.ParseError{Message: syntaxErr.Error(), Offset: syntaxErr.Offset}
	}
	return &domain.ParseError{Message: err.Error(), Offset: -1}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
