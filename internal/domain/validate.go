package domain

import "fmt"

// Validate checks one candidate document against the reference mapping.
// Malformed input never escapes as an error or panic; it becomes a ParseFailure.
func Validate(fileID string, raw []byte, reference *Mapping, parser DocumentParser) Outcome {
	candidate, err := safeParse(parser, raw)
	if err != nil {
		return ParseFailure{File: fileID, Diagnostic: Diagnose(parser.Format(), raw, err)}
	}

	missing, extra := DiffKeys(reference, candidate)
	return StructuralResult{File: fileID, MissingKeys: missing, ExtraKeys: extra}
}

// ParseReference parses the reference document. A nil Diagnostic means the
// mapping is usable.
func ParseReference(raw []byte, parser DocumentParser) (*Mapping, *Diagnostic) {
	m, err := safeParse(parser, raw)
	if err != nil {
		d := Diagnose(parser.Format(), raw, err)
		return nil, &d
	}
	return m, nil
}

func safeParse(parser DocumentParser, raw []byte) (m *Mapping, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, &ParseError{Message: fmt.Sprintf("parser failed: %v", r), Offset: -1}
		}
	}()
	m, err = parser.Parse(raw)
	if err == nil && m == nil {
		m = NewMapping()
	}
	return m, err
}

// DiffKeys returns the reference keys absent from candidate, in reference
// order, and the candidate keys absent from reference, in candidate order.
func DiffKeys(reference, candidate *Mapping) (missing, extra []string) {
	for _, k := range reference.Keys() {
		if !candidate.Has(k) {
			missing = append(missing, k)
		}
	}
	for _, k := range candidate.Keys() {
		if !reference.Has(k) {
			extra = append(extra, k)
		}
	}
	return missing, extra
}
