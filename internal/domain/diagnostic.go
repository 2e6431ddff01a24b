package domain

import (
	"errors"
	"unicode/utf8"
)

// ParseError is returned by document parsers. Offset is the byte offset the
// parser stopped at, or -1 when the parser does not expose one.
type ParseError struct {
	Message string
	Offset  int64
}

func (e *ParseError) Error() string { return e.Message }

// LocateOffset converts a byte offset in raw into a 1-based line and column.
// Columns count characters, not bytes. Offsets past the end are clamped.
func LocateOffset(raw []byte, offset int64) *Location {
	if offset < 0 {
		return nil
	}
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}

	loc := &Location{Line: 1, Column: 1}
	text := raw[:offset]
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		if r == '\n' {
			loc.Line++
			loc.Column = 1
			continue
		}
		loc.Column++
	}
	return loc
}

// Diagnose turns a parser error into a Diagnostic. Errors that carry no offset
// produce a message-only diagnostic.
func Diagnose(format string, raw []byte, err error) Diagnostic {
	d := Diagnostic{Format: format}
	if err == nil {
		return d
	}
	d.Message = err.Error()

	var pe *ParseError
	if errors.As(err, &pe) {
		d.Message = pe.Message
		d.Location = LocateOffset(raw, pe.Offset)
	}
	if d.Message == "" {
		d.Message = "malformed document"
	}
	return d
}
