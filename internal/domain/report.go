package domain

import (
	"fmt"
	"strings"
)

// Run-level messages. Each is distinct so callers and CI logs can match on it.
const (
	MsgNothingToValidate = "No translation files to validate"
	MsgParseHint         = "Hint: Check for missing commas, quotes, or brackets near this location"
)

// RunReport is the aggregate verdict of one validation run. It is persisted
// as {"valid": bool, "errors": [string]} after every run.
type RunReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// NewRunReport returns a passing report with no messages.
func NewRunReport() RunReport {
	return RunReport{Valid: true, Errors: []string{}}
}

// WithError returns a copy of r with msgs appended and Valid cleared.
func (r RunReport) WithError(msgs ...string) RunReport {
	if len(msgs) == 0 {
		return r
	}
	out := r.WithNotice(msgs...)
	out.Valid = false
	return out
}

// WithNotice returns a copy of r with msgs appended. Valid is unchanged.
func (r RunReport) WithNotice(msgs ...string) RunReport {
	errs := make([]string, 0, len(r.Errors)+len(msgs))
	errs = append(errs, r.Errors...)
	errs = append(errs, msgs...)
	return RunReport{Valid: r.Valid, Errors: errs}
}

// Merge returns the concatenation of r and other. The result is valid only
// if both are.
func (r RunReport) Merge(other RunReport) RunReport {
	out := r.WithNotice(other.Errors...)
	out.Valid = r.Valid && other.Valid
	return out
}

// Aggregate folds outcomes, in order, into a fresh report. referenceID names
// the reference document in extra-key messages.
func Aggregate(referenceID string, outcomes []Outcome) RunReport {
	report := NewRunReport()
	for _, o := range outcomes {
		report = report.WithError(messagesFor(referenceID, o)...)
	}
	return report
}

// ReferenceMissing is the fatal message for an absent reference document.
func ReferenceMissing(referenceID string) string {
	return fmt.Sprintf("Base translation file (%s) not found", referenceID)
}

// ReferenceInvalid is the fatal message for a reference that does not parse.
func ReferenceInvalid(referenceID string, d Diagnostic) string {
	return fmt.Sprintf("Base translation file (%s) is invalid: %s", referenceID, describeDiagnostic(d))
}

// UnexpectedFailure is the message recorded at the outermost run boundary.
func UnexpectedFailure(cause any) string {
	return fmt.Sprintf("Validation script error: %v", cause)
}

func messagesFor(referenceID string, o Outcome) []string {
	switch v := o.(type) {
	case ParseFailure:
		msg := fmt.Sprintf("Invalid %s in %s", v.Diagnostic.Format, v.File)
		if v.Diagnostic.Location != nil {
			return []string{
				fmt.Sprintf("%s at %s", msg, describeDiagnostic(v.Diagnostic)),
				MsgParseHint,
			}
		}
		return []string{fmt.Sprintf("%s: %s", msg, v.Diagnostic.Message)}

	case StructuralResult:
		var msgs []string
		if len(v.MissingKeys) > 0 {
			msgs = append(msgs, fmt.Sprintf("Missing keys in %s: %s", v.File, strings.Join(v.MissingKeys, ", ")))
		}
		if len(v.ExtraKeys) > 0 {
			msgs = append(msgs, fmt.Sprintf("Extra keys in %s that don't exist in %s: %s",
				v.File, referenceID, strings.Join(v.ExtraKeys, ", ")))
		}
		return msgs

	case MissingDocument:
		return []string{fmt.Sprintf("File not found: %s", v.File)}

	case UnreadableDocument:
		return []string{fmt.Sprintf("Error reading file %s: %s", v.File, v.Reason)}

	case InvalidLocaleName:
		return []string{fmt.Sprintf("Invalid locale name: %s (expected a BCP 47 tag such as fr-FR)", v.File)}
	}
	return nil
}

func describeDiagnostic(d Diagnostic) string {
	if d.Location == nil {
		return d.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", d.Location.Line, d.Location.Column, d.Message)
}
