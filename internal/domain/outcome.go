package domain

// Outcome is the result of checking one candidate document.
// The set of implementations is closed; Aggregate switches over all of them.
type Outcome interface {
	FileID() string
	Passed() bool
	isOutcome()
}

// Location is a 1-based position inside a document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic describes why a document could not be parsed.
type Diagnostic struct {
	Format   string    `json:"format"`
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`
}

// ParseFailure means the candidate is not well-formed structured data.
type ParseFailure struct {
	File       string
	Diagnostic Diagnostic
}

// StructuralResult is the key-set diff between a candidate and the reference.
type StructuralResult struct {
	File        string
	MissingKeys []string
	ExtraKeys   []string
}

// MissingDocument means a named candidate does not resolve to a file.
type MissingDocument struct {
	File string
}

// UnreadableDocument means a candidate exists but could not be read.
type UnreadableDocument struct {
	File   string
	Reason string
}

// InvalidLocaleName means a candidate's file name is not a BCP 47 tag.
// Only produced when the project requires locale file names.
type InvalidLocaleName struct {
	File string
}

func (o ParseFailure) FileID() string       { return o.File }
func (o StructuralResult) FileID() string   { return o.File }
func (o MissingDocument) FileID() string    { return o.File }
func (o UnreadableDocument) FileID() string { return o.File }
func (o InvalidLocaleName) FileID() string  { return o.File }

func (ParseFailure) Passed() bool { return false }

func (o StructuralResult) Passed() bool {
	return len(o.MissingKeys) == 0 && len(o.ExtraKeys) == 0
}

func (MissingDocument) Passed() bool    { return false }
func (UnreadableDocument) Passed() bool { return false }
func (InvalidLocaleName) Passed() bool  { return false }

func (ParseFailure) isOutcome()       {}
func (StructuralResult) isOutcome()   {}
func (MissingDocument) isOutcome()    {}
func (UnreadableDocument) isOutcome() {}
func (InvalidLocaleName) isOutcome()  {}

// OutcomeSummary is the JSON view of an Outcome used by tool integrations.
type OutcomeSummary struct {
	File        string      `json:"file"`
	Status      string      `json:"status"`
	Diagnostic  *Diagnostic `json:"diagnostic,omitempty"`
	MissingKeys []string    `json:"missing_keys,omitempty"`
	ExtraKeys   []string    `json:"extra_keys,omitempty"`
	Messages    []string    `json:"messages"`
}

// Summarize flattens an outcome into its JSON view. referenceID names the
// reference document in the rendered messages.
func Summarize(referenceID string, o Outcome) OutcomeSummary {
	s := OutcomeSummary{
		File:     o.FileID(),
		Status:   "pass",
		Messages: messagesFor(referenceID, o),
	}
	if s.Messages == nil {
		s.Messages = []string{}
	}
	if !o.Passed() {
		s.Status = "fail"
	}

	switch v := o.(type) {
	case ParseFailure:
		d := v.Diagnostic
		s.Diagnostic = &d
	case StructuralResult:
		s.MissingKeys = v.MissingKeys
		s.ExtraKeys = v.ExtraKeys
	}
	return s
}
