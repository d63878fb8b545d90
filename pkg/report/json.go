package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/uniformal/unicheck/pkg/check"
)

// Document is the machine-readable form of a report, for --output json.
type Document struct {
	Summary  Summary               `json:"summary"`
	Sections []check.SectionTally  `json:"sections,omitempty"`
	Missing  []check.CheckResult   `json:"missing,omitempty"`
	Issues   []check.PatternResult `json:"issues,omitempty"`
	Warnings []check.Warning       `json:"warnings,omitempty"`
}

// NewDocument builds the machine-readable report for a run result.
func NewDocument(result *check.Result) Document {
	return Document{
		Summary:  Summarize(result),
		Sections: result.Sections,
		Missing:  result.Missing(),
		Issues:   result.Issues(),
		Warnings: result.Warnings,
	}
}

// JSONRenderer writes reports as indented JSON.
type JSONRenderer struct {
	w io.Writer
}

// NewJSONRenderer creates a [JSONRenderer] writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{w: w}
}

// Render writes the JSON document and returns the summary so the caller can
// map the score to an exit status.
func (r *JSONRenderer) Render(result *check.Result) (Summary, error) {
	doc := NewDocument(result)

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")

	err := enc.Encode(doc)
	if err != nil {
		return doc.Summary, fmt.Errorf("encode report: %w", err)
	}

	return doc.Summary, nil
}
