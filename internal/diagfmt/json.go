package diagfmt

import (
	"encoding/json"
	"io"

	"goscript/internal/diag"
)

type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Col      int    `json:"col,omitempty"`
}

type jsonPayload struct {
	Script      string           `json:"script"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// JSON writes the bag as one indented JSON document.
func JSON(w io.Writer, name string, bag *diag.Bag, opts JSONOpts) error {
	max := opts.Max
	if max <= 0 || max > bag.Len() {
		max = bag.Len()
	}
	payload := jsonPayload{
		Script:      name,
		Errors:      bag.ErrorCount(),
		Warnings:    bag.WarningCount(),
		Diagnostics: make([]jsonDiagnostic, 0, max),
	}
	for _, d := range bag.Items()[:max] {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
		}
		if opts.IncludePositions {
			jd.Line = d.Line
			jd.Col = d.Col
		}
		payload.Diagnostics = append(payload.Diagnostics, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
