package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"goscript/internal/diag"
)

func testBag() *diag.Bag {
	b := diag.NewBag(10)
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynError, Message: "unexpected token", Line: 3, Col: 7})
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.HintMainIgnored, Message: "main ignored"})
	return b
}

func TestPrettyLayout(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, "script", testBag(), PrettyOpts{})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if lines[0] != "script:3:7: ERROR GS1001: unexpected token" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "script: WARNING GS4001: main ignored" {
		t.Fatalf("line 1 = %q", lines[1])
	}
}

func TestPrettyMax(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, "script", testBag(), PrettyOpts{Max: 1})
	out := buf.String()
	if !strings.Contains(out, "... and 1 more") {
		t.Fatalf("missing truncation marker:\n%s", out)
	}
}

func TestPrettyTrailerCountsCapDrops(t *testing.T) {
	b := diag.NewBag(1)
	for i := 0; i < 3; i++ {
		b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynError, Message: "e"})
	}
	var buf bytes.Buffer
	Pretty(&buf, "script", b, PrettyOpts{})
	if !strings.Contains(buf.String(), "... and 2 more") {
		t.Fatalf("trailer must count diagnostics rejected at the cap:\n%s", buf.String())
	}
}

func TestPrettyWidth(t *testing.T) {
	b := diag.NewBag(1)
	b.Add(diag.Diagnostic{Severity: diag.SevError, Message: strings.Repeat("x", 200)})
	var buf bytes.Buffer
	Pretty(&buf, "script", b, PrettyOpts{Width: 40})
	if !strings.Contains(buf.String(), "...") {
		t.Fatalf("long message was not truncated:\n%s", buf.String())
	}
}

func TestSummaryCounts(t *testing.T) {
	if got := Summary(testBag(), false); got != "1 error(s), 1 warning(s)" {
		t.Fatalf("Summary = %q", got)
	}
}

func TestJSONPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, "script", testBag(), JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var payload struct {
		Script      string `json:"script"`
		Errors      int    `json:"errors"`
		Warnings    int    `json:"warnings"`
		Diagnostics []struct {
			Code string `json:"code"`
			Line int    `json:"line"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if payload.Errors != 1 || payload.Warnings != 1 || len(payload.Diagnostics) != 2 {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Diagnostics[0].Code != "GS1001" || payload.Diagnostics[0].Line != 3 {
		t.Fatalf("first diagnostic = %+v", payload.Diagnostics[0])
	}
}
