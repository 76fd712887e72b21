package session

import (
	"errors"
	"testing"

	"goscript/internal/compiler"
	"goscript/internal/diag"
	"goscript/internal/refs"
)

type captureCompiler struct {
	calls int
	src   string
	opts  compiler.Options
}

func (c *captureCompiler) Compile(src string, opts compiler.Options) (compiler.Artifact, *diag.Bag, error) {
	c.calls++
	c.src = src
	c.opts = opts
	return nil, diag.NewBag(10), nil
}

type fakeRegistry struct {
	libs []refs.Library
}

func (f *fakeRegistry) Libraries() []refs.Library { return f.libs }

func newTestSession(comp compiler.Compiler) *Session {
	return New(comp, &fakeRegistry{libs: []refs.Library{
		{Path: "encoding/json", Name: "json"},
		{Path: "fmt", Name: "fmt"},
	}})
}

func TestCompileEmptyScript(t *testing.T) {
	comp := &captureCompiler{}
	for _, script := range []string{"", "   \n\t  "} {
		s := newTestSession(comp)
		s.Script = script
		_, _, err := s.Compile()
		var cfg *ConfigError
		if !errors.As(err, &cfg) {
			t.Fatalf("script %q: expected ConfigError, got %v", script, err)
		}
	}
	if comp.calls != 0 {
		t.Fatalf("compiler was invoked %d times for empty scripts", comp.calls)
	}
}

func TestCompilePassesOptionsVerbatim(t *testing.T) {
	comp := &captureCompiler{}
	s := newTestSession(comp)
	s.Script = "package main"
	s.WarningLevel = 3
	s.WarningsAsErrors = false
	if _, err := s.AddReference("fmt", true); err != nil {
		t.Fatalf("AddReference failed: %v", err)
	}
	if _, err := s.AddReference("fmt", true); err != nil {
		t.Fatalf("AddReference failed: %v", err)
	}
	if _, _, err := s.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if comp.opts.Executable || !comp.opts.InMemory || comp.opts.Debug {
		t.Fatalf("fixed option bits wrong: %+v", comp.opts)
	}
	if comp.opts.EntryHint != "Program.Main" {
		t.Fatalf("EntryHint = %q, want Program.Main", comp.opts.EntryHint)
	}
	if comp.opts.WarningLevel != 3 || comp.opts.WarningsAsErrors {
		t.Fatalf("warning policy not passed through: %+v", comp.opts)
	}
	if len(comp.opts.References) != 2 || comp.opts.References[0] != "fmt" || comp.opts.References[1] != "fmt" {
		t.Fatalf("references not appended twice identically: %v", comp.opts.References)
	}
}

func TestSessionIsSingleUse(t *testing.T) {
	comp := &captureCompiler{}
	s := newTestSession(comp)
	s.Script = "package main"
	if _, _, err := s.Compile(); err != nil {
		t.Fatalf("first Compile failed: %v", err)
	}
	_, _, err := s.Compile()
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("second Compile = %v, want ConfigError", err)
	}
	if comp.calls != 1 {
		t.Fatalf("compiler invoked %d times, want 1", comp.calls)
	}
}

func TestAddReferencePartialMatchSignal(t *testing.T) {
	s := newTestSession(&captureCompiler{})
	res, err := s.AddReference("json", false)
	if err != nil {
		t.Fatalf("AddReference failed: %v", err)
	}
	if !res.Partial || res.Requested != "json" || res.ResolvedTo != "encoding/json" {
		t.Fatalf("partial signal wrong: %+v", res)
	}
	if got := s.References(); len(got) != 1 || got[0] != "encoding/json" {
		t.Fatalf("reference list = %v", got)
	}
	if len(s.PartialMatches()) != 1 {
		t.Fatalf("partial match not recorded")
	}
}

func TestAddReferenceMustFullyMatch(t *testing.T) {
	s := newTestSession(&captureCompiler{})
	_, err := s.AddReference("json", true)
	var nf *refs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(s.References()) != 0 {
		t.Fatalf("failed resolution must not append a reference")
	}
}

func TestAddReferenceBlankName(t *testing.T) {
	s := newTestSession(&captureCompiler{})
	_, err := s.AddReference("  ", false)
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError for blank name, got %v", err)
	}
}

func TestAddLocalReferences(t *testing.T) {
	s := newTestSession(&captureCompiler{})
	s.AddLocalReferences()
	got := s.References()
	if len(got) != 2 || got[0] != "encoding/json" || got[1] != "fmt" {
		t.Fatalf("local references = %v", got)
	}
}

func TestSetEntryPoint(t *testing.T) {
	s := newTestSession(&captureCompiler{})
	if err := s.SetEntryPoint("Tool.Run"); err != nil {
		t.Fatalf("SetEntryPoint failed: %v", err)
	}
	if s.EntryClass != "Tool" || s.EntryMethod != "Run" {
		t.Fatalf("entry coordinate = %s.%s", s.EntryClass, s.EntryMethod)
	}
	if err := s.SetEntryPoint("broken"); err == nil {
		t.Fatalf("malformed coordinate must not be accepted")
	}
	// The failed update must not clobber the previous coordinate.
	if s.EntryClass != "Tool" || s.EntryMethod != "Run" {
		t.Fatalf("entry coordinate corrupted by failed update")
	}
}
