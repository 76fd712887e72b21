package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"goscript/internal/dispatch"
)

func writeScript(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "script.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func testRunConfig() runConfig {
	return runConfig{maxDiags: 100}
}

func TestExecuteScriptHappyPath(t *testing.T) {
	path := writeScript(t, t.TempDir(), `package main

type Program struct{}

func (Program) Main(args []string) {}
`)
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: path}, testRunConfig())
	if err != nil {
		t.Fatalf("executeScript failed: %v\noutput:\n%s", err, out.String())
	}
}

func TestExecuteScriptArgsReachEntryPoint(t *testing.T) {
	path := writeScript(t, t.TempDir(), `package main

type Program struct{}

func (Program) Main(args []string) {
	panic(args[0] + "|" + args[1])
}
`)
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: path, scriptArgs: []string{"left", "right"}}, testRunConfig())
	var script *dispatch.ScriptError
	if !errors.As(err, &script) {
		t.Fatalf("expected ScriptError, got %v", err)
	}
	if !strings.Contains(err.Error(), "left|right") {
		t.Fatalf("args did not reach the entry point: %v", err)
	}
}

func TestExecuteScriptCompileFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, `package main

import "goscript/no/such/package"

type Program struct{}

func (Program) Main(args []string) {}
`)
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: path}, testRunConfig())
	if err == nil {
		t.Fatalf("compilation must fail")
	}
	if !strings.Contains(out.String(), "GS2001") {
		t.Fatalf("missing-reference diagnostic not printed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "error(s)") {
		t.Fatalf("summary line not printed:\n%s", out.String())
	}
}

func TestExecuteScriptEntryPointOverride(t *testing.T) {
	path := writeScript(t, t.TempDir(), `package main

type Tool struct{}

func (Tool) Run(args []string) {}
`)
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: path, entryPoint: "Tool.Run", entryPointSet: true}, testRunConfig())
	if err != nil {
		t.Fatalf("executeScript failed: %v", err)
	}
}

func TestExecuteScriptEmptyEntryPointFails(t *testing.T) {
	path := writeScript(t, t.TempDir(), `package main

type Program struct{}

func (Program) Main(args []string) {}
`)
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: path, entryPointSet: true}, testRunConfig())
	var syntax *dispatch.EntryPointSyntaxError
	if !errors.As(err, &syntax) {
		t.Fatalf("empty coordinate must fail the entry-point parse, got %v", err)
	}
}

func TestExecuteScriptMissingEntryType(t *testing.T) {
	path := writeScript(t, t.TempDir(), `package main

type Tool struct{}

func (Tool) Run(args []string) {}
`)
	var out bytes.Buffer
	// Warning level 0 keeps the unmatched-hint warning quiet; the dispatch
	// failure is the interesting part.
	err := executeScript(&out, &invocation{filename: path, warningLevel: 0, warningLevelSet: true}, testRunConfig())
	var missing *dispatch.MissingTypeError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTypeError, got %v", err)
	}
	if missing.Class != "Program" {
		t.Fatalf("MissingTypeError names %q, want Program", missing.Class)
	}
}

func TestExecuteScriptPartialMatchWarning(t *testing.T) {
	path := writeScript(t, t.TempDir(), `package main

import "encoding/json"

type Program struct{}

func (Program) Main(args []string) {
	_, _ = json.Marshal(args)
}
`)
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: path, refs: []string{"json"}}, testRunConfig())
	if err != nil {
		t.Fatalf("executeScript failed: %v\noutput:\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), `"json" resolved partially to "encoding/json"`) {
		t.Fatalf("partial-match warning missing:\n%s", out.String())
	}

	out.Reset()
	err = executeScript(&out, &invocation{filename: path, refs: []string{"json"}, noPartialWarn: true}, testRunConfig())
	if err != nil {
		t.Fatalf("executeScript failed: %v", err)
	}
	if strings.Contains(out.String(), "resolved partially") {
		t.Fatalf("partial-match warning not suppressed:\n%s", out.String())
	}
}

func TestRunScriptWithoutFilenameShowsUsage(t *testing.T) {
	cmd := &cobra.Command{Use: "goscript", RunE: runScript}
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := runScript(cmd, nil); err != nil {
		t.Fatalf("help path must not be an error, got %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("usage text not printed:\n%s", out.String())
	}
}

func TestRootCommandKeepsErrorsOffStderr(t *testing.T) {
	_, errOut, err := execRoot(t, filepath.Join(t.TempDir(), "missing.go"))
	if err == nil {
		t.Fatalf("missing script must fail")
	}
	if errOut != "" {
		t.Fatalf("failure output must stay off the error stream, got:\n%s", errOut)
	}
}

func TestExecuteScriptReadFailure(t *testing.T) {
	var out bytes.Buffer
	err := executeScript(&out, &invocation{filename: filepath.Join(t.TempDir(), "missing.go")}, testRunConfig())
	if err == nil {
		t.Fatalf("missing script file must fail")
	}
}
