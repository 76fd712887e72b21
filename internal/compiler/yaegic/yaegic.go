// Package yaegic implements the compile boundary on top of the yaegi
// interpreter: the script is parsed for diagnostics and a type table, its
// imports are gated by the session's reference list, and its declarations
// are evaluated in memory so entry-point methods can be bound later.
package yaegic

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"goscript/internal/compiler"
	"goscript/internal/diag"
)

// scriptName labels diagnostics for the single in-memory source.
const scriptName = "script"

// DefaultMaxDiagnostics caps the bag when the caller does not.
const DefaultMaxDiagnostics = 100

type Compiler struct {
	// MaxDiagnostics bounds the diagnostics bag; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
}

func New() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(src string, opts compiler.Options) (compiler.Artifact, *diag.Bag, error) {
	maxDiags := c.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiags)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, scriptName, src, parser.AllErrors|parser.SkipObjectResolution)
	if err != nil {
		addParseErrors(bag, err)
		return nil, bag, nil
	}

	table := buildTypeTable(file)
	checkReferences(bag, fset, file, opts.References)
	emitHints(bag, fset, file, table, opts)
	if bag.HasErrors() {
		return nil, bag, nil
	}

	i := interp.New(interp.Options{})
	if err := i.Use(exportsFor(opts.References)); err != nil {
		return nil, bag, fmt.Errorf("prepare interpreter: %w", err)
	}
	prog, err := i.Compile(src)
	if err != nil {
		addEvalError(bag, err)
		return nil, bag, nil
	}
	if _, err := i.Execute(prog); err != nil {
		addEvalError(bag, err)
		return nil, bag, nil
	}

	art := &artifact{types: table}
	art.adopt(i)
	return art, bag, nil
}

func addParseErrors(bag *diag.Bag, err error) {
	var list scanner.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.SynError,
				Message:  e.Msg,
				Line:     e.Pos.Line,
				Col:      e.Pos.Column,
			})
		}
		return
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynError,
		Message:  err.Error(),
	})
}

// checkReferences rejects imports the reference list does not cover. This is
// where a missing reference becomes a compile error instead of a late
// interpreter failure.
func checkReferences(bag *diag.Bag, fset *token.FileSet, file *ast.File, references []string) {
	refSet := make(map[string]struct{}, len(references))
	for _, r := range references {
		refSet[r] = struct{}{}
	}
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue // the parser already reported the malformed literal
		}
		if _, ok := refSet[path]; ok {
			continue
		}
		pos := fset.Position(imp.Pos())
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.RefMissing,
			Message:  fmt.Sprintf("script imports %q but no such reference was added", path),
			Line:     pos.Line,
			Col:      pos.Column,
		})
	}
}

// emitHints produces the warning-class diagnostics, gated by WarningLevel.
// WarningsAsErrors reclassifies them here, upstream of the caller's verdict.
func emitHints(bag *diag.Bag, fset *token.FileSet, file *ast.File, table []*scriptType, opts compiler.Options) {
	sev := diag.SevWarning
	if opts.WarningsAsErrors {
		sev = diag.SevError
	}
	if opts.WarningLevel >= 1 {
		if fd := findFuncMain(file); fd != nil {
			pos := fset.Position(fd.Pos())
			bag.Add(diag.Diagnostic{
				Severity: sev,
				Code:     diag.HintMainIgnored,
				Message:  "script declares func main; the host invokes the configured entry point instead",
				Line:     pos.Line,
				Col:      pos.Column,
			})
		}
	}
	if opts.WarningLevel >= 2 && opts.EntryHint != "" && !hintResolves(table, opts.EntryHint) {
		bag.Add(diag.Diagnostic{
			Severity: sev,
			Code:     diag.HintEntryUnmatched,
			Message:  fmt.Sprintf("entry point %s is not declared by the script", opts.EntryHint),
		})
	}
}

func findFuncMain(file *ast.File) *ast.FuncDecl {
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Recv == nil && fd.Name.Name == "main" {
			return fd
		}
	}
	return nil
}

func hintResolves(table []*scriptType, hint string) bool {
	idx := strings.LastIndex(hint, ".")
	if idx <= 0 || idx == len(hint)-1 {
		return false
	}
	cls, mth := hint[:idx], hint[idx+1:]
	for _, t := range table {
		if t.name != cls || !t.class {
			continue
		}
		if _, ok := t.MethodByName(mth); ok {
			return true
		}
	}
	return false
}

func addEvalError(bag *diag.Bag, err error) {
	line, col, msg := splitPos(err.Error())
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.EvalError,
		Message:  msg,
		Line:     line,
		Col:      col,
	})
}

// splitPos strips a leading "line:col: " from interpreter error messages.
func splitPos(msg string) (line, col int, rest string) {
	parts := strings.SplitN(msg, ":", 3)
	if len(parts) != 3 {
		return 0, 0, msg
	}
	l, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	c, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, msg
	}
	return l, c, strings.TrimSpace(parts[2])
}

// exportsFor filters the interpreter's standard-library symbol table down to
// the referenced import paths. Duplicate references collapse naturally.
func exportsFor(references []string) interp.Exports {
	want := make(map[string]struct{}, len(references))
	for _, r := range references {
		want[r] = struct{}{}
	}
	out := make(interp.Exports, len(want))
	for key, symbols := range stdlib.Symbols {
		path := key
		if idx := strings.LastIndex(key, "/"); idx >= 0 {
			path = key[:idx]
		}
		if _, ok := want[path]; ok {
			out[key] = symbols
		}
	}
	return out
}
