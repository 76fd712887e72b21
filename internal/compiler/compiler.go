// Package compiler defines the boundary to the in-memory compiler: a session
// hands it source text plus options and gets back diagnostics and, when the
// compile produced output, an artifact queryable for its defined types.
package compiler

import (
	"goscript/internal/diag"
)

// Options carries the full compiler configuration for one compile.
// Executable, InMemory and Debug are fixed by the session (no standalone
// binary, output stays in memory, no debug info); they are part of the
// contract so alternative backends see the same shape.
type Options struct {
	// Executable is always false: the artifact is a library-style unit.
	Executable bool
	// InMemory is always true: nothing is written to disk.
	InMemory bool
	// Debug is always false.
	Debug bool

	// EntryHint is the "Class.Method" coordinate the host intends to invoke.
	// Informational: dispatch resolves the entry point independently.
	EntryHint string

	WarningLevel     int
	WarningsAsErrors bool

	// References is the ordered list of resolved library locations.
	// Duplicates are permitted and preserved.
	References []string
}

// Compiler compiles one script. A failed compile is expressed through the
// returned Bag (error-class diagnostics) with a nil Artifact; the error
// return is reserved for the backend itself breaking, not for bad input.
type Compiler interface {
	Compile(src string, opts Options) (Artifact, *diag.Bag, error)
}

// Artifact is the in-memory output of a successful compile, opaque except
// for its type table.
type Artifact interface {
	Types() []Type
}

// Type describes one type defined by the script.
type Type interface {
	Name() string
	// Class reports whether the type can host an entry point (struct-backed,
	// not an interface or alias).
	Class() bool
	// Methods lists methods declared directly on the type, exported or not.
	// Promoted methods from embedded fields are not included.
	Methods() []Method
	MethodByName(name string) (Method, bool)
}

// Method is one callable declared on a Type.
type Method interface {
	Name() string
	// Static reports a value-receiver method, invocable on a throwaway
	// receiver. Non-static methods need a freshly constructed instance.
	Static() bool
	// Bind constructs the receiver (instance methods only) and returns the
	// callable. A Bind error means instantiation failed; errors returned by
	// the callable itself are the script's own failures, unwrapped.
	Bind() (func(args []string) error, error)
}
