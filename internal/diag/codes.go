package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Syntax errors reported by the parser pass.
	SynInfo  Code = 1000
	SynError Code = 1001

	// Reference handling inside the compiler.
	RefInfo    Code = 2000
	RefMissing Code = 2001

	// Evaluation of the compiled script declarations.
	EvalInfo  Code = 3000
	EvalError Code = 3001

	// Compile-time hints about the entry point and script shape.
	HintInfo           Code = 4000
	HintMainIgnored    Code = 4001
	HintEntryUnmatched Code = 4002
)

// String returns the stable textual form used in rendered diagnostics,
// e.g. "GS2001".
func (c Code) String() string {
	return fmt.Sprintf("GS%04d", uint16(c))
}
