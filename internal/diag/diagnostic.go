package diag

// Diagnostic is one compiler-reported issue about the script.
// Line and Col address the in-memory script source; zero means the
// diagnostic carries no position (e.g. a missing reference).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Line     int
	Col      int
}

// Blocking reports whether this diagnostic alone makes the compile fail.
func (d Diagnostic) Blocking() bool {
	return d.Severity >= SevError
}
