package dispatch

import "fmt"

// EntryPointSyntaxError reports a coordinate that does not have the
// Class.Method shape.
type EntryPointSyntaxError struct {
	Coord string
}

func (e *EntryPointSyntaxError) Error() string {
	return fmt.Sprintf("invalid entry point %q: expected the Class.Method form", e.Coord)
}

// MissingTypeError reports that the artifact defines no class with the
// requested simple name.
type MissingTypeError struct {
	Class string
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("script defines no class named %q", e.Class)
}

// MissingMethodError reports that the entry class declares no method with
// the requested name.
type MissingMethodError struct {
	Class  string
	Method string
}

func (e *MissingMethodError) Error() string {
	return fmt.Sprintf("class %q declares no method named %q", e.Class, e.Method)
}

// InstantiationError reports a failed construction of the entry class.
type InstantiationError struct {
	Class string
	Err   error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %q: %v", e.Class, e.Err)
}

func (e *InstantiationError) Unwrap() error { return e.Err }

// ScriptError wraps any failure raised by the invoked script code. Callers
// see exactly one error kind for "the script itself failed", distinct from
// every host-side failure.
type ScriptError struct {
	Err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script execution failed: %v", e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }
