// Package dispatch locates the configured entry point inside a compiled
// artifact and invokes it, bridging the static and instance calling
// conventions. The callee's own failure never escapes with its original
// shape; it always comes back as a single *ScriptError.
package dispatch

import (
	"strings"

	"goscript/internal/compiler"
)

// ParseEntryPoint splits a "Class.Method" coordinate on its last dot.
// Both parts must be non-empty after trimming whitespace.
func ParseEntryPoint(coord string) (class, method string, err error) {
	idx := strings.LastIndex(coord, ".")
	if idx < 0 {
		return "", "", &EntryPointSyntaxError{Coord: coord}
	}
	class = strings.TrimSpace(coord[:idx])
	method = strings.TrimSpace(coord[idx+1:])
	if class == "" || method == "" {
		return "", "", &EntryPointSyntaxError{Coord: coord}
	}
	return class, method, nil
}

// LocateType scans the artifact's type table and returns the first class
// whose simple name equals class. With duplicate names the enumeration
// order of the artifact decides; callers must not depend on which one wins.
func LocateType(art compiler.Artifact, class string) (compiler.Type, error) {
	for _, t := range art.Types() {
		if t.Name() == class && t.Class() {
			return t, nil
		}
	}
	return nil, &MissingTypeError{Class: class}
}

// LocateMethod returns the method declared directly on t with the given
// name, visible regardless of exportedness. No overload resolution beyond
// the name: the first declared match wins.
func LocateMethod(t compiler.Type, name string) (compiler.Method, error) {
	m, ok := t.MethodByName(name)
	if !ok {
		return nil, &MissingMethodError{Class: t.Name(), Method: name}
	}
	return m, nil
}

// Invoke binds the method (constructing a fresh instance when it needs one)
// and calls it with the full argument sequence as its single parameter.
func Invoke(t compiler.Type, m compiler.Method, args []string) error {
	call, err := m.Bind()
	if err != nil {
		return &InstantiationError{Class: t.Name(), Err: err}
	}
	if err := call(args); err != nil {
		return &ScriptError{Err: err}
	}
	return nil
}

// Run is the locate+invoke pipeline used by the CLI.
func Run(art compiler.Artifact, class, method string, args []string) error {
	t, err := LocateType(art, class)
	if err != nil {
		return err
	}
	m, err := LocateMethod(t, method)
	if err != nil {
		return err
	}
	return Invoke(t, m, args)
}
