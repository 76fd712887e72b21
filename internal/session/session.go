// Package session owns the per-run compiler configuration: the script text,
// the entry-point coordinate, warning policy and the ordered reference list.
// A session is consumed exactly once by Compile; the pass/fail verdict over
// the returned diagnostics belongs to the caller.
package session

import (
	"strings"

	"goscript/internal/compiler"
	"goscript/internal/diag"
	"goscript/internal/dispatch"
	"goscript/internal/refs"
)

// ConfigError marks bad or missing configuration. It always aborts the run
// before the compiler is reached.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

const (
	DefaultEntryClass   = "Program"
	DefaultEntryMethod  = "Main"
	DefaultWarningLevel = 4
)

type Session struct {
	comp     compiler.Compiler
	reg      refs.Registry
	resolver *refs.Resolver

	Script           string
	EntryClass       string
	EntryMethod      string
	WarningLevel     int
	WarningsAsErrors bool
	// WarnOnPartialMatch controls whether the CLI surfaces partial-match
	// signals; resolution itself always records them.
	WarnOnPartialMatch bool

	references []string
	partials   []refs.Resolution
	compiled   bool
}

func New(comp compiler.Compiler, reg refs.Registry) *Session {
	return &Session{
		comp:               comp,
		reg:                reg,
		resolver:           refs.NewResolver(reg),
		EntryClass:         DefaultEntryClass,
		EntryMethod:        DefaultEntryMethod,
		WarningLevel:       DefaultWarningLevel,
		WarningsAsErrors:   true,
		WarnOnPartialMatch: true,
	}
}

// SetEntryPoint replaces the entry coordinate from a "Class.Method" string.
func (s *Session) SetEntryPoint(coord string) error {
	class, method, err := dispatch.ParseEntryPoint(coord)
	if err != nil {
		return err
	}
	s.EntryClass = class
	s.EntryMethod = method
	return nil
}

// AddReference resolves name and appends its location to the reference list.
// Nothing is deduplicated: resolving the same name twice appends it twice.
// A fuzzy hit still appends, and the returned Resolution carries the
// partial-match signal for the caller's policy.
func (s *Session) AddReference(name string, mustFullyMatch bool) (refs.Resolution, error) {
	if strings.TrimSpace(name) == "" {
		return refs.Resolution{}, &ConfigError{Reason: "reference name is empty"}
	}
	res, err := s.resolver.Resolve(name, mustFullyMatch)
	if err != nil {
		return refs.Resolution{}, err
	}
	s.references = append(s.references, res.Location)
	if res.Partial {
		s.partials = append(s.partials, res)
	}
	return res, nil
}

// AddLocalReferences appends every library the host registry offers,
// unconditionally. The registry entries are already concrete, so no
// exact/fuzzy distinction applies.
func (s *Session) AddLocalReferences() {
	for _, lib := range s.reg.Libraries() {
		s.references = append(s.references, lib.Path)
	}
}

// References returns a copy of the ordered reference list.
func (s *Session) References() []string {
	out := make([]string, len(s.references))
	copy(out, s.references)
	return out
}

// PartialMatches returns every partial-match signal recorded so far.
func (s *Session) PartialMatches() []refs.Resolution {
	return s.partials
}

// Compile hands the script to the compiler with the accumulated
// configuration. It fails with a ConfigError, never reaching the compiler,
// when the script is empty; and a session compiles at most once.
func (s *Session) Compile() (compiler.Artifact, *diag.Bag, error) {
	if s.compiled {
		return nil, nil, &ConfigError{Reason: "session already compiled"}
	}
	if strings.TrimSpace(s.Script) == "" {
		return nil, nil, &ConfigError{Reason: "script is empty"}
	}
	s.compiled = true
	opts := compiler.Options{
		Executable:       false,
		InMemory:         true,
		Debug:            false,
		EntryHint:        s.EntryClass + "." + s.EntryMethod,
		WarningLevel:     s.WarningLevel,
		WarningsAsErrors: s.WarningsAsErrors,
		References:       s.references,
	}
	return s.comp.Compile(s.Script, opts)
}
