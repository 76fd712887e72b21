package refs

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolution is the outcome of a successful lookup.
// Partial marks a fuzzy match; Requested and ResolvedTo then carry the name
// the user supplied and the identity it widened to, so the caller can warn
// or escalate.
type Resolution struct {
	Location   string
	Requested  string
	ResolvedTo string
	Partial    bool
}

// NotFoundError reports a name no registry entry matched.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reference %q not found", e.Name)
}

// Resolver turns reference names into concrete library locations using an
// injected Registry snapshot.
type Resolver struct {
	reg Registry
}

func NewResolver(reg Registry) *Resolver {
	return &Resolver{reg: reg}
}

// ResolveExact resolves name by full import-path equality only.
// It never widens the match.
func (r *Resolver) ResolveExact(name string) (Resolution, error) {
	for _, lib := range r.reg.Libraries() {
		if lib.Path == name {
			return Resolution{Location: lib.Path, Requested: name, ResolvedTo: lib.Path}, nil
		}
	}
	return Resolution{}, &NotFoundError{Name: name}
}

// ResolveFuzzy resolves name best-effort: case-insensitive match on the
// package name or on a trailing path segment run, first candidate in sorted
// registry order wins. Names are NFC-normalized before comparison so the
// same reference spelled with different code points still resolves.
func (r *Resolver) ResolveFuzzy(name string) (Resolution, error) {
	want := norm.NFC.String(name)
	for _, lib := range r.reg.Libraries() {
		if fuzzyMatch(lib, want) {
			return Resolution{
				Location:   lib.Path,
				Requested:  name,
				ResolvedTo: lib.Path,
				Partial:    true,
			}, nil
		}
	}
	return Resolution{}, &NotFoundError{Name: name}
}

func fuzzyMatch(lib Library, want string) bool {
	if strings.EqualFold(lib.Name, want) {
		return true
	}
	path := norm.NFC.String(lib.Path)
	if strings.EqualFold(path, want) {
		return true
	}
	// Trailing segment match: "encoding/json" for want "json" is handled by
	// the name rule above; this covers spellings like "text/template".
	return len(path) > len(want) &&
		strings.EqualFold(path[len(path)-len(want):], want) &&
		path[len(path)-len(want)-1] == '/'
}

// Resolve applies the escalation policy from the session's point of view:
// exact first, then, unless mustFullyMatch, fuzzy. A fuzzy hit comes back
// with Partial set rather than as a failure.
func (r *Resolver) Resolve(name string, mustFullyMatch bool) (Resolution, error) {
	res, err := r.ResolveExact(name)
	if err == nil {
		return res, nil
	}
	if mustFullyMatch {
		return Resolution{}, err
	}
	return r.ResolveFuzzy(name)
}
