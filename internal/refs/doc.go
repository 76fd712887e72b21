// Package refs resolves human-supplied reference names against the set of
// packages the host process can offer to a compiled script.
//
// Resolution outcomes are a tagged result, not an error code: an exact match
// yields a plain Resolution, a fuzzy match yields a Resolution with Partial
// set (carrying both the requested name and what it resolved to), and a miss
// is a *NotFoundError. Whether a partial match is fatal or merely warned is
// the caller's policy, never decided here.
package refs
