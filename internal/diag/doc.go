// Package diag defines the diagnostic model shared by the compile boundary
// and the CLI: a severity scale, stable diagnostic codes and a capped Bag
// that aggregates everything the compiler reported for one script.
//
// The Bag never decides fatality. It only answers HasErrors/HasWarnings;
// the caller chooses whether to abort.
package diag
