package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Max truncates the printed list, not the Bag. 0 means no limit.
	Max int
	// Width caps the rendered message width, 0 means unlimited.
	Width int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	Max              int
}
