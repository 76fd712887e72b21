// Package diagfmt renders diagnostic bags for the console and for machine
// consumers. Layout:
//
//	<script>:<line>:<col>: <SEV> <CODE>: <message>
//
// Diagnostics without a position drop the line:col part.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"goscript/internal/diag"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)

	summaryFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	summaryWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	summaryOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Pretty formats the bag line by line for human consumption.
func Pretty(w io.Writer, name string, bag *diag.Bag, opts PrettyOpts) {
	max := opts.Max
	if max <= 0 || max > bag.Len() {
		max = bag.Len()
	}
	items := bag.Items()
	for i := 0; i < max; i++ {
		fmt.Fprintln(w, renderLine(name, items[i], opts))
	}
	// The trailer covers kept-but-unrendered items and everything the
	// Bag rejected at its cap.
	if rest := bag.Len() - max + bag.Dropped(); rest > 0 {
		fmt.Fprintf(w, "... and %d more\n", rest)
	}
}

func renderLine(name string, d diag.Diagnostic, opts PrettyOpts) string {
	pos := name
	if d.Line > 0 {
		pos = fmt.Sprintf("%s:%d:%d", name, d.Line, d.Col)
	}
	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	msg := d.Message
	if opts.Width > 0 && runewidth.StringWidth(msg) > opts.Width {
		msg = runewidth.Truncate(msg, opts.Width, "...")
	}
	return fmt.Sprintf("%s: %s %s: %s", pos, sev, d.Code, msg)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// Summary renders the one-line verdict printed after the diagnostics.
func Summary(bag *diag.Bag, colorize bool) string {
	errs, warns := bag.ErrorCount(), bag.WarningCount()
	text := fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	if !colorize {
		return text
	}
	switch {
	case errs > 0:
		return summaryFailStyle.Render(text)
	case warns > 0:
		return summaryWarnStyle.Render(text)
	default:
		return summaryOKStyle.Render(text)
	}
}
