package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"goscript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "goscript [//switch ...] <file.go> [script args ...]",
	Short: "In-memory Go script host",
	Long: `goscript compiles a Go source file in memory against a set of referenced
packages, locates a Class.Method entry point in the result and invokes it
with the remaining arguments.

Switches use the // prefix and must come before the script filename:

  //ref:<name>              add a reference (exact, then fuzzy with a warning)
  //entrypoint:<Class.Method>  override the Program.Main default
  //nopartialmatchwarning   do not print partial-match warnings
  //nowarningsaserrors      do not escalate warnings to errors
  //warninglevel:<int>      set the compiler warning level

The first token that is not a recognized switch is the script filename;
everything after it is handed to the entry point verbatim.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runScript,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	// Flags stop at the first positional so script args pass through untouched.
	rootCmd.Flags().SetInterspersed(false)
}

func main() {
	rootCmd.Version = version.Version

	// Failure messages belong on standard output alongside the diagnostics.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stdout, "error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal checks whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
