package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"goscript/internal/compiler/yaegic"
	"goscript/internal/diagfmt"
	"goscript/internal/dispatch"
	"goscript/internal/observ"
	"goscript/internal/refs"
	"goscript/internal/session"
)

type runConfig struct {
	color    bool
	quiet    bool
	timings  bool
	maxDiags int
}

func runScript(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	inv, err := parseInvocation(args)
	if err != nil {
		return err
	}
	if inv.filename == "" {
		return cmd.Help()
	}
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	return executeScript(cmd.OutOrStdout(), inv, cfg)
}

func loadRunConfig(cmd *cobra.Command) (runConfig, error) {
	pf := cmd.Root().PersistentFlags()
	colorMode, err := pf.GetString("color")
	if err != nil {
		return runConfig{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return runConfig{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return runConfig{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiags, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return runConfig{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return runConfig{
		color:    colorEnabled(colorMode, os.Stdout),
		quiet:    quiet,
		timings:  timings,
		maxDiags: maxDiags,
	}, nil
}

// executeScript drives the whole pipeline: session configuration, script
// read, compile, diagnostics verdict, dispatch.
func executeScript(out io.Writer, inv *invocation, cfg runConfig) error {
	var timer *observ.Timer
	if cfg.timings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int) {
		if timer != nil {
			timer.End(idx)
		}
	}

	comp := yaegic.New()
	comp.MaxDiagnostics = cfg.maxDiags
	sess := session.New(comp, refs.NewStdlibRegistry())

	cfgIdx := begin("configure")
	if err := configureSession(sess, out, inv, cfg); err != nil {
		return err
	}
	end(cfgIdx)

	readIdx := begin("read")
	script, err := os.ReadFile(inv.filename)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	sess.Script = string(script)
	end(readIdx)

	compileIdx := begin("compile")
	art, bag, err := sess.Compile()
	if err != nil {
		return err
	}
	end(compileIdx)

	// Every diagnostic is printed; only error-class entries abort the run.
	scriptName := filepath.Base(inv.filename)
	if bag.Len() > 0 {
		diagfmt.Pretty(out, scriptName, bag, diagfmt.PrettyOpts{
			Color: cfg.color,
			Max:   cfg.maxDiags,
		})
		if !cfg.quiet {
			fmt.Fprintln(out, diagfmt.Summary(bag, cfg.color))
		}
	}
	if bag.HasErrors() {
		return fmt.Errorf("compilation of %s failed", scriptName)
	}
	if art == nil {
		return fmt.Errorf("compiler produced no output for %s", scriptName)
	}

	runIdx := begin("dispatch")
	if err := dispatch.Run(art, sess.EntryClass, sess.EntryMethod, inv.scriptArgs); err != nil {
		return err
	}
	end(runIdx)

	if timer != nil {
		fmt.Fprint(out, timer.Summary())
	}
	return nil
}

// configureSession layers configuration: manifest defaults first, then the
// command-line switches on top.
func configureSession(sess *session.Session, out io.Writer, inv *invocation, cfg runConfig) error {
	manifest, found, err := loadProjectManifest(filepath.Dir(inv.filename))
	if err != nil {
		return err
	}
	if found {
		if err := applyManifest(sess, manifest, out, cfg); err != nil {
			return err
		}
	} else {
		sess.AddLocalReferences()
	}

	if inv.noPartialWarn {
		sess.WarnOnPartialMatch = false
	}
	if inv.noWarnAsErrors {
		sess.WarningsAsErrors = false
	}
	if inv.warningLevelSet {
		sess.WarningLevel = inv.warningLevel
	}
	// An empty coordinate still goes through SetEntryPoint so the parse
	// rejects it instead of the run silently keeping the default.
	if inv.entryPointSet {
		if err := sess.SetEntryPoint(inv.entryPoint); err != nil {
			return err
		}
	}
	for _, name := range inv.refs {
		if err := addReference(sess, out, cfg, name); err != nil {
			return err
		}
	}
	return nil
}

func addReference(sess *session.Session, out io.Writer, cfg runConfig, name string) error {
	res, err := sess.AddReference(name, false)
	if err != nil {
		return err
	}
	if res.Partial && sess.WarnOnPartialMatch && !cfg.quiet {
		fmt.Fprintf(out, "warning: reference %q resolved partially to %q\n",
			res.Requested, res.ResolvedTo)
	}
	return nil
}
