package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"goscript/internal/compiler"
	"goscript/internal/compiler/yaegic"
	"goscript/internal/diagfmt"
	"goscript/internal/refs"
	"goscript/internal/session"
)

// Schema version of the inspect payload - increment on format changes.
const inspectSchemaVersion uint16 = 1

var inspectCmd = &cobra.Command{
	Use:   "inspect [//switch ...] <file.go>",
	Short: "Compile a script and dump its type table",
	Long:  `Compile a Go script in memory and list every type it defines together with the methods an entry point could bind to`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	inspectCmd.Flags().SetInterspersed(false)
}

type inspectPayload struct {
	Schema uint16      `json:"schema" msgpack:"schema"`
	Script string      `json:"script" msgpack:"script"`
	Types  []typeEntry `json:"types" msgpack:"types"`
}

type typeEntry struct {
	Name    string        `json:"name" msgpack:"name"`
	Class   bool          `json:"class" msgpack:"class"`
	Methods []methodEntry `json:"methods" msgpack:"methods"`
}

type methodEntry struct {
	Name   string `json:"name" msgpack:"name"`
	Static bool   `json:"static" msgpack:"static"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", format)
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

	out := cmd.OutOrStdout()
	comp := yaegic.New()
	comp.MaxDiagnostics = cfg.maxDiags
	sess := session.New(comp, refs.NewStdlibRegistry())
	if err := configureSession(sess, out, inv, cfg); err != nil {
		return err
	}

	script, err := os.ReadFile(inv.filename)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	sess.Script = string(script)

	art, bag, err := sess.Compile()
	if err != nil {
		return err
	}
	scriptName := filepath.Base(inv.filename)
	if bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), scriptName, bag, diagfmt.PrettyOpts{Color: cfg.color, Max: cfg.maxDiags})
	}
	if bag.HasErrors() {
		return fmt.Errorf("compilation of %s failed", scriptName)
	}
	if art == nil {
		return fmt.Errorf("compiler produced no output for %s", scriptName)
	}

	payload := buildInspectPayload(scriptName, art)
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(payload)
	default:
		renderInspectPretty(out, payload)
		return nil
	}
}

func buildInspectPayload(scriptName string, art compiler.Artifact) inspectPayload {
	payload := inspectPayload{
		Schema: inspectSchemaVersion,
		Script: scriptName,
	}
	for _, t := range art.Types() {
		entry := typeEntry{Name: t.Name(), Class: t.Class()}
		for _, m := range t.Methods() {
			entry.Methods = append(entry.Methods, methodEntry{Name: m.Name(), Static: m.Static()})
		}
		payload.Types = append(payload.Types, entry)
	}
	return payload
}

func renderInspectPretty(out io.Writer, payload inspectPayload) {
	fmt.Fprintf(out, "%s:\n", payload.Script)
	if len(payload.Types) == 0 {
		fmt.Fprintln(out, "  (no types defined)")
		return
	}
	for _, t := range payload.Types {
		kind := "class"
		if !t.Class {
			kind = "type"
		}
		fmt.Fprintf(out, "  %s (%s)\n", t.Name, kind)
		for _, m := range t.Methods {
			conv := "instance"
			if m.Static {
				conv = "static"
			}
			fmt.Fprintf(out, "    %s (%s)\n", m.Name, conv)
		}
	}
}
