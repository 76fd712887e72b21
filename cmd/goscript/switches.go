package main

import (
	"fmt"
	"strconv"
	"strings"

	"goscript/internal/session"
)

// invocation is the decoded script command line: leading //-prefixed
// switches, then the script filename, then the entry-point arguments.
type invocation struct {
	refs            []string
	entryPoint      string
	entryPointSet   bool
	noPartialWarn   bool
	noWarnAsErrors  bool
	warningLevel    int
	warningLevelSet bool

	filename   string
	scriptArgs []string
}

const (
	refSwitch          = "//ref:"
	entryPointSwitch   = "//entrypoint:"
	noPartialSwitch    = "//nopartialmatchwarning"
	noWarnAsErrsSwitch = "//nowarningsaserrors"
	warningLevelSwitch = "//warninglevel:"
)

// parseInvocation consumes recognized switches from the front of args.
// The first token that is not a recognized switch — prefixed or not — is the
// script filename, and everything after it stays positional.
func parseInvocation(args []string) (*invocation, error) {
	inv := &invocation{}
	i := 0
loop:
	for ; i < len(args); i++ {
		tok := args[i]
		switch {
		case strings.HasPrefix(tok, refSwitch):
			inv.refs = append(inv.refs, tok[len(refSwitch):])
		case strings.HasPrefix(tok, entryPointSwitch):
			inv.entryPoint = tok[len(entryPointSwitch):]
			inv.entryPointSet = true
		case tok == noPartialSwitch:
			inv.noPartialWarn = true
		case tok == noWarnAsErrsSwitch:
			inv.noWarnAsErrors = true
		case strings.HasPrefix(tok, warningLevelSwitch):
			raw := tok[len(warningLevelSwitch):]
			lvl, err := strconv.Atoi(raw)
			if err != nil {
				return nil, &session.ConfigError{
					Reason: fmt.Sprintf("warning level %q is not an integer", raw),
				}
			}
			inv.warningLevel = lvl
			inv.warningLevelSet = true
		default:
			break loop
		}
	}
	if i < len(args) {
		inv.filename = args[i]
		inv.scriptArgs = args[i+1:]
	}
	return inv, nil
}
