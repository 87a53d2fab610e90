// Package debug provides a cheap, env-gated trace print used while
// developing the lexer/parser/executor pipeline. It never runs unless
// RBQL_DEBUG is set, so it carries no cost on the hot streaming path.
package debug

import (
	"fmt"
	"os"
)

var _, enableDebug = os.LookupEnv("RBQL_DEBUG")

func Printf(format string, a ...any) {
	if !enableDebug {
		return
	}
	fmt.Fprintf(os.Stderr, "\033[0;36mRBQL_DEBUG:\033[0m "+format, a...)
}
