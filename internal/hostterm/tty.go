// Package hostterm is a host frontend: a tcell-based terminal renderer for
// systems with no graphical display, plus TTY detection used to decide
// whether that renderer can run at all.
package hostterm

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdout is attached to a terminal capable of
// the renderer's cursor-addressed drawing, as opposed to a pipe or redirect.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
