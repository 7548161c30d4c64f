package termio

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether standard output is attached to a terminal,
// rather than (say) a file or a pipe.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the width of the terminal attached to standard output, or a
// conservative default when there is none.
func Width() uint {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	//
	if err != nil || w <= 0 {
		return 80
	}
	//
	return uint(w)
}
