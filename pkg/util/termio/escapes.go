package termio

import (
	"fmt"
	"strings"
)

// Standard ANSI colour indices.
const (
	// TERM_BLACK represents black
	TERM_BLACK = uint(iota)
	// TERM_RED represents red
	TERM_RED
	// TERM_GREEN represents green
	TERM_GREEN
	// TERM_YELLOW represents yellow
	TERM_YELLOW
	// TERM_BLUE represents blue
	TERM_BLUE
	// TERM_MAGENTA represents magenta
	TERM_MAGENTA
	// TERM_CYAN represents cyan
	TERM_CYAN
	// TERM_WHITE represents white
	TERM_WHITE
)

// AnsiEscape is a builder for ANSI escape sequences, as used for formatting
// text in a terminal.
type AnsiEscape struct {
	codes []uint
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// ResetAnsiEscape constructs an escape which clears all formatting.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// BoldAnsiEscape constructs an escape for bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// FaintAnsiEscape constructs an escape for faint text.
func FaintAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{2}}
}

// UnderlineAnsiEscape constructs an escape for underlined text.
func UnderlineAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{4}}
}

// FgColour sets the foreground colour.
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return p.extend(30 + col)
}

// BgColour sets the background colour.
func (p AnsiEscape) BgColour(col uint) AnsiEscape {
	return p.extend(40 + col)
}

// Build constructs the final escape sequence.
func (p AnsiEscape) Build() string {
	var builder strings.Builder
	//
	builder.WriteString("\033[")
	//
	for i, code := range p.codes {
		if i != 0 {
			builder.WriteByte(';')
		}
		//
		fmt.Fprintf(&builder, "%d", code)
	}
	//
	builder.WriteByte('m')
	//
	return builder.String()
}

func (p AnsiEscape) extend(code uint) AnsiEscape {
	codes := make([]uint, len(p.codes)+1)
	copy(codes, p.codes)
	codes[len(p.codes)] = code
	//
	return AnsiEscape{codes}
}
