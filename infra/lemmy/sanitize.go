package lemmy

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitizeForTerminal drops escape sequences and control characters from
// user-supplied text so it cannot restyle or move the terminal cursor.
// Newlines and tabs survive.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return -1
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}
