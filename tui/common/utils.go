package common

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateLines wraps text to width and keeps at most maxLines lines,
// appending "..." when something was cut.
func TruncateLines(text string, width, maxLines int) string {
	if width < 12 {
		width = 12
	}
	if maxLines < 1 {
		maxLines = 1
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(text))
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= maxLines {
		return wrapped
	}
	return strings.Join(lines[:maxLines], "\n") + "..."
}

// FirstLine returns the first non-blank line of text.
func FirstLine(text string) string {
	for ln := range strings.SplitSeq(text, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			return s
		}
	}
	return ""
}

// ClampLinesToWidth cuts every line of text to at most width cells.
func ClampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}

var authorPalette = []string{
	"#7DC4E4", "#8BD5CA", "#F5A97F", "#C6A0F6", "#EBA0AC",
	"#A6DA95", "#F9E2AF", "#89B4FA", "#F38BA8", "#94E2D5",
}

// AuthorStyleFor picks a stable color for a username.
func AuthorStyleFor(username string) lipgloss.Style {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(username))))
	idx := int(h.Sum32() % uint32(len(authorPalette)))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(authorPalette[idx]))
}
