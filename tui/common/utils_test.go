package common

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncateLines(t *testing.T) {
	got := TruncateLines("a b c d e f g h i j k l m n o p q r s t u v w x y z", 12, 2)
	if strings.Count(got, "\n") != 1 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected two lines with ellipsis: %q", got)
	}
	if got := TruncateLines("short", 20, 2); strings.HasSuffix(got, "...") {
		t.Fatalf("short text must not be truncated: %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("\n  \n  hello there \nsecond"); got != "hello there" {
		t.Fatalf("unexpected first line: %q", got)
	}
	if got := FirstLine(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestClampLinesToWidth(t *testing.T) {
	got := ClampLinesToWidth("abcdefgh\nxy", 4)
	for _, ln := range strings.Split(got, "\n") {
		if ansi.StringWidth(ln) > 4 {
			t.Fatalf("line too wide: %q", ln)
		}
	}
	if !strings.HasSuffix(got, "\nxy") {
		t.Fatalf("short lines must be kept: %q", got)
	}
}

func TestAuthorStyleFor_Stable(t *testing.T) {
	a := AuthorStyleFor("Alice").GetForeground()
	b := AuthorStyleFor(" alice ").GetForeground()
	if a != b {
		t.Fatalf("expected case/space-insensitive color, got %v and %v", a, b)
	}
}
