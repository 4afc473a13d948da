package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/lemmyterm/tui/common"
)

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E738D")).Faint(true)

// View renders the prompt.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("lemmyterm"))
	b.WriteString("  Communities\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render("Enter community name"))
	b.WriteString("\n")
	b.WriteString(hintStyle.PaddingLeft(1).Render("Examples: linux, python, technology (or leave empty for Front Page)"))
	b.WriteString("\n\n ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(common.StatusBarStyle.Render("  enter: go • esc: back"))
	return b.String()
}
