package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BC8C")).
			Padding(1, 2, 0, 1)

	// CommunityStyle styles the active community next to the title.
	CommunityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// AuthorStyle styles usernames.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps and other secondary metadata.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// ContentStyle styles post and comment bodies.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// SelectedStyle highlights the row under the cursor.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00BC8C")).
			Padding(0, 1)

	// UnselectedStyle gives other rows a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// TreeCursorStyle marks the highlighted comment in the thread tree.
	TreeCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E2030")).
			Background(lipgloss.Color("#00BC8C")).
			Bold(true)

	// TreeGuideStyle styles the ├── / └── connectors.
	TreeGuideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45475A"))

	// PaneStyle frames the comment detail pane.
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#45475A")).
			PaddingLeft(1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// MutedStyle styles deleted or removed comments.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5B6078")).
			Italic(true)
)
