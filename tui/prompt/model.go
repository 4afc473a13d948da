package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---

// DoneMsg is sent when the prompt is submitted or cancelled.
type DoneMsg struct {
	Value     string // Trimmed; empty means the front page
	Cancelled bool
}

// --- Model ---

// Model is the community-name entry prompt.
type Model struct {
	input textinput.Model
	width int
}

// New creates a focused prompt.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "community name"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	return Model{input: ti}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the current input.
func (m Model) Value() string {
	return m.input.Value()
}

// Update handles messages for the prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(min(msg.Width-8, 60), 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true})
		case "enter":
			return m, done(DoneMsg{Value: strings.TrimSpace(m.input.Value())})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
