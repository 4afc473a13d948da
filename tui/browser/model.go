package browser

import (
	"os/exec"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/common"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

// --- Messages ---

// OpenPromptMsg asks the root model to show the community-name prompt.
type OpenPromptMsg struct{}

// pagerFinishedMsg is sent after the external pager exits.
type pagerFinishedMsg struct {
	tmpPath string
	err     error
}

// Pager prepares an external viewer for a block of text.
type Pager interface {
	Cmd(content string) (*exec.Cmd, string, error)
	Cleanup(path string) error
}

// --- Model ---

// Model renders the navigation state and turns key presses into intents.
// Cursor and tree state are local; they reset whenever the controller
// replaces the screen.
type Model struct {
	nav     nav.Controller
	initCmd tea.Cmd
	pager   Pager
	keys    common.KeyMap
	spinner spinner.Model
	detail  viewport.Model
	tree    threadTree

	cursor     int // posts or communities row
	listOffset int // first visible row
	seen       int // controller version the local state belongs to
	showHints  bool
	notice     string
	width      int
	height     int
}

// New creates the browser and schedules the first load. A non-empty
// startupName is resolved as a community before posts are shown.
func New(ctrl nav.Controller, pager Pager, startupName string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BC8C"))

	ctrl, cmd := ctrl.Init(startupName)
	m := Model{
		nav:     ctrl,
		initCmd: cmd,
		pager:   pager,
		keys:    common.DefaultKeyMap(),
		spinner: s,
		detail:  viewport.New(40, 10),
		seen:    ctrl.Version(),
	}
	return m
}

// Init starts the first fetch and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

// Dispatch forwards an intent to the controller.
func (m Model) Dispatch(in nav.Intent) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.nav, cmd = m.nav.Handle(in)
	m.sync()
	return m, cmd
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ensureListVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case nav.PostsLoadedMsg, nav.CommentsLoadedMsg, nav.CommunitiesLoadedMsg, nav.CommunityResolvedMsg, nav.FetchErrorMsg:
		m.nav, cmd = m.nav.Update(msg)
		m.sync()
		return m, cmd

	case pagerFinishedMsg:
		if m.pager != nil {
			_ = m.pager.Cleanup(msg.tmpPath)
		}
		if msg.err != nil {
			m.notice = "Pager: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// sync resets local view state when the controller has replaced the screen.
func (m *Model) sync() {
	if m.nav.Version() == m.seen {
		return
	}
	m.seen = m.nav.Version()
	m.cursor = 0
	m.listOffset = 0
	m.notice = ""
	m.tree = newThreadTree(m.nav.State().Forest)
	m.layout()
	m.refreshDetail()
}

// layout sizes the tree and the detail pane for the post-detail screen.
func (m *Model) layout() {
	_, paneW, paneH := m.detailSize()
	m.tree.setHeight(paneH)
	m.detail.Width = paneW
	m.detail.Height = paneH
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	_, paneW, _ := m.detailSize()
	m.detail.SetContent(renderCommentDetail(m.tree.selected(), paneW))
	m.detail.GotoTop()
}

// Nav returns the navigation controller.
func (m Model) Nav() nav.Controller {
	return m.nav
}

// Cursor returns the highlighted row on listing screens.
func (m Model) Cursor() int {
	return m.cursor
}

// SelectedComment returns the highlighted comment on the detail screen.
func (m Model) SelectedComment() (domain.Comment, bool) {
	n := m.tree.selected()
	if n == nil || m.nav.State().Screen != nav.ScreenPostDetail {
		return domain.Comment{}, false
	}
	return n.Comment, true
}
