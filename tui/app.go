package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/tui/browser"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
	"github.com/CrestNiraj12/lemmyterm/tui/prompt"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Forum     app.ForumService
	Pager     browser.Pager
	Options   nav.Options
	Logger    *zap.Logger
	Community string // optional community to open on startup
}

type activeView int

const (
	browserView activeView = iota
	promptView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	active  activeView
	browser browser.Model
	prompt  prompt.Model
	width   int
	height  int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	ctrl := nav.New(deps.Forum, deps.Options, deps.Logger)
	return App{
		active:  browserView,
		browser: browser.New(ctrl, deps.Pager, deps.Community),
	}
}

// Init delegates to the browser.
func (a App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The prompt takes q as text, so only ctrl+c quits from there.
		if a.active == promptView && msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		var cmd tea.Cmd
		a.browser, cmd = a.browser.Update(msg)
		a.prompt, _ = a.prompt.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.browser, cmd = a.browser.Update(msg)
		return a, cmd

	case nav.PostsLoadedMsg, nav.CommentsLoadedMsg, nav.CommunitiesLoadedMsg, nav.CommunityResolvedMsg, nav.FetchErrorMsg:
		// Fetch results always belong to the browser, even while the prompt is up.
		var cmd tea.Cmd
		a.browser, cmd = a.browser.Update(msg)
		return a, cmd

	case browser.OpenPromptMsg:
		a.active = promptView
		a.prompt = prompt.New()
		a.prompt, _ = a.prompt.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, a.prompt.Init()

	case prompt.DoneMsg:
		a.active = browserView
		if msg.Cancelled {
			return a, nil
		}
		var cmd tea.Cmd
		a.browser, cmd = a.browser.Dispatch(nav.SubmitCommunityName{Name: msg.Value})
		return a, cmd
	}

	// Delegate to the active sub-model.
	switch a.active {
	case browserView:
		updated, cmd := a.browser.Update(msg)
		a.browser = updated
		return a, cmd
	case promptView:
		updated, cmd := a.prompt.Update(msg)
		a.prompt = updated
		return a, cmd
	}

	return a, nil
}

// View renders the active sub-model.
func (a App) View() string {
	switch a.active {
	case promptView:
		return a.prompt.View()
	default:
		return a.browser.View()
	}
}
