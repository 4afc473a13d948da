package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHints {
		switch msg.String() {
		case "?", "esc", "q", "enter":
			m.showHints = false
		case "ctrl+c":
			return m.Dispatch(nav.Quit{})
		}
		return m, nil
	}

	state := m.nav.State()
	screen := state.Screen

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.Dispatch(nav.Quit{})

	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = true
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m.Dispatch(nav.GoBack{})

	case key.Matches(msg, m.keys.Home):
		return m.Dispatch(nav.GoHome{})

	case key.Matches(msg, m.keys.Communities):
		return m.Dispatch(nav.ShowCommunities{})

	case key.Matches(msg, m.keys.Refresh):
		return m.Dispatch(nav.Refresh{})

	case key.Matches(msg, m.keys.Search):
		if m.nav.Render().Prompt && !m.nav.Loading() {
			return m, func() tea.Msg { return OpenPromptMsg{} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if screen == nav.ScreenPostDetail {
			m.tree.moveUp()
			m.refreshDetail()
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureListVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if screen == nav.ScreenPostDetail {
			m.tree.moveDown()
			m.refreshDetail()
			return m, nil
		}
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		m.ensureListVisible()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		switch screen {
		case nav.ScreenPosts:
			if m.cursor < len(state.Posts) {
				return m.Dispatch(nav.SelectPost{ID: state.Posts[m.cursor].ID})
			}
		case nav.ScreenCommunities:
			if m.cursor < len(state.Communities) {
				c := state.Communities[m.cursor]
				return m.Dispatch(nav.SelectCommunity{ID: c.ID, Name: c.Name})
			}
		case nav.ScreenPostDetail:
			m.tree.toggle()
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if screen == nav.ScreenPostDetail {
			m.tree.toggle()
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		switch {
		case screen == nav.ScreenPostDetail && state.Post != nil:
			return m, openURL(state.Post.URL)
		case screen == nav.ScreenPosts && m.cursor < len(state.Posts):
			return m, openURL(state.Posts[m.cursor].URL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Pager):
		if c, ok := m.SelectedComment(); ok && m.pager != nil {
			return m, m.openPager(fmt.Sprintf("u/%s (%d pts)\n\n%s\n", c.Author, c.Score, strings.TrimSpace(c.Content)))
		}
		return m, nil
	}

	if screen == nav.ScreenPostDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) rowCount() int {
	s := m.nav.State()
	switch s.Screen {
	case nav.ScreenPosts:
		return len(s.Posts)
	case nav.ScreenCommunities:
		return len(s.Communities)
	}
	return 0
}

// ensureListVisible keeps the cursor inside the visible window of cards.
func (m *Model) ensureListVisible() {
	slots := m.listSlots()
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+slots {
		m.listOffset = m.cursor - slots + 1
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}
