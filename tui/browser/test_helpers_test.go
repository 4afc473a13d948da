package browser

import (
	"context"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

type fakeForum struct {
	posts       []domain.Post
	comments    map[int64][]domain.Comment
	communities []domain.Community
	known       map[string]domain.Community
	err         error

	postQueries []app.PostQuery
}

func (f *fakeForum) ListPosts(_ context.Context, q app.PostQuery) ([]domain.Post, error) {
	f.postQueries = append(f.postQueries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeForum) ListComments(_ context.Context, postID int64, _ app.CommentQuery) ([]domain.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.comments[postID], nil
}

func (f *fakeForum) ListCommunities(context.Context, app.CommunityQuery) ([]domain.Community, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.communities, nil
}

func (f *fakeForum) FindCommunity(_ context.Context, name string) (domain.Community, bool, error) {
	if f.err != nil {
		return domain.Community{}, false, f.err
	}
	c, ok := f.known[name]
	return c, ok, nil
}

type fakePager struct {
	content string
	cleaned []string
}

func (p *fakePager) Cmd(content string) (*exec.Cmd, string, error) {
	p.content = content
	return exec.Command("true"), "/tmp/lemmyterm-test.md", nil
}

func (p *fakePager) Cleanup(path string) error {
	p.cleaned = append(p.cleaned, path)
	return nil
}

func newFakeForum() *fakeForum {
	return &fakeForum{
		posts: []domain.Post{
			{ID: 1, Title: "Kernel 7.0 released", Author: "linus", Community: "linux", Score: 120, CommentCount: 4, URL: "https://kernel.org"},
			{ID: 2, Title: "Go 1.26 is out", Author: "gopher", Community: "golang", Score: 80},
		},
		comments: map[int64][]domain.Comment{
			1: {
				{ID: 10, Path: "0.10", Author: "a", Content: "first"},
				{ID: 11, Path: "0.10.11", Author: "b", Content: "reply to first"},
				{ID: 12, Path: "0.10.11.12", Author: "c", Content: "deep reply"},
				{ID: 13, Path: "0.13", Author: "d", Content: "second root"},
			},
		},
		communities: []domain.Community{
			{ID: 3, Name: "linux", Title: "Linux", Subscribers: 1000},
			{ID: 4, Name: "golang", Title: "Go", Subscribers: 500},
		},
		known: map[string]domain.Community{"linux": {ID: 3, Name: "linux"}},
	}
}

// settle runs cmd and every command it produces through m.Update.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatalf("command chain did not settle")
		}
		m, cmd = m.Update(cmd())
	}
	return m
}

func newLoaded(t *testing.T, f *fakeForum) Model {
	t.Helper()
	m := New(nav.New(f, nav.DefaultOptions(), nil), nil, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return settle(t, m, m.initCmd)
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return m.Update(msg)
}

// pressAndSettle presses k and runs any resulting fetch to completion.
func pressAndSettle(t *testing.T, m Model, k string) Model {
	t.Helper()
	m, cmd := press(t, m, k)
	return settle(t, m, cmd)
}
