package nav

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
)

type stubForum struct {
	posts       map[int64][]domain.Post // keyed by community id, 0 = front page
	postBatches [][]domain.Post         // consumed first, one per ListPosts call
	comments    map[int64][]domain.Comment
	communities []domain.Community
	known       map[string]domain.Community
	err         error

	postQueries    []app.PostQuery
	commentCalls   []int64
	communityCalls int
	lookups        []string
}

func (s *stubForum) ListPosts(_ context.Context, q app.PostQuery) ([]domain.Post, error) {
	s.postQueries = append(s.postQueries, q)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.postBatches) > 0 {
		batch := s.postBatches[0]
		s.postBatches = s.postBatches[1:]
		return batch, nil
	}
	return s.posts[q.CommunityID], nil
}

func (s *stubForum) ListComments(_ context.Context, postID int64, _ app.CommentQuery) ([]domain.Comment, error) {
	s.commentCalls = append(s.commentCalls, postID)
	if s.err != nil {
		return nil, s.err
	}
	return s.comments[postID], nil
}

func (s *stubForum) ListCommunities(context.Context, app.CommunityQuery) ([]domain.Community, error) {
	s.communityCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.communities, nil
}

func (s *stubForum) FindCommunity(_ context.Context, name string) (domain.Community, bool, error) {
	s.lookups = append(s.lookups, name)
	if s.err != nil {
		return domain.Community{}, false, s.err
	}
	c, ok := s.known[name]
	return c, ok, nil
}

var linux = domain.Community{ID: 3, Name: "linux", Title: "Linux"}

func newStub() *stubForum {
	return &stubForum{
		posts: map[int64][]domain.Post{
			0: {{ID: 1, Title: "front one"}, {ID: 2, Title: "front two"}},
			3: {{ID: 30, Title: "kernel news", Community: "linux"}},
		},
		comments: map[int64][]domain.Comment{
			1: {
				{ID: 11, Path: "0.11"},
				{ID: 12, Path: "0.11.12"},
				{ID: 13, Path: "0.13"},
			},
		},
		communities: []domain.Community{linux, {ID: 4, Name: "golang"}},
		known:       map[string]domain.Community{"linux": linux},
	}
}

// run executes cmd and feeds results back until no command is left.
func run(t *testing.T, c Controller, cmd tea.Cmd) Controller {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatalf("command chain did not settle")
		}
		c, cmd = c.Update(cmd())
	}
	return c
}

func started(t *testing.T, f *stubForum, name string) Controller {
	t.Helper()
	c, cmd := New(f, DefaultOptions(), nil).Init(name)
	return run(t, c, cmd)
}

func TestInit_LoadsFrontPage(t *testing.T) {
	f := newStub()
	c, cmd := New(f, DefaultOptions(), nil).Init("")
	if !c.Loading() {
		t.Fatalf("expected loading after init")
	}
	if got := c.Render().Status; got != "Loading posts from Front Page..." {
		t.Fatalf("unexpected loading status: %q", got)
	}
	c = run(t, c, cmd)

	s := c.State()
	if s.Screen != ScreenPosts || s.Community != nil || len(s.Posts) != 2 {
		t.Fatalf("unexpected state: %+v", s)
	}
	if len(f.postQueries) != 1 || f.postQueries[0].Limit != 25 || f.postQueries[0].Sort != domain.SortHot {
		t.Fatalf("unexpected queries: %+v", f.postQueries)
	}
	if got := c.Render().Status; got != "Front Page | 2 posts" {
		t.Fatalf("unexpected status: %q", got)
	}
}

func TestInit_StartupNameResolvesBeforePosts(t *testing.T) {
	f := newStub()
	c, cmd := New(f, DefaultOptions(), nil).Init(" linux ")
	if got := c.Render().Status; got != "Looking up community 'linux'..." {
		t.Fatalf("unexpected status: %q", got)
	}
	c = run(t, c, cmd)

	if len(f.lookups) != 1 || f.lookups[0] != "linux" {
		t.Fatalf("expected one lookup, got %v", f.lookups)
	}
	s := c.State()
	if s.Community == nil || s.Community.ID != 3 {
		t.Fatalf("expected linux filter, got %+v", s.Community)
	}
	if len(f.postQueries) != 1 || f.postQueries[0].CommunityID != 3 {
		t.Fatalf("expected scoped posts fetch, got %+v", f.postQueries)
	}
	if got := c.Render().Status; got != "c/linux | 1 posts" {
		t.Fatalf("unexpected status: %q", got)
	}
}

func TestInit_StartupNameNotFound(t *testing.T) {
	f := newStub()
	c := started(t, f, "nosuch")

	s := c.State()
	if s.NotFound != "nosuch" || s.Err != nil || c.Loading() {
		t.Fatalf("expected not-found state, got %+v loading=%v", s, c.Loading())
	}
	if len(f.postQueries) != 0 {
		t.Fatalf("posts must not be fetched for an unknown community")
	}
	rm := c.Render()
	if rm.Status != "Community 'nosuch' not found" || rm.NotFound != "nosuch" {
		t.Fatalf("unexpected render: %+v", rm)
	}

	c = step(t, c, GoHome{})
	if c.State().NotFound != "" || c.State().Community != nil || len(c.State().Posts) != 2 {
		t.Fatalf("home must clear the not-found state: %+v", c.State())
	}
}

func TestSelectPost_FetchesCommentsOnceAndBuildsTree(t *testing.T) {
	f := newStub()
	c := started(t, f, "")

	c, cmd := c.Handle(SelectPost{ID: 1})
	c = run(t, c, cmd)

	if len(f.commentCalls) != 1 || f.commentCalls[0] != 1 {
		t.Fatalf("expected exactly one comments fetch, got %v", f.commentCalls)
	}
	s := c.State()
	if s.Screen != ScreenPostDetail || s.Post == nil || s.Post.ID != 1 {
		t.Fatalf("unexpected state: %+v", s)
	}
	if len(s.Forest) != 2 || s.Forest[0].Comment.ID != 11 || len(s.Forest[0].Children) != 1 || s.Forest[1].Comment.ID != 13 {
		t.Fatalf("unexpected forest: %+v", s.Forest)
	}
	rm := c.Render()
	if rm.Status != "3 comments" || rm.Title != "front one" || rm.Rows != nil {
		t.Fatalf("unexpected render: %+v", rm)
	}
}

func TestSelectPost_UnknownIDIgnored(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	c, cmd := c.Handle(SelectPost{ID: 999})
	if cmd != nil || c.Loading() || len(f.commentCalls) != 0 {
		t.Fatalf("unknown post must be ignored")
	}
}

func TestGoBack_RefetchesWithSameFilter(t *testing.T) {
	f := newStub()
	c := started(t, f, "linux")

	c = step(t, c, SelectPost{ID: 30})
	if c.State().Screen != ScreenPostDetail {
		t.Fatalf("expected detail screen")
	}
	c = step(t, c, GoBack{})

	if len(f.postQueries) != 2 {
		t.Fatalf("back must re-fetch posts, got %d fetches", len(f.postQueries))
	}
	if f.postQueries[1].CommunityID != 3 {
		t.Fatalf("filter changed on back: %+v", f.postQueries[1])
	}
	s := c.State()
	if s.Screen != ScreenPosts || s.Community == nil || s.Community.Name != "linux" {
		t.Fatalf("unexpected state after back: %+v", s)
	}
}

func TestGoBack_OnPostsIsNoop(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	if _, cmd := c.Handle(GoBack{}); cmd != nil {
		t.Fatalf("back on posts screen must not fetch")
	}
}

func TestCommunities_SelectByID(t *testing.T) {
	f := newStub()
	c := started(t, f, "")

	c = step(t, c, ShowCommunities{})
	if f.communityCalls != 1 || c.State().Screen != ScreenCommunities {
		t.Fatalf("expected directory fetch, calls=%d state=%+v", f.communityCalls, c.State())
	}
	rm := c.Render()
	if !rm.Prompt || len(rm.Rows) != 2 || rm.Status != "2 communities" {
		t.Fatalf("unexpected render: %+v", rm)
	}
	if row, ok := rm.Rows[0].(CommunityRow); !ok || row.Community.Name != "linux" {
		t.Fatalf("unexpected first row: %#v", rm.Rows[0])
	}

	c = step(t, c, SelectCommunity{ID: 3})
	if len(f.lookups) != 0 {
		t.Fatalf("selection by id must not look up by name")
	}
	if s := c.State(); s.Screen != ScreenPosts || s.Community == nil || s.Community.ID != 3 {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestSubmitCommunityName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFilter string
		notFound   bool
	}{
		{name: "known", input: "linux", wantFilter: "c/linux"},
		{name: "empty is front page", input: "  ", wantFilter: "Front Page"},
		{name: "unknown", input: "nosuch", notFound: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newStub()
			c := started(t, f, "")
			c = step(t, c, ShowCommunities{})
			before := c.State()

			c = step(t, c, SubmitCommunityName{Name: tc.input})
			s := c.State()
			if tc.notFound {
				if s.NotFound != tc.input {
					t.Fatalf("expected not-found, got %+v", s)
				}
				if s.Screen != before.Screen || len(s.Communities) != len(before.Communities) {
					t.Fatalf("not-found must keep previous data: %+v", s)
				}
				if c.Version() != 2 {
					t.Fatalf("not-found must not replace the screen, version=%d", c.Version())
				}
				return
			}
			if s.Screen != ScreenPosts || s.FilterDisplay() != tc.wantFilter {
				t.Fatalf("unexpected state: %+v", s)
			}
		})
	}
}

func TestRefreshTwice_ShowsSecondResultOnly(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	f.postBatches = [][]domain.Post{
		{{ID: 100, Title: "first"}, {ID: 101, Title: "first b"}},
		{{ID: 200, Title: "second"}},
	}

	c = step(t, c, Refresh{})
	c = step(t, c, Refresh{})

	if len(f.postQueries) != 3 {
		t.Fatalf("expected two independent refresh fetches, got %d total", len(f.postQueries))
	}
	posts := c.State().Posts
	if len(posts) != 1 || posts[0].ID != 200 {
		t.Fatalf("expected second result only, got %+v", posts)
	}
}

func TestRefresh_RerunsCurrentScreen(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	c = step(t, c, SelectPost{ID: 1})
	c = step(t, c, Refresh{})
	if len(f.commentCalls) != 2 || c.State().Post.ID != 1 {
		t.Fatalf("refresh on detail must reload the same post: %v", f.commentCalls)
	}

	c = step(t, c, ShowCommunities{})
	c = step(t, c, Refresh{})
	if f.communityCalls != 2 {
		t.Fatalf("refresh on directory must reload it, calls=%d", f.communityCalls)
	}
}

func TestRefresh_RetriesFailedLookup(t *testing.T) {
	f := newStub()
	c := started(t, f, "rust")
	f.known["rust"] = domain.Community{ID: 9, Name: "rust"}
	c = step(t, c, Refresh{})
	if s := c.State(); s.NotFound != "" || s.Community == nil || s.Community.ID != 9 {
		t.Fatalf("expected retry to resolve, got %+v", s)
	}
}

func TestInputIgnoredWhileLoading(t *testing.T) {
	f := newStub()
	c, pendingCmd := New(f, DefaultOptions(), nil).Init("")

	for _, in := range []Intent{ShowCommunities{}, GoHome{}, Refresh{}, SelectPost{ID: 1}} {
		next, cmd := c.Handle(in)
		if cmd != nil {
			t.Fatalf("%T must be ignored while loading", in)
		}
		c = next
	}
	if _, cmd := c.Handle(Quit{}); cmd == nil {
		t.Fatalf("quit must work while loading")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit command")
	}

	c = run(t, c, pendingCmd)
	if len(f.postQueries) != 1 || f.communityCalls != 0 {
		t.Fatalf("ignored intents must not fetch: posts=%d communities=%d", len(f.postQueries), f.communityCalls)
	}
}

func TestStaleResultsDropped(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	version := c.Version()

	c, _ = c.Update(PostsLoadedMsg{ReqSeq: 0, Posts: []domain.Post{{ID: 77}}})
	c, _ = c.Update(FetchErrorMsg{ReqSeq: 1, Err: errors.New("late")})
	if c.Version() != version || c.State().Err != nil || c.State().Posts[0].ID != 1 {
		t.Fatalf("stale messages must be ignored: %+v", c.State())
	}
}

func TestFetchError_KeepsDataAndReportsOnce(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	f.err = &domain.RemoteError{Op: "list comments", Status: 502}

	c = step(t, c, SelectPost{ID: 2})
	if len(f.commentCalls) != 1 {
		t.Fatalf("no retries expected, got %d calls", len(f.commentCalls))
	}
	s := c.State()
	if s.Err == nil || s.Screen != ScreenPosts || len(s.Posts) != 2 {
		t.Fatalf("error must keep previous data: %+v", s)
	}
	if c.Loading() {
		t.Fatalf("error must end loading")
	}
	if got := c.Render().Status; !strings.HasPrefix(got, "Error: list comments: status 502") {
		t.Fatalf("unexpected status: %q", got)
	}

	f.err = nil
	c = step(t, c, Refresh{})
	s = c.State()
	if s.Err != nil || s.Screen != ScreenPostDetail || s.Post == nil || s.Post.ID != 2 {
		t.Fatalf("refresh must retry the failed comments fetch: %+v", s)
	}
	if len(f.commentCalls) != 2 || f.commentCalls[1] != 2 {
		t.Fatalf("expected one retry for post 2, got %v", f.commentCalls)
	}
}

func TestRefresh_RetriesFetchThatFailedAfterNotFound(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	c = step(t, c, ShowCommunities{})
	c = step(t, c, SubmitCommunityName{Name: "nosuch"})
	if c.State().NotFound != "nosuch" {
		t.Fatalf("expected not-found, got %+v", c.State())
	}

	f.err = errors.New("boom")
	c = step(t, c, GoBack{})
	s := c.State()
	if s.Err == nil || s.NotFound != "" {
		t.Fatalf("a later failure must replace the not-found marker: %+v", s)
	}

	f.err = nil
	lookups, postFetches := len(f.lookups), len(f.postQueries)
	c = step(t, c, Refresh{})
	if len(f.lookups) != lookups {
		t.Fatalf("refresh must not repeat the old lookup, lookups=%v", f.lookups)
	}
	if len(f.postQueries) != postFetches+1 {
		t.Fatalf("refresh must retry the failed posts fetch, got %d new", len(f.postQueries)-postFetches)
	}
	s = c.State()
	if s.Screen != ScreenPosts || s.Err != nil || s.NotFound != "" || len(s.Posts) != 2 {
		t.Fatalf("expected front page after retry: %+v", s)
	}
}

func TestRender_PostRowsFollowListingOrder(t *testing.T) {
	f := newStub()
	c := started(t, f, "")
	rm := c.Render()
	if rm.Title != "Front Page" || rm.Prompt || len(rm.Rows) != 2 {
		t.Fatalf("unexpected render: %+v", rm)
	}
	for i, want := range []int64{1, 2} {
		row, ok := rm.Rows[i].(PostRow)
		if !ok || row.Post.ID != want {
			t.Fatalf("row %d: %#v", i, rm.Rows[i])
		}
	}
}

// step handles in and runs the resulting fetch to completion.
func step(t *testing.T, c Controller, in Intent) Controller {
	t.Helper()
	next, cmd := c.Handle(in)
	if cmd == nil {
		t.Fatalf("%T produced no command", in)
	}
	return run(t, next, cmd)
}
