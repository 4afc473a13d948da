package nav

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
)

// Options fixes the listing parameters used for every fetch.
type Options struct {
	PostLimit       int
	CommunityLimit  int
	CommentMaxDepth int
	PostSort        domain.SortType
	CommentSort     domain.SortType
	CommunitySort   domain.SortType
}

// DefaultOptions mirrors the API defaults the client was designed around.
func DefaultOptions() Options {
	return Options{
		PostLimit:       25,
		CommunityLimit:  50,
		CommentMaxDepth: 8,
		PostSort:        domain.SortHot,
		CommentSort:     domain.SortHot,
		CommunitySort:   domain.SortHot,
	}
}

type fetchKind int

const (
	fetchNone fetchKind = iota
	fetchPosts
	fetchComments
	fetchCommunities
	fetchResolve
)

// pending describes a fetch: the one in flight, for the loading status
// line, or the last one that failed, for Refresh.
type pending struct {
	kind      fetchKind
	filter    string            // posts: display name of the target filter
	name      string            // resolve: community name
	community *domain.Community // posts: target filter, nil for the front page
	post      domain.Post       // comments: parent post
}

// Controller is the navigation state machine. It owns the State, turns
// intents into fetch commands and applies their results.
//
// While a fetch is outstanding every intent except Quit is ignored, so at
// most one fetch is ever in flight. Results are also stamped with a request
// sequence and stale ones are dropped.
type Controller struct {
	forum   app.ForumService
	opts    Options
	log     *zap.Logger
	state   State
	loading bool
	pending pending
	failed  pending
	reqSeq  int
	version int
}

// New creates a controller on the front page with nothing loaded yet.
func New(forum app.ForumService, opts Options, log *zap.Logger) Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return Controller{
		forum: forum,
		opts:  opts,
		log:   log,
		state: State{Screen: ScreenPosts},
	}
}

// Init starts the first load. A non-empty startupName is resolved before
// any posts are fetched.
func (c Controller) Init(startupName string) (Controller, tea.Cmd) {
	if name := strings.TrimSpace(startupName); name != "" {
		return c.beginResolve(name)
	}
	return c.beginPosts(nil)
}

// State returns the current navigation state.
func (c Controller) State() State { return c.state }

// Loading reports whether a fetch is outstanding.
func (c Controller) Loading() bool { return c.loading }

// Version increases every time the screen data is replaced. Views use it to
// reset cursors and other per-screen state.
func (c Controller) Version() int { return c.version }

// Handle applies a navigation intent.
func (c Controller) Handle(in Intent) (Controller, tea.Cmd) {
	if _, quit := in.(Quit); quit {
		return c, tea.Quit
	}
	if c.loading {
		c.log.Debug("intent ignored while loading", zap.String("screen", c.state.Screen.String()))
		return c, nil
	}

	switch in := in.(type) {
	case GoHome:
		return c.beginPosts(nil)

	case SelectPost:
		if c.state.Screen != ScreenPosts {
			return c, nil
		}
		for _, p := range c.state.Posts {
			if p.ID == in.ID {
				return c.beginComments(p)
			}
		}
		return c, nil

	case ShowCommunities:
		return c.beginCommunities()

	case SelectCommunity:
		if c.state.Screen != ScreenCommunities {
			return c, nil
		}
		if in.ID > 0 {
			for _, cm := range c.state.Communities {
				if cm.ID == in.ID {
					return c.beginPosts(&cm)
				}
			}
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			return c.beginResolve(name)
		}
		return c, nil

	case SubmitCommunityName:
		if c.state.Screen != ScreenCommunities {
			return c, nil
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return c.beginPosts(nil)
		}
		return c.beginResolve(name)

	case GoBack:
		if c.state.Screen == ScreenPosts {
			return c, nil
		}
		return c.beginPosts(c.state.Community)

	case Refresh:
		if c.state.Err != nil || c.state.NotFound != "" {
			if next, cmd, ok := c.retry(); ok {
				return next, cmd
			}
		}
		switch c.state.Screen {
		case ScreenPostDetail:
			if c.state.Post != nil {
				return c.beginComments(*c.state.Post)
			}
		case ScreenCommunities:
			return c.beginCommunities()
		}
		return c.beginPosts(c.state.Community)
	}
	return c, nil
}

// Update applies fetch results. Messages that are not fetch results, or that
// belong to a superseded fetch, leave the controller unchanged.
func (c Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if !c.current(msg.ReqSeq) {
			return c, nil
		}
		c = c.replace(State{
			Screen:    ScreenPosts,
			Community: msg.Community,
			Posts:     msg.Posts,
		})
		c.log.Debug("posts loaded", zap.String("filter", c.state.FilterDisplay()), zap.Int("count", len(msg.Posts)))
		return c, nil

	case CommentsLoadedMsg:
		if !c.current(msg.ReqSeq) {
			return c, nil
		}
		post := msg.Post
		c = c.replace(State{
			Screen:    ScreenPostDetail,
			Community: c.state.Community,
			Post:      &post,
			Forest:    domain.BuildCommentTree(msg.Comments),
			Comments:  len(msg.Comments),
		})
		c.log.Debug("comments loaded", zap.Int64("post", post.ID), zap.Int("count", len(msg.Comments)))
		return c, nil

	case CommunitiesLoadedMsg:
		if !c.current(msg.ReqSeq) {
			return c, nil
		}
		c = c.replace(State{
			Screen:      ScreenCommunities,
			Community:   c.state.Community,
			Communities: msg.Communities,
		})
		return c, nil

	case CommunityResolvedMsg:
		if !c.current(msg.ReqSeq) {
			return c, nil
		}
		if !msg.Found {
			c.loading = false
			c.failed = c.pending
			c.pending = pending{}
			c.state.Err = nil
			c.state.NotFound = msg.Name
			c.log.Debug("community not found", zap.String("name", msg.Name))
			return c, nil
		}
		cm := msg.Community
		c.loading = false
		return c.beginPosts(&cm)

	case FetchErrorMsg:
		if !c.current(msg.ReqSeq) {
			return c, nil
		}
		c.loading = false
		c.failed = c.pending
		c.pending = pending{}
		c.state.Err = msg.Err
		c.state.NotFound = ""
		c.log.Warn("fetch failed", zap.String("op", msg.Op), zap.Error(msg.Err))
		return c, nil
	}
	return c, nil
}

func (c Controller) current(seq int) bool {
	return c.loading && seq == c.reqSeq
}

func (c Controller) replace(s State) Controller {
	c.state = s
	c.loading = false
	c.pending = pending{}
	c.failed = pending{}
	c.version++
	return c
}

func (c Controller) begin(p pending) Controller {
	c.reqSeq++
	c.loading = true
	c.pending = p
	return c
}

func (c Controller) beginPosts(cm *domain.Community) (Controller, tea.Cmd) {
	filter := "Front Page"
	if cm != nil {
		cp := *cm
		cm = &cp
		filter = cm.DisplayName()
	}
	c = c.begin(pending{kind: fetchPosts, filter: filter, community: cm})
	return c, c.fetchPosts(c.reqSeq, cm)
}

func (c Controller) beginComments(p domain.Post) (Controller, tea.Cmd) {
	c = c.begin(pending{kind: fetchComments, post: p})
	return c, c.fetchComments(c.reqSeq, p)
}

func (c Controller) beginCommunities() (Controller, tea.Cmd) {
	c = c.begin(pending{kind: fetchCommunities})
	return c, c.fetchCommunities(c.reqSeq)
}

func (c Controller) beginResolve(name string) (Controller, tea.Cmd) {
	c = c.begin(pending{kind: fetchResolve, name: name})
	return c, c.resolveCommunity(c.reqSeq, name)
}

// retry repeats the fetch that left the current error or not-found result.
func (c Controller) retry() (Controller, tea.Cmd, bool) {
	f := c.failed
	var cmd tea.Cmd
	switch f.kind {
	case fetchPosts:
		c, cmd = c.beginPosts(f.community)
	case fetchComments:
		c, cmd = c.beginComments(f.post)
	case fetchCommunities:
		c, cmd = c.beginCommunities()
	case fetchResolve:
		c, cmd = c.beginResolve(f.name)
	default:
		return c, nil, false
	}
	return c, cmd, true
}

func (c Controller) fetchPosts(seq int, cm *domain.Community) tea.Cmd {
	forum := c.forum
	q := app.PostQuery{Sort: c.opts.PostSort, Limit: c.opts.PostLimit}
	var target *domain.Community
	if cm != nil {
		cp := *cm
		target = &cp
		q.CommunityID = cp.ID
	}
	return func() tea.Msg {
		posts, err := forum.ListPosts(context.Background(), q)
		if err != nil {
			return FetchErrorMsg{ReqSeq: seq, Op: "load posts", Err: err}
		}
		return PostsLoadedMsg{ReqSeq: seq, Community: target, Posts: posts}
	}
}

func (c Controller) fetchComments(seq int, p domain.Post) tea.Cmd {
	forum := c.forum
	q := app.CommentQuery{Sort: c.opts.CommentSort, MaxDepth: c.opts.CommentMaxDepth}
	return func() tea.Msg {
		comments, err := forum.ListComments(context.Background(), p.ID, q)
		if err != nil {
			return FetchErrorMsg{ReqSeq: seq, Op: "load comments", Err: err}
		}
		return CommentsLoadedMsg{ReqSeq: seq, Post: p, Comments: comments}
	}
}

func (c Controller) fetchCommunities(seq int) tea.Cmd {
	forum := c.forum
	q := app.CommunityQuery{Sort: c.opts.CommunitySort, Limit: c.opts.CommunityLimit}
	return func() tea.Msg {
		communities, err := forum.ListCommunities(context.Background(), q)
		if err != nil {
			return FetchErrorMsg{ReqSeq: seq, Op: "load communities", Err: err}
		}
		return CommunitiesLoadedMsg{ReqSeq: seq, Communities: communities}
	}
}

func (c Controller) resolveCommunity(seq int, name string) tea.Cmd {
	forum := c.forum
	return func() tea.Msg {
		cm, found, err := forum.FindCommunity(context.Background(), name)
		if err != nil {
			return FetchErrorMsg{ReqSeq: seq, Op: "look up community", Err: err}
		}
		return CommunityResolvedMsg{ReqSeq: seq, Name: name, Community: cm, Found: found}
	}
}
