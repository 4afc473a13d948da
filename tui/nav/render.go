package nav

import (
	"fmt"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// Row is one selectable line of a listing screen.
type Row interface {
	row()
}

// PostRow is a row of the posts screen.
type PostRow struct {
	Post domain.Post
}

// CommunityRow is a row of the community directory.
type CommunityRow struct {
	Community domain.Community
}

func (PostRow) row()      {}
func (CommunityRow) row() {}

// RenderModel is everything the presentation layer needs to draw a screen.
type RenderModel struct {
	Screen Screen
	Title  string
	Status string

	Rows   []Row
	Post   *domain.Post
	Forest []domain.CommentNode

	// Prompt is set when the screen accepts a typed community name.
	Prompt bool

	Err      error
	NotFound string
	Loading  bool
}

// Render builds the render model for the current state.
func (c Controller) Render() RenderModel {
	s := c.state
	rm := RenderModel{
		Screen:   s.Screen,
		Post:     s.Post,
		Forest:   s.Forest,
		Prompt:   s.Screen == ScreenCommunities,
		Err:      s.Err,
		NotFound: s.NotFound,
		Loading:  c.loading,
	}

	switch s.Screen {
	case ScreenPosts:
		rm.Title = s.FilterDisplay()
		rm.Rows = make([]Row, 0, len(s.Posts))
		for _, p := range s.Posts {
			rm.Rows = append(rm.Rows, PostRow{Post: p})
		}
	case ScreenPostDetail:
		rm.Title = "Post"
		if s.Post != nil {
			rm.Title = s.Post.Title
		}
	case ScreenCommunities:
		rm.Title = "Communities"
		rm.Rows = make([]Row, 0, len(s.Communities))
		for _, cm := range s.Communities {
			rm.Rows = append(rm.Rows, CommunityRow{Community: cm})
		}
	}

	rm.Status = c.status()
	return rm
}

func (c Controller) status() string {
	s := c.state
	if c.loading {
		switch c.pending.kind {
		case fetchPosts:
			return fmt.Sprintf("Loading posts from %s...", c.pending.filter)
		case fetchComments:
			return "Loading comments..."
		case fetchCommunities:
			return "Loading communities..."
		case fetchResolve:
			return fmt.Sprintf("Looking up community '%s'...", c.pending.name)
		}
		return "Loading..."
	}
	if s.Err != nil {
		return "Error: " + s.Err.Error()
	}
	if s.NotFound != "" {
		return fmt.Sprintf("Community '%s' not found", s.NotFound)
	}
	switch s.Screen {
	case ScreenPostDetail:
		return fmt.Sprintf("%d comments", s.Comments)
	case ScreenCommunities:
		return fmt.Sprintf("%d communities", len(s.Communities))
	default:
		return fmt.Sprintf("%s | %d posts", s.FilterDisplay(), len(s.Posts))
	}
}
