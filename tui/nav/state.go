package nav

import "github.com/CrestNiraj12/lemmyterm/domain"

// Screen identifies which view the session is on.
type Screen int

const (
	ScreenPosts Screen = iota
	ScreenPostDetail
	ScreenCommunities
)

func (s Screen) String() string {
	switch s {
	case ScreenPosts:
		return "posts"
	case ScreenPostDetail:
		return "post_detail"
	case ScreenCommunities:
		return "communities"
	default:
		return "unknown"
	}
}

// State is the single navigation state of a session. The controller builds a
// new value on every transition; nothing mutates a State in place.
type State struct {
	Screen Screen

	// Community is the active filter. nil means the front page.
	Community *domain.Community
	// Post is the post whose thread is shown on ScreenPostDetail.
	Post *domain.Post

	Posts       []domain.Post
	Forest      []domain.CommentNode
	Comments    int // comments received, including orphans
	Communities []domain.Community

	Err      error
	NotFound string // community name that failed to resolve
}

// FilterDisplay names the active filter for headers and status lines.
func (s State) FilterDisplay() string {
	if s.Community == nil {
		return "Front Page"
	}
	return s.Community.DisplayName()
}
