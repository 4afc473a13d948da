package nav

import "github.com/CrestNiraj12/lemmyterm/domain"

// Fetch results. Every message carries the ReqSeq of the fetch that produced
// it; the controller drops messages whose ReqSeq is not the latest.

// PostsLoadedMsg is sent when a post listing fetch completes.
type PostsLoadedMsg struct {
	ReqSeq    int
	Community *domain.Community
	Posts     []domain.Post
}

// CommentsLoadedMsg is sent when the flat comment listing of a post arrives.
type CommentsLoadedMsg struct {
	ReqSeq   int
	Post     domain.Post
	Comments []domain.Comment
}

// CommunitiesLoadedMsg is sent when the community directory arrives.
type CommunitiesLoadedMsg struct {
	ReqSeq      int
	Communities []domain.Community
}

// CommunityResolvedMsg is sent when a lookup by name finishes without a
// transport error. Found is false for an unknown name.
type CommunityResolvedMsg struct {
	ReqSeq    int
	Name      string
	Community domain.Community
	Found     bool
}

// FetchErrorMsg is sent when any fetch fails.
type FetchErrorMsg struct {
	ReqSeq int
	Op     string
	Err    error
}
