package app

import (
	"context"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// PostQuery selects a post listing. A zero CommunityID and empty
// CommunityName mean the front page across all communities.
type PostQuery struct {
	CommunityID   int64
	CommunityName string
	Sort          domain.SortType
	Limit         int
}

// CommentQuery selects the comments of a single post.
type CommentQuery struct {
	Sort     domain.SortType
	MaxDepth int
}

// CommunityQuery selects a page of the community directory.
type CommunityQuery struct {
	Sort  domain.SortType
	Limit int
}

// ForumService is the read-only view of the forum API.
type ForumService interface {
	// ListPosts returns posts in the order the API ranked them.
	ListPosts(ctx context.Context, q PostQuery) ([]domain.Post, error)

	// ListComments returns the flat comment listing for a post. Parents are
	// not guaranteed to precede their replies.
	ListComments(ctx context.Context, postID int64, q CommentQuery) ([]domain.Comment, error)

	// ListCommunities returns a page of the community directory.
	ListCommunities(ctx context.Context, q CommunityQuery) ([]domain.Community, error)

	// FindCommunity looks a community up by name. A missing community is
	// reported as found == false with a nil error.
	FindCommunity(ctx context.Context, name string) (c domain.Community, found bool, err error)
}
