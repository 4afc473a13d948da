package lemmy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/lemmyterm/app"
	"github.com/CrestNiraj12/lemmyterm/domain"
)

// forumService implements app.ForumService using the Lemmy v3 API.
type forumService struct {
	client *Client
}

// NewForumService creates a ForumService backed by Lemmy.
func NewForumService(client *Client) *forumService {
	return &forumService{client: client}
}

var _ app.ForumService = (*forumService)(nil)

// Subsets of Lemmy's view objects we care about.
type lemmyPostView struct {
	Post struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Body      string `json:"body"`
		URL       string `json:"url"`
		Published string `json:"published"`
	} `json:"post"`
	Creator   lemmyPerson         `json:"creator"`
	Community lemmyCommunity      `json:"community"`
	Counts    lemmyAggregateCount `json:"counts"`
}

type lemmyCommentView struct {
	Comment struct {
		ID        int64  `json:"id"`
		Content   string `json:"content"`
		Path      string `json:"path"`
		Published string `json:"published"`
		Deleted   bool   `json:"deleted"`
		Removed   bool   `json:"removed"`
	} `json:"comment"`
	Creator lemmyPerson         `json:"creator"`
	Counts  lemmyAggregateCount `json:"counts"`
}

type lemmyCommunityView struct {
	Community lemmyCommunity      `json:"community"`
	Counts    lemmyAggregateCount `json:"counts"`
}

type lemmyPerson struct {
	Name string `json:"name"`
}

type lemmyCommunity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type lemmyAggregateCount struct {
	Score       int `json:"score"`
	Comments    int `json:"comments"`
	Subscribers int `json:"subscribers"`
}

func (s *forumService) ListPosts(ctx context.Context, q app.PostQuery) ([]domain.Post, error) {
	if err := validateListing(q.Sort, domain.PostSorts, q.Limit); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	params := url.Values{}
	params.Set("sort", string(q.Sort))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("type_", "All")
	switch {
	case q.CommunityID > 0:
		params.Set("community_id", strconv.FormatInt(q.CommunityID, 10))
	case strings.TrimSpace(q.CommunityName) != "":
		params.Set("community_name", strings.TrimSpace(q.CommunityName))
	}

	data, err := s.client.Get(ctx, "list posts", "/post/list", params)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Posts []lemmyPostView `json:"posts"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &domain.RemoteError{Op: "list posts", Err: fmt.Errorf("parsing posts: %w", err)}
	}
	return mapPosts(resp.Posts), nil
}

func (s *forumService) ListComments(ctx context.Context, postID int64, q app.CommentQuery) ([]domain.Comment, error) {
	if err := domain.ValidateSort(q.Sort, domain.CommentSorts); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if q.MaxDepth <= 0 {
		return nil, fmt.Errorf("list comments: %w: max depth must be positive", domain.ErrInvalidQuery)
	}
	params := url.Values{}
	params.Set("post_id", strconv.FormatInt(postID, 10))
	params.Set("sort", string(q.Sort))
	params.Set("max_depth", strconv.Itoa(q.MaxDepth))
	params.Set("type_", "All")

	data, err := s.client.Get(ctx, "list comments", "/comment/list", params)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Comments []lemmyCommentView `json:"comments"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &domain.RemoteError{Op: "list comments", Err: fmt.Errorf("parsing comments: %w", err)}
	}
	return mapComments(resp.Comments), nil
}

func (s *forumService) ListCommunities(ctx context.Context, q app.CommunityQuery) ([]domain.Community, error) {
	if err := validateListing(q.Sort, domain.PostSorts, q.Limit); err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	params := url.Values{}
	params.Set("sort", string(q.Sort))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("type_", "All")

	data, err := s.client.Get(ctx, "list communities", "/community/list", params)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Communities []lemmyCommunityView `json:"communities"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &domain.RemoteError{Op: "list communities", Err: fmt.Errorf("parsing communities: %w", err)}
	}
	out := make([]domain.Community, 0, len(resp.Communities))
	for _, cv := range resp.Communities {
		out = append(out, mapCommunity(cv))
	}
	return out, nil
}

func (s *forumService) FindCommunity(ctx context.Context, name string) (domain.Community, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Community{}, false, fmt.Errorf("find community: %w: empty name", domain.ErrInvalidQuery)
	}
	params := url.Values{}
	params.Set("name", name)

	data, err := s.client.Get(ctx, "find community "+name, "/community", params)
	if isNotFound(err) {
		return domain.Community{}, false, nil
	}
	if err != nil {
		return domain.Community{}, false, err
	}
	var resp struct {
		CommunityView *lemmyCommunityView `json:"community_view"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.Community{}, false, &domain.RemoteError{Op: "find community " + name, Err: fmt.Errorf("parsing community: %w", err)}
	}
	if resp.CommunityView == nil {
		return domain.Community{}, false, nil
	}
	return mapCommunity(*resp.CommunityView), true, nil
}

func validateListing(sort domain.SortType, allowed []domain.SortType, limit int) error {
	if err := domain.ValidateSort(sort, allowed); err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", domain.ErrInvalidQuery)
	}
	return nil
}

func mapPosts(views []lemmyPostView) []domain.Post {
	posts := make([]domain.Post, 0, len(views))
	for _, v := range views {
		posts = append(posts, domain.Post{
			ID:           v.Post.ID,
			Title:        orDefault(sanitizeForTerminal(v.Post.Name), "Untitled"),
			Body:         sanitizeForTerminal(v.Post.Body),
			URL:          strings.TrimSpace(v.Post.URL),
			Score:        v.Counts.Score,
			CommentCount: v.Counts.Comments,
			Author:       orDefault(sanitizeForTerminal(v.Creator.Name), "unknown"),
			Community:    orDefault(sanitizeForTerminal(v.Community.Name), "unknown"),
			Published:    parseTimestamp(v.Post.Published),
		})
	}
	return posts
}

func mapComments(views []lemmyCommentView) []domain.Comment {
	comments := make([]domain.Comment, 0, len(views))
	for _, v := range views {
		path := strings.TrimSpace(v.Comment.Path)
		if path == "" {
			path = "0"
		}
		comments = append(comments, domain.Comment{
			ID:        v.Comment.ID,
			Path:      path,
			Content:   sanitizeForTerminal(v.Comment.Content),
			Score:     v.Counts.Score,
			Author:    orDefault(sanitizeForTerminal(v.Creator.Name), "unknown"),
			Published: parseTimestamp(v.Comment.Published),
			Deleted:   v.Comment.Deleted,
			Removed:   v.Comment.Removed,
		})
	}
	return comments
}

func mapCommunity(v lemmyCommunityView) domain.Community {
	return domain.Community{
		ID:          v.Community.ID,
		Name:        sanitizeForTerminal(v.Community.Name),
		Title:       sanitizeForTerminal(v.Community.Title),
		Subscribers: v.Counts.Subscribers,
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Lemmy 0.19 sends RFC 3339; older servers omit the zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
