package domain

import "time"

// Post is a single entry from a post listing.
type Post struct {
	ID           int64
	Title        string
	Body         string // Markdown source, may be empty
	URL          string // External link, may be empty
	Score        int
	CommentCount int
	Author       string
	Community    string
	Published    time.Time
}

// Comment is one record of the flat comment listing for a post.
type Comment struct {
	ID        int64
	Path      string // Materialized path, e.g. "0.12.345"
	Content   string
	Score     int
	Author    string
	Published time.Time
	Deleted   bool
	Removed   bool
}

// Community is a named sub-forum.
type Community struct {
	ID          int64
	Name        string
	Title       string
	Subscribers int
}

// DisplayName returns the c/<name> form used in headers and status lines.
func (c Community) DisplayName() string {
	return "c/" + c.Name
}
