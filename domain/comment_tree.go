package domain

import (
	"strconv"
	"strings"
)

// CommentNode is a comment together with its replies, in display order.
type CommentNode struct {
	Comment  Comment
	Children []CommentNode
}

// rootKey groups top-level comments. Real ids are positive and the path
// root sentinel is 0, so it never collides with a parent id.
const rootKey int64 = 0

// ParsePath splits a materialized path into ancestor ids ending with the
// comment's own id. "0" segments are dropped. A segment that is not an
// integer makes the whole path unusable and ok is false; callers treat such
// comments as roots.
func ParsePath(path string) (ids []int64, ok bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, true
	}
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "0" {
			continue
		}
		id, err := strconv.ParseInt(seg, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// ParentID returns the id of the comment's parent, or false for roots
// (including comments with malformed paths).
func ParentID(path string) (int64, bool) {
	ids, ok := ParsePath(path)
	if !ok || len(ids) <= 1 {
		return 0, false
	}
	return ids[len(ids)-2], true
}

// BuildCommentTree turns the flat comment listing of a post into a forest.
//
// Siblings keep their relative input order. Comments whose parent is not in
// the input are unreachable and left out. Each input comment is attached at
// most once, so self-referencing or cyclic paths cannot recurse forever.
func BuildCommentTree(comments []Comment) []CommentNode {
	forest, _ := buildForest(comments)
	return forest
}

// Orphans returns the comments BuildCommentTree leaves out: those whose
// declared parent is missing from comments, together with their replies.
func Orphans(comments []Comment) []Comment {
	_, attached := buildForest(comments)
	var out []Comment
	for i, ok := range attached {
		if !ok {
			out = append(out, comments[i])
		}
	}
	return out
}

// CountNodes returns the number of comments reachable in forest.
func CountNodes(forest []CommentNode) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Children)
	}
	return n
}

func buildForest(comments []Comment) ([]CommentNode, []bool) {
	attached := make([]bool, len(comments))
	if len(comments) == 0 {
		return nil, attached
	}

	children := make(map[int64][]int, len(comments))
	for i, c := range comments {
		parent, ok := ParentID(c.Path)
		if !ok {
			parent = rootKey
		}
		children[parent] = append(children[parent], i)
	}

	expanded := make(map[int64]bool, len(comments))
	var build func(parent int64) []CommentNode
	build = func(parent int64) []CommentNode {
		if expanded[parent] {
			return nil
		}
		expanded[parent] = true

		idxs := children[parent]
		nodes := make([]CommentNode, 0, len(idxs))
		for _, i := range idxs {
			if attached[i] {
				continue
			}
			attached[i] = true
			c := comments[i]
			nodes = append(nodes, CommentNode{Comment: c, Children: build(c.ID)})
		}
		if len(nodes) == 0 {
			return nil
		}
		return nodes
	}

	return build(rootKey), attached
}
