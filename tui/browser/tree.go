package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/common"
)

const previewRunes = 100

// treeRow is one visible line of the comment tree.
type treeRow struct {
	node   *domain.CommentNode
	depth  int
	prefix string // guides and branch, e.g. "│   ├── "
}

// threadTree is a collapsible view over a comment forest. Nodes are
// expanded unless listed in collapsed.
type threadTree struct {
	forest    []domain.CommentNode
	collapsed map[int64]bool
	rows      []treeRow
	cursor    int
	offset    int
	height    int
}

func newThreadTree(forest []domain.CommentNode) threadTree {
	t := threadTree{
		forest:    forest,
		collapsed: make(map[int64]bool),
	}
	t.rebuild()
	return t
}

// rebuild flattens the visible nodes and clamps the cursor.
func (t *threadTree) rebuild() {
	t.rows = make([]treeRow, 0, len(t.rows))
	for i := range t.forest {
		t.appendVisible(&t.forest[i], 0, "", i == len(t.forest)-1)
	}
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureVisible()
}

func (t *threadTree) appendVisible(n *domain.CommentNode, depth int, guides string, last bool) {
	prefix := ""
	childGuides := ""
	if depth > 0 {
		if last {
			prefix = guides + "└── "
			childGuides = guides + "    "
		} else {
			prefix = guides + "├── "
			childGuides = guides + "│   "
		}
	}
	t.rows = append(t.rows, treeRow{node: n, depth: depth, prefix: prefix})
	if t.collapsed[n.Comment.ID] {
		return
	}
	for i := range n.Children {
		t.appendVisible(&n.Children[i], depth+1, childGuides, i == len(n.Children)-1)
	}
}

func (t *threadTree) setHeight(h int) {
	t.height = max(h, 1)
	t.ensureVisible()
}

func (t *threadTree) moveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.ensureVisible()
}

func (t *threadTree) moveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
	t.ensureVisible()
}

// toggle collapses or expands the highlighted node. Leaves are ignored.
func (t *threadTree) toggle() {
	n := t.selected()
	if n == nil || len(n.Children) == 0 {
		return
	}
	id := n.Comment.ID
	t.collapsed[id] = !t.collapsed[id]
	t.rebuild()
}

func (t threadTree) selected() *domain.CommentNode {
	if len(t.rows) == 0 {
		return nil
	}
	return t.rows[t.cursor].node
}

func (t *threadTree) ensureVisible() {
	if t.height <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	if maxOffset := max(len(t.rows)-t.height, 0); t.offset > maxOffset {
		t.offset = maxOffset
	}
}

func (t threadTree) view(width int) string {
	if len(t.rows) == 0 {
		return common.TimestampStyle.Render("No comments yet.")
	}
	end := len(t.rows)
	if t.height > 0 {
		end = min(t.offset+t.height, len(t.rows))
	}
	lines := make([]string, 0, end-t.offset)
	for i := t.offset; i < end; i++ {
		r := t.rows[i]
		line := common.TreeGuideStyle.Render(r.prefix) + t.indicator(r.node) + " " + commentLabel(r.node.Comment)
		if width > 0 {
			line = ansi.Truncate(line, width, "…")
		}
		if i == t.cursor {
			line = common.TreeCursorStyle.Render(ansi.Strip(line))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (t threadTree) indicator(n *domain.CommentNode) string {
	switch {
	case len(n.Children) == 0:
		return "•"
	case t.collapsed[n.Comment.ID]:
		return fmt.Sprintf("▸ (%d)", domain.CountNodes(n.Children))
	default:
		return "▾"
	}
}

func commentLabel(c domain.Comment) string {
	author := common.AuthorStyleFor(c.Author).Render("u/" + c.Author)
	score := common.TimestampStyle.Render(fmt.Sprintf("(%d pts)", c.Score))
	return author + " " + score + " " + commentPreview(c)
}

func commentPreview(c domain.Comment) string {
	switch {
	case c.Removed:
		return common.MutedStyle.Render("[removed]")
	case c.Deleted:
		return common.MutedStyle.Render("[deleted]")
	}
	text := strings.ReplaceAll(strings.TrimSpace(c.Content), "\n", " ")
	if r := []rune(text); len(r) > previewRunes {
		text = string(r[:previewRunes]) + "..."
	}
	return text
}
