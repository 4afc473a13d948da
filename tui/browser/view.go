package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/lemmyterm/domain"
	"github.com/CrestNiraj12/lemmyterm/tui/common"
	"github.com/CrestNiraj12/lemmyterm/tui/nav"
)

const (
	chromeLines    = 5 // title bar and status bar
	postCardLines  = 4
	communityLines = 3
	bodyPreview    = 6
)

// View renders the current screen.
func (m Model) View() string {
	if m.showHints {
		return m.renderKeyDialog()
	}
	rm := m.nav.Render()

	var b strings.Builder
	b.WriteString(m.renderTitle(rm))
	b.WriteString("\n\n")
	b.WriteString(m.renderBody(rm))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(rm))
	return b.String()
}

func (m Model) renderTitle(rm nav.RenderModel) string {
	title := common.AppTitleStyle.Render("lemmyterm")
	scope := m.nav.State().FilterDisplay()
	if rm.Screen == nav.ScreenCommunities {
		scope = "Communities"
	}
	return title + "  " + common.CommunityStyle.Render(scope)
}

func (m Model) renderBody(rm nav.RenderModel) string {
	switch {
	case rm.Err != nil:
		return common.ErrorStyle.Render("Error: "+rm.Err.Error()) + "\n\n" +
			common.TimestampStyle.Render("Press 'r' to retry, 'h' for the front page, or 'esc' to go back.")
	case rm.NotFound != "":
		return common.ErrorStyle.Render(fmt.Sprintf("Community '%s' not found.", rm.NotFound)) + "\n\n" +
			"Press 'c' for communities, then '/' to type a name, or 'h' for the front page."
	case rm.Loading && m.seen == 0:
		return m.spinner.View() + " " + rm.Status
	}

	switch rm.Screen {
	case nav.ScreenPostDetail:
		return m.renderDetail()
	case nav.ScreenCommunities:
		return m.renderCommunities(rm)
	default:
		return m.renderPosts(rm)
	}
}

func (m Model) cardWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	return max(w-4, 20)
}

func (m Model) listSlots() int {
	if m.height <= 0 {
		return 10
	}
	per := postCardLines
	avail := m.height - chromeLines
	if m.nav.State().Screen == nav.ScreenCommunities {
		per = communityLines
		avail -= 2
	}
	return max(avail/per, 1)
}

func (m Model) visibleRange(n int) (start, end int) {
	start = min(m.listOffset, max(n-1, 0))
	end = min(start+m.listSlots(), n)
	return start, end
}

func (m Model) renderPosts(rm nav.RenderModel) string {
	if len(rm.Rows) == 0 {
		return common.TimestampStyle.Render("  No posts here yet.")
	}
	width := m.cardWidth()
	start, end := m.visibleRange(len(rm.Rows))
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row, ok := rm.Rows[i].(nav.PostRow)
		if !ok {
			continue
		}
		cards = append(cards, renderCard(postCard(row.Post, width-4), width, i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

func postCard(p domain.Post, width int) string {
	title := lipgloss.NewStyle().Bold(true).Render(common.TruncateLines(common.FirstLine(p.Title), width, 1))
	meta := common.TimestampStyle.Render(fmt.Sprintf("%d pts | %d comments | c/%s | ", p.Score, p.CommentCount, p.Community)) +
		common.AuthorStyleFor(p.Author).Render("u/"+p.Author)
	return title + "\n" + common.ClampLinesToWidth(meta, width)
}

func renderCard(content string, width int, selected bool) string {
	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(content)
}

func (m Model) renderCommunities(rm nav.RenderModel) string {
	var b strings.Builder
	b.WriteString(common.TimestampStyle.Render("  Press '/' to type a community name. Leave it empty for the Front Page."))
	b.WriteString("\n")
	if len(rm.Rows) == 0 {
		b.WriteString(common.TimestampStyle.Render("  No communities listed."))
		return b.String()
	}
	width := m.cardWidth()
	start, end := m.visibleRange(len(rm.Rows))
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row, ok := rm.Rows[i].(nav.CommunityRow)
		if !ok {
			continue
		}
		c := row.Community
		line := common.CommunityStyle.Render(c.DisplayName())
		if c.Title != "" && !strings.EqualFold(c.Title, c.Name) {
			line += " " + common.ContentStyle.Render(c.Title)
		}
		line += common.TimestampStyle.Render(fmt.Sprintf(" · %d subscribers", c.Subscribers))
		cards = append(cards, renderCard(common.ClampLinesToWidth(line, width-4), width, i == m.cursor))
	}
	b.WriteString(strings.Join(cards, "\n"))
	return b.String()
}

func (m Model) renderPostHeader(width int) string {
	p := m.nav.State().Post
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Width(width).Render(p.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("c/%s | u/%s | %d pts | %d comments", p.Community, p.Author, p.Score, p.CommentCount)
	if !p.Published.IsZero() {
		meta += " | " + p.Published.Local().Format("Jan 02, 2006 15:04")
	}
	b.WriteString(common.TimestampStyle.Render(meta))
	if p.URL != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#8AADF4")).Render(p.URL))
	}
	if body := strings.TrimSpace(p.Body); body != "" {
		b.WriteString("\n\n")
		b.WriteString(common.ContentStyle.Render(common.TruncateLines(body, width, bodyPreview)))
	}
	return b.String()
}

// detailSize splits the post-detail screen below the header between the
// comment tree and the detail pane.
func (m Model) detailSize() (treeW, paneW, paneH int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	treeW = max(w/2, 20)
	paneW = max(w-treeW-3, 10)
	header := m.renderPostHeader(max(w-2, 20))
	paneH = max(h-chromeLines-lipgloss.Height(header)-1, 3)
	return treeW, paneW, paneH
}

func (m Model) renderDetail() string {
	treeW, _, paneH := m.detailSize()
	header := m.renderPostHeader(max(m.width-2, 20))

	left := lipgloss.NewStyle().Width(treeW).Height(paneH).Render(m.tree.view(treeW))
	right := common.PaneStyle.Height(paneH).Render(m.detail.View())
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderCommentDetail(n *domain.CommentNode, width int) string {
	if n == nil {
		return common.TimestampStyle.Render("Select a comment to view full text")
	}
	c := n.Comment
	head := common.AuthorStyleFor(c.Author).Render("u/"+c.Author) + " " +
		common.TimestampStyle.Render(fmt.Sprintf("(%d pts)", c.Score))
	if !c.Published.IsZero() {
		head += " " + common.TimestampStyle.Render(c.Published.Local().Format("Jan 02 15:04"))
	}
	body := strings.TrimSpace(c.Content)
	switch {
	case c.Removed:
		body = common.MutedStyle.Render("[removed by moderator]")
	case c.Deleted:
		body = common.MutedStyle.Render("[deleted by author]")
	default:
		body = common.ContentStyle.Width(max(width, 10)).Render(body)
	}
	replies := ""
	if len(n.Children) > 0 {
		replies = "\n\n" + common.TimestampStyle.Render(fmt.Sprintf("%d replies", domain.CountNodes(n.Children)))
	}
	return head + "\n\n" + body + replies
}

func (m Model) renderStatus(rm nav.RenderModel) string {
	status := rm.Status
	if rm.Loading {
		status = m.spinner.View() + " " + status
	}
	if m.notice != "" {
		status += " | " + m.notice
	}
	wrapWidth := max(m.width-2, 16)
	hints := strings.Join(hintsFor(rm.Screen), " • ")
	return common.StatusBarStyle.Width(wrapWidth).Render("  " + status + "\n  " + hints)
}

func hintsFor(screen nav.Screen) []string {
	switch screen {
	case nav.ScreenPostDetail:
		return []string{"j/k: navigate", "enter/space: collapse/expand", "v: pager", "o: link", "esc: back", "?: all keys"}
	case nav.ScreenCommunities:
		return []string{"j/k: move", "enter: open", "/: enter name", "esc: back", "h: home", "?: all keys"}
	default:
		return []string{"j/k: move", "enter: open", "c: communities", "h: home", "r: refresh", "q: quit", "?: all keys"}
	}
}

func (m Model) renderKeyDialog() string {
	var core []string
	switch m.nav.State().Screen {
	case nav.ScreenPostDetail:
		core = []string{
			"enter / space   collapse/expand selected thread",
			"d / u           scroll comment pane",
			"v               view comment in $PAGER",
			"o               open post link in browser",
			"r               reload comments",
			"esc             back to posts",
		}
	case nav.ScreenCommunities:
		core = []string{
			"enter           open selected community",
			"/               type a community name",
			"r               reload directory",
			"esc             back to posts",
		}
	default:
		core = []string{
			"enter           open post and comments",
			"o               open post link in browser",
			"c               browse communities",
			"r               reload posts",
		}
	}
	lines := append([]string{"j/k or up/down  move focus"}, core...)
	lines = append(lines,
		"h               front page",
		"q / ctrl+c      quit",
	)

	body := "Keyboard Shortcuts\n\n" + strings.Join(lines, "\n") + "\n\nPress ?, esc, q, or enter to close."
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#00BC8C")).
		Padding(1, 2).
		Margin(1, 2).
		Render(body)
}
