package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"blogtty/interact"
	"blogtty/tui/common"
)

// View renders the post detail: header card, body, then the comment tree.
func (m Model) View() string {
	width := m.width - 6
	if width < 50 {
		width = 50
	}
	if width > 90 {
		width = 90
	}

	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("✍ blogtty")
	crumb := common.TaglineStyle.Render(" > " + common.Truncate(m.post.Title, width-12))
	b.WriteString(title + crumb + "\n\n")

	b.WriteString(m.renderPostCard(width))
	b.WriteString(m.renderComments(width))

	if m.notice != "" {
		b.WriteString("\n" + common.ConfirmStyle.Render("  "+m.notice))
	}
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderPostCard(width int) string {
	snap, phase := m.rec.Snapshot()

	var card strings.Builder
	card.WriteString(common.TitleStyle.Render(m.post.Title) + "\n")
	card.WriteString(common.AuthorStyle.Render(m.post.AuthorName) + "  " +
		common.TimestampStyle.Render(m.post.CreatedAt.Format("Monday, Jan 02, 2006")) + "\n")
	if m.post.Category != "" || len(m.post.Tags) > 0 {
		scope := m.post.Category
		if len(m.post.Tags) > 0 {
			if scope != "" {
				scope += "  "
			}
			scope += "#" + strings.Join(m.post.Tags, " #")
		}
		card.WriteString(common.MetadataStyle.Render(scope) + "\n")
	}
	card.WriteString("\n")

	body := m.post.Body
	if body == "" {
		body = m.post.Summary
	}
	card.WriteString(common.ContentStyle.Width(width-6).Render(body) + "\n\n")

	card.WriteString(m.renderInteractionLine(snap, phase))

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#45475A")).
		Padding(1, 2).
		MarginLeft(2).
		Width(width)
	if m.cursor == 0 {
		style = style.BorderForeground(lipgloss.Color("#8AADF4"))
	}
	return style.Render(card.String()) + "\n"
}

func (m Model) renderInteractionLine(snap interact.Snapshot, phase interact.Phase) string {
	if phase != interact.Ready {
		return common.MetadataStyle.Render(m.spinner.View() + " syncing...")
	}

	likeIcon := "♡"
	likeStyle := common.MetadataStyle
	if snap.Liked {
		likeIcon = "♥"
		likeStyle = common.LikeActiveStyle
	}
	saveIcon := "○ save"
	saveStyle := common.MetadataStyle
	if snap.Saved {
		saveIcon = "● saved"
		saveStyle = common.SaveActiveStyle
	}
	return fmt.Sprintf("%s %d   %s   %s",
		likeStyle.Render(likeIcon), snap.LikeCount,
		saveStyle.Render(saveIcon),
		common.MetadataStyle.Render(fmt.Sprintf("✉ %d comments", snap.CommentCount)))
}

func (m Model) renderComments(width int) string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Underline(true).Render("Comments")
	sortLabel := common.MetadataStyle.Render(" (" + m.sort.String() + " first)")
	b.WriteString("\n  " + header + sortLabel + "\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("\n  %s Loading comments...\n", m.spinner.View()))
		return b.String()
	case m.err != nil:
		b.WriteString("\n" + common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n  Press R to retry.\n")
		return b.String()
	case len(m.rows) == 0:
		b.WriteString("\n  No comments yet.\n")
		return b.String()
	}

	now := time.Now()
	for i, r := range m.rows {
		b.WriteString("\n" + m.renderCommentRow(r, i+1 == m.cursor, width, now) + "\n")
	}
	return b.String()
}

func (m Model) renderCommentRow(r row, selected bool, width int, now time.Time) string {
	c := r.comment
	indent := strings.Repeat("  ", r.depth)

	author := common.AuthorStyle.Render(c.AuthorName)
	if m.viewer.ID != "" && c.AuthorID == m.viewer.ID {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	timestamp := common.TimestampStyle.Render(common.RelativeTime(c.CreatedAt, now))

	statusText := ""
	switch m.status[c.ID] {
	case statusPendingCreate:
		statusText = common.ConfirmStyle.Render(" (posting...)")
	case statusPendingUpdate:
		statusText = common.ConfirmStyle.Render(" (updating...)")
	case statusPendingDelete:
		statusText = common.ConfirmStyle.Render(" (deleting...)")
	case statusFailed:
		statusText = common.ErrorStyle.Render(" (failed)")
	}

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")
	textWidth := width - 8 - len(indent)
	var body strings.Builder
	for _, line := range strings.Split(lipgloss.NewStyle().Width(textWidth).Render(c.Text), "\n") {
		body.WriteString("  " + indent + indicator + common.ContentStyle.Render(line) + "\n")
	}

	likeIcon := "♡"
	likeStyle := common.MetadataStyle
	if c.LikedByViewer(m.viewer.ID) {
		likeIcon = "♥"
		likeStyle = common.LikeActiveStyle
	}
	meta := fmt.Sprintf("%s %d", likeStyle.Render(likeIcon), c.LikeCount())

	out := fmt.Sprintf("  %s%s%s %s\n%s  %s%s",
		indent, author, statusText, timestamp,
		strings.TrimSuffix(body.String(), "\n"),
		indent, common.MetadataStyle.Render(meta))

	if selected {
		out = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Render(out)
		if m.confirmDelete {
			out += "\n" + common.ConfirmStyle.Render("  Delete this comment and its replies? (y/n)")
		}
		if err, ok := m.failures[c.ID]; ok {
			out += "\n" + common.ErrorStyle.Render(fmt.Sprintf("  ⚠ %v", err))
		}
	}
	return out
}

func (m Model) helpView() string {
	items := []string{"j/k: focus", "l: like", "b: save", "c/C: comment"}
	if c, ok := m.selectedComment(); ok {
		items = append(items, "r: reply")
		if m.canModify(c) {
			items = append(items, "e: edit", "d: delete")
		}
	}
	items = append(items, "o: sort", "R: refresh", "esc: back")
	return "\n" + common.StatusBarStyle.Render("  "+strings.Join(items, " • "))
}
