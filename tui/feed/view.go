package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"blogtty/tui/common"
)

// Each feed card is 4 content lines plus 2 border lines.
const cardHeight = 6

func (m Model) visibleCount() int {
	// Reserved height: header (~4), status bar (~2), bottom padding (~2).
	available := m.height - 8
	if available < cardHeight {
		return 1
	}
	return available / cardHeight
}

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("✍ blogtty")
	tagline := common.TaglineStyle.Render("<the blog, without the browser>")
	source := common.SourceStyle.Margin(0, 0, 1, 2).Render("» " + m.sourceLabel())

	b.WriteString(title + tagline + "\n")
	b.WriteString(source + "\n")

	if m.pickerOpen {
		b.WriteString(m.renderPicker())
		b.WriteString(m.helpView())
		return b.String()
	}

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press R to retry.\n")
	case len(m.items) == 0:
		b.WriteString("  Nothing here yet.\n")
	default:
		b.WriteString(m.renderList())
	}

	if m.loading && len(m.items) > 0 {
		b.WriteString(fmt.Sprintf("\n  %s Refreshing...\n", m.spinner.View()))
	}
	if m.loadingMore {
		b.WriteString(fmt.Sprintf("\n  %s Loading more...\n", m.spinner.View()))
	}
	if m.notice != "" {
		b.WriteString("\n" + common.MetadataStyle.Render("  "+m.notice))
	}
	if m.searchInput {
		b.WriteString("\n" + common.ConfirmStyle.Render("  search: "+m.searchBuffer+"▌"))
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderList() string {
	visible := m.visibleCount()
	start := m.startIndex
	if start < 0 {
		start = 0
	}
	if start >= len(m.items) {
		start = len(m.items) - 1
	}
	end := start + visible
	if end > len(m.items) {
		end = len(m.items)
	}

	width := m.width - 8
	if width < 40 {
		width = 40
	}
	if width > 90 {
		width = 90
	}

	now := time.Now()
	var b strings.Builder
	for i := start; i < end; i++ {
		p := m.items[i]

		title := common.TitleStyle.Render(common.Truncate(p.Title, width))
		author := common.AuthorStyle.Render(p.AuthorName)
		timestamp := common.TimestampStyle.Render(common.RelativeTime(p.CreatedAt, now))
		summary := common.ContentStyle.Render(common.Truncate(p.Summary, width))

		meta := fmt.Sprintf("♥ %d  ✉ %d  ◉ %d", p.LikeCount, p.CommentCount, p.ViewCount)
		if p.Category != "" {
			meta += "  [" + p.Category + "]"
		}
		if len(p.Tags) > 0 {
			meta += "  #" + strings.Join(p.Tags, " #")
		}

		card := fmt.Sprintf("%s\n%s  %s\n%s\n%s",
			title, author, timestamp, summary,
			common.MetadataStyle.Render(common.Truncate(meta, width)))

		if i == m.cursor {
			card = common.SelectedStyle.Width(width + 2).Render(card)
		} else {
			card = common.UnselectedStyle.Width(width + 2).Render(card)
		}
		b.WriteString(card + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderPicker() string {
	label := "Categories"
	if m.pickerFor == pickerTags {
		label = "Tags"
	}

	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Bold(true).Underline(true).Render(label) + "\n\n")

	switch {
	case m.pickerErr != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.pickerErr)) + "\n")
	case len(m.pickerItems) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
	default:
		for i, item := range m.pickerItems {
			line := fmt.Sprintf("%s (%d)", item.Label, item.Count)
			if i == m.pickerCursor {
				b.WriteString("  " + common.SourceStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("    " + common.ContentStyle.Render(line) + "\n")
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.pickerOpen:
		items = []string{"j/k: focus", "enter: select", "esc: cancel"}
	case m.searchInput:
		items = []string{"enter: search", "esc: cancel"}
	default:
		items = []string{
			"j/k: focus",
			"enter: open",
			"g: categories",
			"t: tags",
			"/: search",
			"B: saved",
			"L: latest",
			"R: refresh",
			"q: quit",
		}
	}
	return "\n" + common.StatusBarStyle.Render("  "+strings.Join(items, " • "))
}
