package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"blogtty/tui/common"
)

// View renders the active admin tab.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("✍ blogtty")
	crumb := common.TaglineStyle.Render(" > admin")
	b.WriteString(title + crumb + "\n")
	b.WriteString(m.renderTabs() + "\n\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("  %s Loading...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press R to retry.\n")
	default:
		switch m.tab {
		case tabDashboard:
			b.WriteString(m.renderDashboard())
		case tabPosts:
			b.WriteString(m.renderPosts())
		case tabModeration:
			b.WriteString(m.renderModeration())
		case tabTaxonomy:
			b.WriteString(m.renderTaxonomy())
		case tabSettings:
			b.WriteString(m.renderSettings())
		}
	}

	if m.taxInput {
		label := "new category"
		if m.taxFor == taxTag {
			label = "new tag"
		}
		b.WriteString("\n" + common.ConfirmStyle.Render("  "+label+": "+m.taxBuffer+"▌"))
	}
	if m.notice != "" {
		b.WriteString("\n" + common.MetadataStyle.Render("  "+m.notice))
	}
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(tabLabels))
	for i, label := range tabLabels {
		entry := fmt.Sprintf("%d:%s", i+1, label)
		if tab(i) == m.tab {
			parts = append(parts, common.SourceStyle.Render(entry))
		} else {
			parts = append(parts, common.MetadataStyle.Render(entry))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	st := m.stats

	b.WriteString(fmt.Sprintf("  %s %d    %s %d    %s %d    %s %d\n\n",
		common.MetadataStyle.Render("posts:"), st.Posts,
		common.MetadataStyle.Render("comments:"), st.Comments,
		common.MetadataStyle.Render("users:"), st.Users,
		common.MetadataStyle.Render("likes:"), st.Likes))

	if len(st.ViewsByDay) > 0 {
		views := make([]int, len(st.ViewsByDay))
		total := 0
		for i, d := range st.ViewsByDay {
			views[i] = d.Views
			total += d.Views
		}
		b.WriteString("  " + common.MetadataStyle.Render(fmt.Sprintf("views, last %d days (%d total)", len(views), total)) + "\n")
		b.WriteString("  " + common.SourceStyle.Render(common.Sparkline(views)) + "\n")
	}
	return b.String()
}

func (m Model) renderPosts() string {
	if len(m.posts) == 0 {
		return "  No posts yet. Press n to write one.\n"
	}
	var b strings.Builder
	for i, p := range m.posts {
		marker := "  "
		if i == m.postCursor {
			marker = common.SourceStyle.Render("> ")
		}
		state := common.SuccessStyle.Render("published")
		if !p.Published {
			state = common.ConfirmStyle.Render("draft")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s %s\n", marker,
			common.TitleStyle.Render(common.Truncate(p.Title, 50)),
			state,
			common.TimestampStyle.Render(p.CreatedAt.Format("Jan 02, 2006"))))
	}
	if m.confirmPostDelete {
		b.WriteString("\n" + common.ConfirmStyle.Render("  Delete this post? (y/n)"))
	}
	return b.String()
}

func (m Model) renderModeration() string {
	if len(m.pending) == 0 {
		return "  Nothing awaiting moderation.\n"
	}
	now := time.Now()
	var b strings.Builder
	for i, c := range m.pending {
		marker := "  "
		if i == m.pendingCursor {
			marker = common.SourceStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n    %s\n", marker,
			common.AuthorStyle.Render(c.AuthorName),
			common.TimestampStyle.Render(common.RelativeTime(c.CreatedAt, now)),
			common.ContentStyle.Render(common.Truncate(c.Text, 70))))
	}
	return b.String()
}

func (m Model) renderTaxonomy() string {
	var b strings.Builder
	b.WriteString("  " + lipgloss.NewStyle().Bold(true).Render("Categories") + "\n")
	for i, c := range m.categories {
		marker := "  "
		if i == m.taxCursor {
			marker = common.SourceStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("  %s%s (%d)\n", marker, c.Name, c.PostCount))
	}
	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Render("Tags") + "\n")
	for i, t := range m.tags {
		marker := "  "
		if len(m.categories)+i == m.taxCursor {
			marker = common.SourceStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("  %s#%s (%d)\n", marker, t.Name, t.PostCount))
	}
	return b.String()
}

func (m Model) renderSettings() string {
	if m.settingsForm == nil {
		return "  Loading settings...\n"
	}
	return m.settingsForm.View()
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.taxInput:
		items = []string{"enter: add", "esc: cancel"}
	case m.settingsActive:
		items = []string{"enter: next", "esc: back"}
	default:
		items = []string{"tab/1-5: switch"}
		switch m.tab {
		case tabPosts:
			items = append(items, "j/k: focus", "n: new", "e: edit", "p: publish/unpublish", "d: delete")
		case tabModeration:
			items = append(items, "j/k: focus", "a: approve", "x: remove")
		case tabTaxonomy:
			items = append(items, "j/k: focus", "a: add category", "A: add tag", "d: delete")
		}
		items = append(items, "R: refresh", "esc: back")
	}
	return "\n" + common.StatusBarStyle.Render("  "+strings.Join(items, " • "))
}
