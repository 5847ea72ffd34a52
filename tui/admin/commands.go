package admin

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"blogtty/app"
	"blogtty/domain"
)

func (m Model) fetchStats() tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		stats, err := admin.Stats(context.Background())
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

func (m Model) fetchPosts() tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		posts, err := admin.AllPosts(context.Background(), 1)
		return PostsLoadedMsg{Posts: posts, Err: err}
	}
}

func (m Model) fetchPending() tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		pending, err := admin.PendingComments(context.Background())
		return PendingLoadedMsg{Comments: pending, Err: err}
	}
}

func (m Model) fetchTaxonomy() tea.Cmd {
	taxonomy := m.taxonomy
	return func() tea.Msg {
		cats, err := taxonomy.Categories(context.Background())
		if err != nil {
			return TaxonomyLoadedMsg{Err: err}
		}
		tags, err := taxonomy.Tags(context.Background())
		if err != nil {
			return TaxonomyLoadedMsg{Err: err}
		}
		return TaxonomyLoadedMsg{Categories: cats, Tags: tags}
	}
}

func (m Model) fetchSettings() tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		settings, err := admin.Settings(context.Background())
		return SettingsLoadedMsg{Settings: settings, Err: err}
	}
}

func (m Model) approveComment(id string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return ActionResultMsg{Action: "approve", Err: admin.ApproveComment(context.Background(), id)}
	}
}

func (m Model) removeComment(id string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return ActionResultMsg{Action: "remove", Err: admin.RemoveComment(context.Background(), id)}
	}
}

func (m Model) deletePost(id string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return ActionResultMsg{Action: "delete post", Err: admin.DeletePost(context.Background(), id)}
	}
}

func (m Model) togglePublished(p domain.Post) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		post, err := admin.SetPublished(context.Background(), p.ID, !p.Published)
		return PostSavedMsg{Post: post, Err: err}
	}
}

func (m Model) createCategory(name string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		_, err := admin.CreateCategory(context.Background(), name)
		return ActionResultMsg{Action: "create category", Err: err}
	}
}

func (m Model) createTag(name string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		_, err := admin.CreateTag(context.Background(), name)
		return ActionResultMsg{Action: "create tag", Err: err}
	}
}

func (m Model) deleteCategory(id string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return ActionResultMsg{Action: "delete category", Err: admin.DeleteCategory(context.Background(), id)}
	}
}

func (m Model) deleteTag(id string) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		return ActionResultMsg{Action: "delete tag", Err: admin.DeleteTag(context.Background(), id)}
	}
}

func (m Model) savePost(postID string, draft app.PostDraft) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		var (
			post domain.Post
			err  error
		)
		if postID == "" {
			post, err = admin.CreatePost(context.Background(), draft)
		} else {
			post, err = admin.UpdatePost(context.Background(), postID, draft)
		}
		return PostSavedMsg{Post: post, Err: err}
	}
}

func (m Model) saveSettings(s domain.Settings) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		saved, err := admin.UpdateSettings(context.Background(), s)
		return SettingsSavedMsg{Settings: saved, Err: err}
	}
}

// draftTemplate is what a new post buffer starts with. The first line is
// the title; "Category:" and "Tags:" lines are optional front matter; the
// rest is the body.
const draftTemplate = `Untitled post
Category:
Tags:

`

// renderDraft turns a post back into the editable buffer format.
func renderDraft(p domain.Post) string {
	return fmt.Sprintf("%s\nCategory: %s\nTags: %s\n\n%s",
		p.Title, p.Category, strings.Join(p.Tags, ", "), p.Body)
}

// parseDraft reads the buffer format back into a draft. The title is the
// first non-empty line; Category/Tags front-matter lines are consumed if
// present immediately after it.
func parseDraft(text string) (app.PostDraft, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var draft app.PostDraft

	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) {
		return draft, domain.ErrEmptyPost
	}
	draft.Title = strings.TrimSpace(lines[i])
	i++

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if after, ok := strings.CutPrefix(line, "Category:"); ok {
			draft.Category = strings.TrimSpace(after)
			i++
			continue
		}
		if after, ok := strings.CutPrefix(line, "Tags:"); ok {
			for _, tag := range strings.Split(after, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					draft.Tags = append(draft.Tags, tag)
				}
			}
			i++
			continue
		}
		break
	}

	draft.Body = strings.TrimSpace(strings.Join(lines[i:], "\n"))
	if draft.Body == "" {
		return draft, domain.ErrEmptyPost
	}
	draft.Summary = summarize(draft.Body)
	return draft, nil
}

// summarize derives a feed summary from the first paragraph of the body.
func summarize(body string) string {
	para := body
	if idx := strings.Index(body, "\n\n"); idx > 0 {
		para = body[:idx]
	}
	para = strings.ReplaceAll(para, "\n", " ")
	if len(para) > 200 {
		para = para[:197] + "..."
	}
	return para
}

func (m *Model) launchPostEditor(postID, content string) tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(content, "")
	if err != nil {
		m.notice = "Couldn't open the editor."
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return postEditorFinishedMsg{tmpPath: tmpPath, postID: postID, err: err}
	})
}
