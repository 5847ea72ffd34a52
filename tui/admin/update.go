package admin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"blogtty/domain"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.stats = msg.Stats
		return m, nil

	case PostsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.posts = msg.Posts
		if m.postCursor >= len(m.posts) {
			m.postCursor = 0
		}
		return m, nil

	case PendingLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.pending = msg.Comments
		if m.pendingCursor >= len(m.pending) {
			m.pendingCursor = 0
		}
		return m, nil

	case TaxonomyLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.categories = msg.Categories
		m.tags = msg.Tags
		if m.taxCursor >= len(m.categories)+len(m.tags) {
			m.taxCursor = 0
		}
		return m, nil

	case SettingsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.buildSettingsForm(msg.Settings)
		return m, m.settingsForm.Init()

	case ActionResultMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("%s failed: %v", msg.Action, msg.Err)
			return m, nil
		}
		m.notice = msg.Action + " done."
		return m, m.reloadTab()

	case PostSavedMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("saving post failed: %v", msg.Err)
			return m, nil
		}
		m.notice = "Post saved."
		return m, m.reloadTab()

	case SettingsSavedMsg:
		m.settingsActive = false
		if msg.Err != nil {
			m.notice = fmt.Sprintf("saving settings failed: %v", msg.Err)
			return m, nil
		}
		m.notice = "Settings saved."
		return m, m.switchTab(tabDashboard)

	case postEditorFinishedMsg:
		return m.handlePostEditorFinished(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.settingsActive && m.settingsForm != nil {
		return m.updateSettingsForm(msg)
	}
	return m, nil
}

func (m Model) handlePostEditorFinished(msg postEditorFinishedMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = fmt.Sprintf("editor: %v", msg.err)
		return m, nil
	}
	content, err := m.editor.ReadContent(msg.tmpPath)
	if err != nil {
		m.notice = fmt.Sprintf("reading draft: %v", err)
		return m, nil
	}
	if content == "" {
		m.notice = "Cancelled."
		return m, nil
	}
	draft, err := parseDraft(content)
	if err != nil {
		m.notice = "Draft needs a title and a body."
		return m, nil
	}
	m.notice = "Saving..."
	return m, m.savePost(msg.postID, draft)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.settingsActive && m.settingsForm != nil {
		if msg.Type == tea.KeyEsc {
			m.settingsActive = false
			return m, m.switchTab(tabDashboard)
		}
		return m.updateSettingsForm(msg)
	}

	if m.taxInput {
		return m.handleTaxInputKey(msg)
	}

	if m.confirmPostDelete {
		switch msg.String() {
		case "y":
			m.confirmPostDelete = false
			if m.postCursor < len(m.posts) {
				return m, m.deletePost(m.posts[m.postCursor].ID)
			}
			return m, nil
		case "n", "esc":
			m.confirmPostDelete = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyEsc:
		return m, func() tea.Msg { return CloseMsg{} }

	case msg.Type == tea.KeyTab:
		next := (m.tab + 1) % tab(len(tabLabels))
		return m, m.switchTab(next)

	case msg.String() >= "1" && msg.String() <= "5":
		n, _ := strconv.Atoi(msg.String())
		return m, m.switchTab(tab(n - 1))

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadTab()
	}

	switch m.tab {
	case tabPosts:
		return m.handlePostsKey(msg)
	case tabModeration:
		return m.handleModerationKey(msg)
	case tabTaxonomy:
		return m.handleTaxonomyKey(msg)
	}
	return m, nil
}

func (m Model) handlePostsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.postCursor > 0 {
			m.postCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.postCursor < len(m.posts)-1 {
			m.postCursor++
		}
	case msg.String() == "n":
		return m, m.launchPostEditor("", draftTemplate)
	case msg.String() == "e":
		if m.postCursor < len(m.posts) {
			p := m.posts[m.postCursor]
			return m, m.launchPostEditor(p.ID, renderDraft(p))
		}
	case msg.String() == "p":
		if m.postCursor < len(m.posts) {
			return m, m.togglePublished(m.posts[m.postCursor])
		}
	case key.Matches(msg, m.keys.Delete):
		if m.postCursor < len(m.posts) {
			m.confirmPostDelete = true
		}
	}
	return m, nil
}

func (m Model) handleModerationKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pendingCursor > 0 {
			m.pendingCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pendingCursor < len(m.pending)-1 {
			m.pendingCursor++
		}
	case msg.String() == "a":
		if m.pendingCursor < len(m.pending) {
			return m, m.approveComment(m.pending[m.pendingCursor].ID)
		}
	case msg.String() == "x":
		if m.pendingCursor < len(m.pending) {
			return m, m.removeComment(m.pending[m.pendingCursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleTaxonomyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	total := len(m.categories) + len(m.tags)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.taxCursor > 0 {
			m.taxCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.taxCursor < total-1 {
			m.taxCursor++
		}
	case msg.String() == "a":
		m.taxInput = true
		m.taxFor = taxCategory
		m.taxBuffer = ""
	case msg.String() == "A":
		m.taxInput = true
		m.taxFor = taxTag
		m.taxBuffer = ""
	case key.Matches(msg, m.keys.Delete):
		if m.taxCursor < len(m.categories) {
			return m, m.deleteCategory(m.categories[m.taxCursor].ID)
		}
		if idx := m.taxCursor - len(m.categories); idx >= 0 && idx < len(m.tags) {
			return m, m.deleteTag(m.tags[idx].ID)
		}
	}
	return m, nil
}

func (m Model) handleTaxInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.taxInput = false
		m.taxBuffer = ""
	case tea.KeyEnter:
		name := strings.TrimSpace(m.taxBuffer)
		m.taxInput = false
		m.taxBuffer = ""
		if name == "" {
			return m, nil
		}
		if m.taxFor == taxCategory {
			return m, m.createCategory(name)
		}
		return m, m.createTag(name)
	case tea.KeyBackspace:
		if len(m.taxBuffer) > 0 {
			runes := []rune(m.taxBuffer)
			m.taxBuffer = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.taxBuffer += " "
	case tea.KeyRunes:
		m.taxBuffer += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) buildSettingsForm(s domain.Settings) {
	m.siteTitle = &s.SiteTitle
	m.siteDescription = &s.SiteDescription
	m.commentsEnabled = &s.CommentsEnabled
	pageSize := strconv.Itoa(s.PageSize)
	m.pageSize = &pageSize

	m.settingsForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Site title").
				Value(m.siteTitle),
			huh.NewInput().
				Title("Site description").
				Value(m.siteDescription),
			huh.NewConfirm().
				Title("Comments enabled").
				Value(m.commentsEnabled),
			huh.NewInput().
				Title("Posts per page").
				Validate(validatePageSize).
				Value(m.pageSize),
		),
	)
	m.settingsActive = true
}

func validatePageSize(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 100 {
		return fmt.Errorf("must be a number between 1 and 100")
	}
	return nil
}

func (m Model) updateSettingsForm(msg tea.Msg) (Model, tea.Cmd) {
	f, cmd := m.settingsForm.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.settingsForm = form
	}

	switch m.settingsForm.State {
	case huh.StateAborted:
		m.settingsActive = false
		return m, m.switchTab(tabDashboard)
	case huh.StateCompleted:
		n, _ := strconv.Atoi(strings.TrimSpace(*m.pageSize))
		return m, m.saveSettings(domain.Settings{
			SiteTitle:       *m.siteTitle,
			SiteDescription: *m.siteDescription,
			CommentsEnabled: *m.commentsEnabled,
			PageSize:        n,
		})
	}
	return m, cmd
}
