package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case PostsLoadedMsg, PostsErrorMsg, PostsPageLoadedMsg, PostsPageErrorMsg:
		return m.handleLoadingMsg(msg)
	case CategoriesLoadedMsg, TagsLoadedMsg:
		return m.handlePickerMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	return m, nil
}

func (m Model) handleLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.currentQueryKey() {
			return m, nil
		}
		m.items = msg.Posts
		m.loading = false
		m.loadingMore = false
		m.err = nil
		m.notice = ""
		m.page = 1
		// No page-size knowledge here: an empty follow-up page marks the
		// end instead.
		m.hasMore = m.source != SourceSaved && msg.RawCount > 0
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		m.ensureCursorVisible()
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.currentQueryKey() {
			return m, nil
		}
		m.loading = false
		m.loadingMore = false
		m.err = msg.Err
		return m, nil

	case PostsPageLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.currentQueryKey() {
			return m, nil
		}
		m.loadingMore = false
		m.err = nil
		if msg.RawCount == 0 {
			m.hasMore = false
			if len(m.items) > 0 {
				m.notice = "End of the feed."
			}
			return m, nil
		}
		existing := make(map[string]struct{}, len(m.items))
		for _, p := range m.items {
			existing[p.ID] = struct{}{}
		}
		added := 0
		for _, p := range msg.Posts {
			if _, ok := existing[p.ID]; ok {
				continue
			}
			m.items = append(m.items, p)
			added++
		}
		m.page++
		if added == 0 {
			m.hasMore = false
			m.notice = "End of the feed."
		} else {
			m.notice = ""
		}
		return m, nil

	case PostsPageErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.QueryKey != m.currentQueryKey() {
			return m, nil
		}
		m.loadingMore = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handlePickerMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CategoriesLoadedMsg:
		if !m.pickerOpen || m.pickerFor != pickerCategories {
			return m, nil
		}
		if msg.Err != nil {
			m.pickerErr = msg.Err
			return m, nil
		}
		items := make([]pickerItem, 0, len(msg.Categories))
		for _, c := range msg.Categories {
			items = append(items, pickerItem{Label: c.Name, Slug: c.Slug, Count: c.PostCount})
		}
		m.pickerItems = items
		m.pickerCursor = 0
		m.pickerErr = nil
		return m, nil

	case TagsLoadedMsg:
		if !m.pickerOpen || m.pickerFor != pickerTags {
			return m, nil
		}
		if msg.Err != nil {
			m.pickerErr = msg.Err
			return m, nil
		}
		items := make([]pickerItem, 0, len(msg.Tags))
		for _, t := range msg.Tags {
			items = append(items, pickerItem{Label: t.Name, Slug: t.Slug, Count: t.PostCount})
		}
		m.pickerItems = items
		m.pickerCursor = 0
		m.pickerErr = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searchInput {
		return m.handleSearchInputKey(msg)
	}
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		m.reqSeq++
		return m, m.fetchPosts(m.reqSeq)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
		if m.hasMore && !m.loadingMore && m.cursor >= len(m.items)-prefetchTrigger {
			m.loadingMore = true
			return m, m.fetchOlderPosts(m.reqSeq)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		p, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return OpenPostMsg{Post: p} }

	case key.Matches(msg, m.keys.Latest):
		if m.source == SourceLatest {
			return m, nil
		}
		m.source = SourceLatest
		m.prepareScopeChange()
		m.reqSeq++
		return m, tea.Batch(m.fetchPosts(m.reqSeq), m.emitPrefsChanged())

	case key.Matches(msg, m.keys.Saved):
		if m.source == SourceSaved {
			return m, nil
		}
		m.source = SourceSaved
		m.prepareScopeChange()
		m.reqSeq++
		return m, tea.Batch(m.fetchPosts(m.reqSeq), m.emitPrefsChanged())

	case key.Matches(msg, m.keys.Category):
		m.pickerOpen = true
		m.pickerFor = pickerCategories
		m.pickerItems = nil
		m.pickerErr = nil
		return m, m.fetchCategories()

	case key.Matches(msg, m.keys.Tag):
		m.pickerOpen = true
		m.pickerFor = pickerTags
		m.pickerItems = nil
		m.pickerErr = nil
		return m, m.fetchTags()

	case key.Matches(msg, m.keys.Search):
		m.searchInput = true
		m.searchBuffer = m.query
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput = false
		m.searchBuffer = ""
		return m, nil
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchBuffer)
		m.searchInput = false
		m.searchBuffer = ""
		if query == "" {
			return m, nil
		}
		m.source = SourceSearch
		m.query = query
		m.prepareScopeChange()
		m.reqSeq++
		return m, tea.Batch(m.fetchPosts(m.reqSeq), m.emitPrefsChanged())
	case tea.KeyBackspace:
		if len(m.searchBuffer) > 0 {
			runes := []rune(m.searchBuffer)
			m.searchBuffer = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.searchBuffer += " "
		return m, nil
	case tea.KeyRunes:
		m.searchBuffer += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.pickerOpen = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(m.pickerItems)-1 {
			m.pickerCursor++
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		if len(m.pickerItems) == 0 {
			return m, nil
		}
		choice := m.pickerItems[m.pickerCursor]
		kind := m.pickerFor
		m.pickerOpen = false
		if kind == pickerCategories {
			m.source = SourceCategory
			m.category = choice.Slug
		} else {
			m.source = SourceTag
			m.tag = choice.Slug
		}
		m.prepareScopeChange()
		m.reqSeq++
		return m, tea.Batch(m.fetchPosts(m.reqSeq), m.emitPrefsChanged())
	}
	return m, nil
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
