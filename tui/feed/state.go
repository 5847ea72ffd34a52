package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blogtty/app"
	"blogtty/domain"
	"blogtty/tui/common"
)

const prefetchTrigger = 3

// Source selects which post listing the feed shows.
type Source int

const (
	SourceLatest Source = iota
	SourceCategory
	SourceTag
	SourceSearch
	SourceSaved
)

// String returns the persisted form of the source.
func (s Source) String() string {
	switch s {
	case SourceCategory:
		return "category"
	case SourceTag:
		return "tag"
	case SourceSearch:
		return "search"
	case SourceSaved:
		return "saved"
	default:
		return "latest"
	}
}

// ParseSource maps a persisted source string back to a Source. Unknown
// values fall back to the latest feed.
func ParseSource(s string) Source {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "category":
		return SourceCategory
	case "tag":
		return SourceTag
	case "search":
		return SourceSearch
	case "saved":
		return SourceSaved
	default:
		return SourceLatest
	}
}

// Prefs is the slice of feed state restored from the previous session.
type Prefs struct {
	Source   string
	Category string
	Tag      string
	Query    string
}

// --- Messages ---

// PostsLoadedMsg is sent when the first page of a feed fetch completes.
type PostsLoadedMsg struct {
	Posts    []domain.Post
	QueryKey string
	ReqSeq   int
	RawCount int
}

// PostsErrorMsg is sent when the feed fetch fails.
type PostsErrorMsg struct {
	Err      error
	QueryKey string
	ReqSeq   int
}

// PostsPageLoadedMsg is sent when an older feed page is loaded.
type PostsPageLoadedMsg struct {
	Posts    []domain.Post
	QueryKey string
	ReqSeq   int
	RawCount int
}

// PostsPageErrorMsg is sent when loading an older feed page fails.
type PostsPageErrorMsg struct {
	Err      error
	QueryKey string
	ReqSeq   int
}

// CategoriesLoadedMsg carries the category picker items.
type CategoriesLoadedMsg struct {
	Categories []domain.Category
	Err        error
}

// TagsLoadedMsg carries the tag picker items.
type TagsLoadedMsg struct {
	Tags []domain.Tag
	Err  error
}

// OpenPostMsg is emitted for the root model when the user opens a post.
type OpenPostMsg struct {
	Post domain.Post
}

// PrefsChangedMsg is emitted for the root model whenever the feed scope
// changes, so it can persist the new state.
type PrefsChangedMsg struct {
	Source   string
	Category string
	Tag      string
	Query    string
}

type pickerKind int

const (
	pickerCategories pickerKind = iota
	pickerTags
)

type pickerItem struct {
	Label string
	Slug  string
	Count int
}

// --- Model ---

type modelServices struct {
	posts        app.PostService
	taxonomy     app.TaxonomyService
	interactions app.InteractionService
}

type feedState struct {
	source      Source
	category    string
	tag         string
	query       string
	items       []domain.Post
	cursor      int
	page        int
	loading     bool
	loadingMore bool
	hasMore     bool
	err         error
	notice      string
	reqSeq      int
}

type uiState struct {
	keys       common.KeyMap
	spinner    spinner.Model
	width      int
	height     int
	startIndex int // First visible item in the list (for scrolling)
}

type pickerState struct {
	pickerOpen   bool
	pickerFor    pickerKind
	pickerItems  []pickerItem
	pickerCursor int
	pickerErr    error
}

type searchState struct {
	searchInput  bool
	searchBuffer string
}

// Model holds the state for the post feed view.
type Model struct {
	modelServices
	feedState
	uiState
	pickerState
	searchState
}

// New creates a feed model with injected dependencies, restoring the scope
// from the previous session.
func New(posts app.PostService, taxonomy app.TaxonomyService, interactions app.InteractionService, prefs Prefs) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	source := ParseSource(prefs.Source)
	switch source {
	case SourceCategory:
		if strings.TrimSpace(prefs.Category) == "" {
			source = SourceLatest
		}
	case SourceTag:
		if strings.TrimSpace(prefs.Tag) == "" {
			source = SourceLatest
		}
	case SourceSearch:
		if strings.TrimSpace(prefs.Query) == "" {
			source = SourceLatest
		}
	}

	return Model{
		modelServices: modelServices{
			posts:        posts,
			taxonomy:     taxonomy,
			interactions: interactions,
		},
		feedState: feedState{
			source:   source,
			category: strings.TrimSpace(prefs.Category),
			tag:      strings.TrimSpace(prefs.Tag),
			query:    strings.TrimSpace(prefs.Query),
			page:     1,
			loading:  true,
			hasMore:  true,
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.reqSeq),
		m.spinner.Tick,
	)
}

// Refresh returns a Cmd that re-fetches the current feed scope.
func (m Model) Refresh() tea.Cmd {
	return m.fetchPosts(m.reqSeq)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Selected returns the currently highlighted post, if any.
func (m Model) Selected() (domain.Post, bool) {
	if len(m.items) == 0 || m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Post{}, false
	}
	return m.items[m.cursor], true
}

// Loading reports whether the feed is fetching its first page.
func (m Model) Loading() bool { return m.loading }

// Err returns the current fetch error, if any.
func (m Model) Err() error { return m.err }

// Busy reports whether a text input currently owns the keyboard, so the
// root model must not treat keys as global shortcuts.
func (m Model) Busy() bool { return m.searchInput || m.pickerOpen }

// currentQueryKey identifies the feed scope a response belongs to. A
// response tagged with a different key is stale and must be dropped.
func (m Model) currentQueryKey() string {
	switch m.source {
	case SourceCategory:
		return "category:" + m.category
	case SourceTag:
		return "tag:" + m.tag
	case SourceSearch:
		return "search:" + m.query
	case SourceSaved:
		return "saved"
	default:
		return "latest"
	}
}

func (m Model) sourceLabel() string {
	switch m.source {
	case SourceCategory:
		return "category: " + m.category
	case SourceTag:
		return "tag: " + m.tag
	case SourceSearch:
		return "search: " + m.query
	case SourceSaved:
		return "saved posts"
	default:
		return "latest"
	}
}

func (m *Model) prepareScopeChange() {
	m.items = nil
	m.cursor = 0
	m.startIndex = 0
	m.page = 1
	m.loading = true
	m.loadingMore = false
	m.hasMore = true
	m.err = nil
	m.notice = ""
}

func (m Model) emitPrefsChanged() tea.Cmd {
	msg := PrefsChangedMsg{
		Source:   m.source.String(),
		Category: m.category,
		Tag:      m.tag,
		Query:    m.query,
	}
	return func() tea.Msg { return msg }
}
