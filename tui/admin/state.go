package admin

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"blogtty/app"
	"blogtty/domain"
	"blogtty/infra/editor"
	"blogtty/tui/common"
)

// --- Messages ---

// StatsLoadedMsg carries the dashboard summary.
type StatsLoadedMsg struct {
	Stats domain.DashboardStats
	Err   error
}

// PostsLoadedMsg carries the full post list, drafts included.
type PostsLoadedMsg struct {
	Posts []domain.Post
	Err   error
}

// PendingLoadedMsg carries the comments held for moderation.
type PendingLoadedMsg struct {
	Comments []domain.Comment
	Err      error
}

// TaxonomyLoadedMsg carries categories and tags for the taxonomy tab.
type TaxonomyLoadedMsg struct {
	Categories []domain.Category
	Tags       []domain.Tag
	Err        error
}

// SettingsLoadedMsg carries the site settings.
type SettingsLoadedMsg struct {
	Settings domain.Settings
	Err      error
}

// ActionResultMsg reports a mutation (approve, remove, delete, publish,
// create) so the active tab can reload.
type ActionResultMsg struct {
	Action string
	Err    error
}

// PostSavedMsg reports a post create or update.
type PostSavedMsg struct {
	Post domain.Post
	Err  error
}

// SettingsSavedMsg reports the settings update.
type SettingsSavedMsg struct {
	Settings domain.Settings
	Err      error
}

// CloseMsg asks the root model to leave the admin screens.
type CloseMsg struct{}

// postEditorFinishedMsg is sent after the external editor exits.
type postEditorFinishedMsg struct {
	tmpPath string
	postID  string // Empty for a new post.
	err     error
}

// --- Tabs ---

type tab int

const (
	tabDashboard tab = iota
	tabPosts
	tabModeration
	tabTaxonomy
	tabSettings
)

var tabLabels = []string{"Dashboard", "Posts", "Moderation", "Taxonomy", "Settings"}

type taxKind int

const (
	taxCategory taxKind = iota
	taxTag
)

// --- Model ---

// Model holds the state for the admin screens.
type Model struct {
	admin    app.AdminService
	taxonomy app.TaxonomyService
	editor   *editor.EnvEditor

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int

	tab     tab
	loading bool
	err     error
	notice  string

	stats domain.DashboardStats

	posts             []domain.Post
	postCursor        int
	confirmPostDelete bool

	pending       []domain.Comment
	pendingCursor int

	categories []domain.Category
	tags       []domain.Tag
	taxCursor  int
	taxInput   bool
	taxFor     taxKind
	taxBuffer  string

	settingsForm    *huh.Form
	settingsActive  bool
	siteTitle       *string
	siteDescription *string
	commentsEnabled *bool
	pageSize        *string
}

// New creates the admin model.
func New(adminSvc app.AdminService, taxonomy app.TaxonomyService, ed *editor.EnvEditor) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	return Model{
		admin:    adminSvc,
		taxonomy: taxonomy,
		editor:   ed,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		loading:  true,
	}
}

// Init loads the dashboard.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStats(), m.spinner.Tick)
}

// Update handles messages for the admin screens.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Busy reports whether a text input or form currently owns the keyboard.
func (m Model) Busy() bool { return m.taxInput || m.settingsActive }

func (m *Model) switchTab(t tab) tea.Cmd {
	m.tab = t
	m.err = nil
	m.notice = ""
	m.loading = true
	m.confirmPostDelete = false
	m.taxInput = false
	m.settingsActive = false
	switch t {
	case tabDashboard:
		return m.fetchStats()
	case tabPosts:
		return m.fetchPosts()
	case tabModeration:
		return m.fetchPending()
	case tabTaxonomy:
		return m.fetchTaxonomy()
	case tabSettings:
		return m.fetchSettings()
	}
	return nil
}

func (m *Model) reloadTab() tea.Cmd {
	return m.switchTab(m.tab)
}
