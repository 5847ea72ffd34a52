package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"blogtty/app"
	"blogtty/domain"
	"blogtty/infra/config"
	"blogtty/infra/editor"
	"blogtty/interact"
	"blogtty/thread"
	"blogtty/tui/admin"
	"blogtty/tui/common"
	"blogtty/tui/compose"
	"blogtty/tui/feed"
	"blogtty/tui/login"
	"blogtty/tui/post"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts        app.PostService
	Taxonomy     app.TaxonomyService
	Comments     app.CommentService
	Interactions app.InteractionService
	Auth         app.AuthService
	Admin        app.AdminService
	Editor       *editor.EnvEditor
	Cache        interact.Cache
	StatePath    string
	State        config.UIState
}

type activeView int

const (
	feedView activeView = iota
	postView
	composeView
	loginView
	adminView
)

// App is the root Bubble Tea model. It routes between sub-views and owns
// the viewer identity and the interaction reconciler.
type App struct {
	deps   Deps
	active activeView

	feed    feed.Model
	post    post.Model
	compose compose.Model
	login   login.Model
	admin   admin.Model

	rec    *interact.Reconciler
	viewer domain.Profile
	sort   thread.SortOrder
	state  config.UIState

	keys   common.KeyMap
	status string // Transient status message (e.g. "Signed in.")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: feedView,
		feed: feed.New(deps.Posts, deps.Taxonomy, deps.Interactions, feed.Prefs{
			Source:   deps.State.FeedSource,
			Category: deps.State.Category,
			Tag:      deps.State.Tag,
			Query:    deps.State.Query,
		}),
		rec:   interact.New(deps.Interactions, deps.Cache),
		sort:  parseSort(deps.State.CommentSort),
		state: deps.State,
		keys:  common.DefaultKeyMap(),
	}
}

func parseSort(s string) thread.SortOrder {
	switch s {
	case "oldest":
		return thread.Oldest
	case "most liked":
		return thread.MostLiked
	default:
		return thread.Newest
	}
}

type profileMsg struct {
	profile domain.Profile
}

type loggedOutMsg struct {
	err error
}

// Init starts the feed fetch and resolves the stored token to a profile.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.feed.Init(),
		a.resolveProfile(),
	)
}

func (a App) resolveProfile() tea.Cmd {
	auth := a.deps.Auth
	return func() tea.Msg {
		profile, err := auth.CurrentProfile(context.Background())
		if err != nil {
			return profileMsg{} // Anonymous session.
		}
		return profileMsg{profile: profile}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.active == feedView && !a.feed.Busy() {
			if model, cmd, handled := a.handleGlobalKey(msg); handled {
				return model, cmd
			}
		}

	case profileMsg:
		return a.installViewer(msg.profile, "")

	case loggedOutMsg:
		if msg.err != nil {
			a.status = "Sign-out failed: " + msg.err.Error()
			return a, nil
		}
		return a.installViewer(domain.Profile{}, "Signed out.")

	case spinner.TickMsg:
		return a.forwardToActive(msg)

	// --- Feed events ---

	case feed.OpenPostMsg:
		a.active = postView
		a.status = ""
		a.post = post.New(a.deps.Comments, a.deps.Interactions, a.rec, msg.Post, a.viewer, a.sort)
		return a, a.post.Init()

	case feed.PrefsChangedMsg:
		a.state.FeedSource = msg.Source
		a.state.Category = msg.Category
		a.state.Tag = msg.Tag
		a.state.Query = msg.Query
		return a, a.saveState()

	// --- Post detail events ---

	case post.CloseMsg:
		a.rec.Leave()
		a.active = feedView
		return a, nil

	case post.SortChangedMsg:
		a.sort = parseSort(msg.Sort)
		a.state.CommentSort = msg.Sort
		return a, a.saveState()

	case post.ComposeMsg:
		return a.openComposer(msg)

	// --- Composer events ---

	case compose.DoneMsg:
		return a.handleComposeDone(msg)

	// --- Login events ---

	case login.DoneMsg:
		a.active = feedView
		return a.installViewer(msg.Profile, "Signed in as "+msg.Profile.Name()+".")

	case login.CancelledMsg:
		a.active = feedView
		return a, nil

	// --- Admin events ---

	case admin.CloseMsg:
		a.active = feedView
		return a, a.feed.Refresh()
	}

	return a.forwardToActive(msg)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.Login):
		if a.viewer.ID == "" {
			a.active = loginView
			a.status = ""
			a.login = login.New(a.deps.Auth)
			return a, a.login.Init(), true
		}
		return a, a.logout(), true

	case key.Matches(msg, a.keys.Admin):
		if !a.viewer.IsAdmin() {
			return a, nil, false
		}
		a.active = adminView
		a.status = ""
		a.admin = admin.New(a.deps.Admin, a.deps.Taxonomy, a.deps.Editor)
		return a, a.admin.Init(), true
	}
	return a, nil, false
}

func (a App) logout() tea.Cmd {
	auth := a.deps.Auth
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(context.Background())}
	}
}

// installViewer switches the viewer identity everywhere: the reconciler
// resets its viewer-owned flags (counters stay), the post view re-renders
// ownership badges, and a viewer-scoped status re-fetch goes out if a post
// is open.
func (a App) installViewer(profile domain.Profile, status string) (tea.Model, tea.Cmd) {
	a.viewer = profile
	if status != "" {
		a.status = status
	}
	req := a.rec.SetViewer(profile.ID)
	a.post = a.post.SetViewer(profile)

	if req.PostID != "" {
		return a, post.FetchStatusCmd(a.rec, req)
	}
	return a, nil
}

func (a App) openComposer(msg post.ComposeMsg) (tea.Model, tea.Cmd) {
	a.active = composeView
	a.status = ""
	switch {
	case msg.IsEdit && msg.UseInline:
		a.compose = compose.NewInlineForEdit(msg.CommentID, msg.Initial)
	case msg.IsEdit:
		a.compose = compose.NewEditorForEdit(a.deps.Editor, msg.CommentID, msg.Initial)
	case msg.UseInline:
		a.compose = compose.NewInline(msg.ParentID, msg.ParentAuthor)
	default:
		a.compose = compose.NewEditor(a.deps.Editor, msg.ParentID, msg.ParentAuthor)
	}
	return a, a.compose.Init()
}

func (a App) handleComposeDone(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = postView
	if msg.Err != nil {
		a.status = "Error: " + msg.Err.Error()
		return a, nil
	}
	if msg.Text == "" {
		a.status = "Cancelled."
		return a, nil
	}

	comments := a.deps.Comments
	postID := a.post.Post().ID

	if msg.IsEdit {
		a.post, _ = a.post.Update(post.UpdateOptimisticCommentMsg{ID: msg.CommentID, Text: msg.Text})
		a.status = "Updating..."
		return a, func() tea.Msg {
			c, err := comments.Edit(context.Background(), msg.CommentID, msg.Text)
			return post.CommentResultMsg{LocalID: msg.CommentID, Comment: c, IsEdit: true, Err: err}
		}
	}

	localID := "local-" + uuid.NewString()
	a.post, _ = a.post.Update(post.AddOptimisticCommentMsg{
		LocalID:  localID,
		ParentID: msg.ParentID,
		Text:     msg.Text,
	})
	a.status = "Posting..."
	return a, func() tea.Msg {
		c, err := comments.Create(context.Background(), postID, msg.ParentID, msg.Text)
		return post.CommentResultMsg{LocalID: localID, Comment: c, Err: err}
	}
}

func (a App) saveState() tea.Cmd {
	path := a.deps.StatePath
	st := a.state
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		_ = config.SaveUIState(path, st)
		return nil
	}
}

func (a App) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case postView:
		a.post, cmd = a.post.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case adminView:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

// View renders the active sub-model.
func (a App) View() string {
	var s string
	switch a.active {
	case feedView:
		s = a.feed.View()
	case postView:
		s = a.post.View()
	case composeView:
		s = a.compose.View()
	case loginView:
		s = a.login.View()
	case adminView:
		s = a.admin.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render("  " + a.status)
	}
	return s
}
