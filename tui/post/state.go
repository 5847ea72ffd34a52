package post

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blogtty/app"
	"blogtty/domain"
	"blogtty/interact"
	"blogtty/thread"
	"blogtty/tui/common"
)

// --- Messages ---

// CommentsLoadedMsg is sent when the comment list fetch completes.
type CommentsLoadedMsg struct {
	PostID   string
	Comments []domain.Comment
	ReqSeq   int
}

// CommentsErrorMsg is sent when the comment list fetch fails.
type CommentsErrorMsg struct {
	PostID string
	Err    error
	ReqSeq int
}

// StatusFetchedMsg carries the interaction status answer for a request.
type StatusFetchedMsg struct {
	Req interact.Request
	St  interact.Status
	Err error
}

// LikeResultMsg is the server's answer to a post like toggle.
type LikeResultMsg struct {
	Liked     bool
	LikeCount int
	Err       error
}

// SaveResultMsg is the server's answer to a post save toggle.
type SaveResultMsg struct {
	Saved bool
	Err   error
}

// ComposeMsg asks the root model to open the composer.
type ComposeMsg struct {
	ParentID     string // Empty for top-level comments.
	ParentAuthor string
	CommentID    string // Set when editing an existing comment.
	Initial      string
	IsEdit       bool
	UseInline    bool
}

// AddOptimisticCommentMsg inserts a local placeholder comment while the
// create request is in flight.
type AddOptimisticCommentMsg struct {
	LocalID  string
	ParentID string
	Text     string
}

// UpdateOptimisticCommentMsg applies an edit locally while the request is
// in flight.
type UpdateOptimisticCommentMsg struct {
	ID   string
	Text string
}

// CommentResultMsg reconciles a create or edit with the server's answer.
type CommentResultMsg struct {
	LocalID string
	Comment domain.Comment
	IsEdit  bool
	Err     error
}

// CommentDeletedMsg is sent after a comment deletion attempt.
type CommentDeletedMsg struct {
	ID  string
	Err error
}

// CommentLikeResultMsg carries the authoritative liked set after a comment
// like toggle.
type CommentLikeResultMsg struct {
	ID      string
	LikedBy []string
	Err     error
}

// SortChangedMsg is emitted for the root model so the sort order survives
// restarts.
type SortChangedMsg struct {
	Sort string
}

// CloseMsg asks the root model to return to the feed.
type CloseMsg struct{}

// --- Status ---

type itemStatus int

const (
	statusNormal itemStatus = iota
	statusPendingCreate
	statusPendingUpdate
	statusPendingDelete
	statusFailed
)

type row struct {
	comment domain.Comment
	depth   int
}

// --- Model ---

// Model holds the state for the post detail view: the post body, its
// comment tree, and the viewer's interaction state.
type Model struct {
	comments     app.CommentService
	interactions app.InteractionService
	rec          *interact.Reconciler

	keys    common.KeyMap
	spinner spinner.Model

	post   domain.Post
	viewer domain.Profile

	flat    []domain.Comment
	tree    []domain.CommentNode
	rows    []row
	sort    thread.SortOrder
	cursor  int // 0 for the post header, 1..len(rows) for comments.
	loading bool
	err     error
	notice  string
	reqSeq  int

	status   map[string]itemStatus
	failures map[string]error
	oldText  map[string]string // Pre-edit text, kept for rollback.

	confirmDelete bool
	width         int
	height        int
}

// New creates a detail model for the given post.
func New(comments app.CommentService, interactions app.InteractionService, rec *interact.Reconciler, p domain.Post, viewer domain.Profile, sort thread.SortOrder) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	return Model{
		comments:     comments,
		interactions: interactions,
		rec:          rec,
		keys:         common.DefaultKeyMap(),
		spinner:      s,
		post:         p,
		viewer:       viewer,
		sort:         sort,
		loading:      true,
		status:       make(map[string]itemStatus),
		failures:     make(map[string]error),
		oldText:      make(map[string]string),
	}
}

// Init targets the reconciler at this post and starts the comment and
// status fetches.
func (m Model) Init() tea.Cmd {
	req := m.rec.EnterPost(m.post.ID, interact.Snapshot{
		LikeCount:    m.post.LikeCount,
		CommentCount: m.post.CommentCount,
	})
	return tea.Batch(
		FetchStatusCmd(m.rec, req),
		m.fetchComments(m.reqSeq),
		m.spinner.Tick,
	)
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// SetViewer installs a new viewer identity after a sign-in or sign-out.
// The caller is responsible for the matching Reconciler.SetViewer call.
func (m Model) SetViewer(p domain.Profile) Model {
	m.viewer = p
	m.rebuild()
	return m
}

// Post returns the post this view shows.
func (m Model) Post() domain.Post { return m.post }

// Sort returns the active comment sort order.
func (m Model) Sort() thread.SortOrder { return m.sort }

// rebuild re-derives the tree and display rows from the flat list.
func (m *Model) rebuild() {
	m.tree = thread.BuildTree(m.flat, m.sort)
	m.rows = m.rows[:0]
	for _, n := range m.tree {
		m.appendRows(n, 0)
	}
	if m.cursor > len(m.rows) {
		m.cursor = len(m.rows)
	}
}

func (m *Model) appendRows(n domain.CommentNode, depth int) {
	m.rows = append(m.rows, row{comment: n.Comment, depth: depth})
	for _, child := range n.Children {
		m.appendRows(child, depth+1)
	}
}

func (m Model) selectedComment() (domain.Comment, bool) {
	if m.cursor < 1 || m.cursor > len(m.rows) {
		return domain.Comment{}, false
	}
	return m.rows[m.cursor-1].comment, true
}

func (m Model) canModify(c domain.Comment) bool {
	if m.viewer.ID == "" {
		return false
	}
	return c.AuthorID == m.viewer.ID || m.viewer.IsAdmin()
}
