package post

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blogtty/domain"
	"blogtty/interact"
	"blogtty/thread"
)

var errBoom = errors.New("boom")

type fakeComments struct {
	likedBy   []string
	likeErr   error
	deleteErr error
}

func (f *fakeComments) List(context.Context, string) ([]domain.Comment, error) { return nil, nil }
func (f *fakeComments) Create(_ context.Context, postID, parentID, text string) (domain.Comment, error) {
	return domain.Comment{ID: "srv-1", PostID: postID, ParentID: parentID, Text: text}, nil
}
func (f *fakeComments) Edit(_ context.Context, id, text string) (domain.Comment, error) {
	return domain.Comment{ID: id, Text: text}, nil
}
func (f *fakeComments) Delete(context.Context, string) error { return f.deleteErr }
func (f *fakeComments) ToggleLike(context.Context, string) ([]string, error) {
	return f.likedBy, f.likeErr
}

type fakeInteractions struct{}

func (fakeInteractions) LikeStatus(context.Context, string) (bool, int, error) {
	return false, 0, nil
}
func (fakeInteractions) CommentCount(context.Context, string) (int, error) { return 0, nil }
func (fakeInteractions) SavedPosts(context.Context) ([]string, error)      { return nil, nil }
func (fakeInteractions) ToggleLike(context.Context, string) (bool, int, error) {
	return true, 1, nil
}
func (fakeInteractions) ToggleSave(context.Context, string) (bool, error) { return true, nil }

func makeComment(id, parentID, authorID string, createdAt time.Time, likedBy ...string) domain.Comment {
	return domain.Comment{
		ID:         id,
		PostID:     "p1",
		ParentID:   parentID,
		Text:       "text " + id,
		AuthorID:   authorID,
		AuthorName: "Author " + id,
		CreatedAt:  createdAt,
		LikedBy:    likedBy,
	}
}

func newTestModel(t *testing.T, viewer domain.Profile) (Model, *fakeComments) {
	t.Helper()
	fc := &fakeComments{}
	rec := interact.New(fakeInteractions{}, nil)
	if viewer.ID != "" {
		rec.SetViewer(viewer.ID)
	}
	p := domain.Post{ID: "p1", Title: "Hello", LikeCount: 3, CommentCount: 2}
	m := New(fc, fakeInteractions{}, rec, p, viewer, thread.Newest)
	m.Init() // Targets the reconciler; fetch cmds are not executed here.
	return m, fc
}

func TestUpdate_StaleCommentsLoaded_Ignored(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{})
	m.reqSeq = 4

	base := time.Now()
	updated, _ := m.Update(CommentsLoadedMsg{
		PostID:   "p1",
		Comments: []domain.Comment{makeComment("c1", "", "a1", base)},
		ReqSeq:   3,
	})
	if len(updated.flat) != 0 {
		t.Fatalf("stale comment response should not mutate state")
	}
	if !updated.loading {
		t.Fatalf("stale comment response should not clear loading")
	}

	updated, _ = m.Update(CommentsLoadedMsg{
		PostID:   "other-post",
		Comments: []domain.Comment{makeComment("c1", "", "a1", base)},
		ReqSeq:   4,
	})
	if len(updated.flat) != 0 {
		t.Fatalf("response for another post should be dropped")
	}
}

func TestUpdate_CommentsLoaded_BuildsTreeAndSyncsCount(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{})
	base := time.Now()

	m, _ = m.Update(CommentsLoadedMsg{
		PostID: "p1",
		Comments: []domain.Comment{
			makeComment("c1", "", "a1", base),
			makeComment("c2", "c1", "a2", base.Add(time.Minute)),
			makeComment("orphan", "ghost", "a3", base),
		},
		ReqSeq: m.reqSeq,
	})

	if m.loading {
		t.Fatalf("loading should clear")
	}
	if len(m.rows) != 2 {
		t.Fatalf("expected 2 visible rows (orphan dropped), got %d", len(m.rows))
	}
	if m.rows[1].depth != 1 {
		t.Fatalf("reply should render at depth 1, got %d", m.rows[1].depth)
	}
	snap, _ := m.rec.Snapshot()
	if snap.CommentCount != 3 {
		t.Fatalf("comment count should track the flat list, got %d", snap.CommentCount)
	}
}

func TestUpdate_OptimisticCreateThenReconcile(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{ID: "u1", Username: "alice"})
	base := time.Now()
	m, _ = m.Update(CommentsLoadedMsg{
		PostID:   "p1",
		Comments: []domain.Comment{makeComment("c1", "", "a1", base)},
		ReqSeq:   m.reqSeq,
	})

	m, _ = m.Update(AddOptimisticCommentMsg{LocalID: "local-x", ParentID: "c1", Text: "hi"})
	if m.status["local-x"] != statusPendingCreate {
		t.Fatalf("optimistic comment should be pending")
	}
	if len(m.rows) != 2 {
		t.Fatalf("optimistic reply should appear in the tree")
	}

	server := makeComment("srv-9", "c1", "u1", base.Add(time.Minute))
	m, _ = m.Update(CommentResultMsg{LocalID: "local-x", Comment: server})
	if _, ok := m.commentByID("local-x"); ok {
		t.Fatalf("local id should be replaced by the server record")
	}
	if _, ok := m.commentByID("srv-9"); !ok {
		t.Fatalf("server record missing after reconcile")
	}
	if _, pending := m.status["local-x"]; pending {
		t.Fatalf("status entry should be cleared")
	}
}

func TestUpdate_CreateFailureMarksFailed(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{ID: "u1"})
	m, _ = m.Update(CommentsLoadedMsg{PostID: "p1", ReqSeq: m.reqSeq})

	m, _ = m.Update(AddOptimisticCommentMsg{LocalID: "local-x", Text: "hi"})
	m, _ = m.Update(CommentResultMsg{LocalID: "local-x", Err: errBoom})

	if m.status["local-x"] != statusFailed {
		t.Fatalf("failed create should be marked")
	}
	if _, ok := m.commentByID("local-x"); !ok {
		t.Fatalf("failed comment should stay visible for retry context")
	}
}

func TestUpdate_EditFailureRollsBackText(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{ID: "u1"})
	base := time.Now()
	m, _ = m.Update(CommentsLoadedMsg{
		PostID:   "p1",
		Comments: []domain.Comment{makeComment("c1", "", "u1", base)},
		ReqSeq:   m.reqSeq,
	})

	m, _ = m.Update(UpdateOptimisticCommentMsg{ID: "c1", Text: "edited"})
	if c, _ := m.commentByID("c1"); c.Text != "edited" {
		t.Fatalf("optimistic edit should apply immediately")
	}

	m, _ = m.Update(CommentResultMsg{LocalID: "c1", IsEdit: true, Err: errBoom})
	if c, _ := m.commentByID("c1"); c.Text != "text c1" {
		t.Fatalf("failed edit should roll back text, got %q", c.Text)
	}
	if m.status["c1"] != statusFailed {
		t.Fatalf("failed edit should be marked")
	}
}

func TestUpdate_DeleteCascadesToReplies(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{ID: "u1"})
	base := time.Now()
	m, _ = m.Update(CommentsLoadedMsg{
		PostID: "p1",
		Comments: []domain.Comment{
			makeComment("c1", "", "u1", base),
			makeComment("c2", "c1", "a2", base),
			makeComment("c3", "c2", "a3", base),
			makeComment("other", "", "a4", base),
		},
		ReqSeq: m.reqSeq,
	})

	m, _ = m.Update(CommentDeletedMsg{ID: "c1"})
	if len(m.flat) != 1 || m.flat[0].ID != "other" {
		t.Fatalf("delete should remove the whole subtree, got %d comments", len(m.flat))
	}
	snap, _ := m.rec.Snapshot()
	if snap.CommentCount != 1 {
		t.Fatalf("comment count should shrink with the cascade, got %d", snap.CommentCount)
	}
}

func TestUpdate_CommentLikeRollsBackOnError(t *testing.T) {
	viewer := domain.Profile{ID: "u1"}
	m, fc := newTestModel(t, viewer)
	fc.likeErr = errBoom
	base := time.Now()
	m, _ = m.Update(CommentsLoadedMsg{
		PostID:   "p1",
		Comments: []domain.Comment{makeComment("c1", "", "a1", base)},
		ReqSeq:   m.reqSeq,
	})

	m.cursor = 1
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if c, _ := m.commentByID("c1"); !c.LikedByViewer("u1") {
		t.Fatalf("like should apply optimistically")
	}
	if cmd == nil {
		t.Fatalf("like should trigger a server call")
	}

	m, _ = m.Update(cmd().(CommentLikeResultMsg))
	if c, _ := m.commentByID("c1"); c.LikedByViewer("u1") {
		t.Fatalf("failed like should roll back")
	}
}

func TestUpdate_CommentLikeUsesAuthoritativeSet(t *testing.T) {
	m, fc := newTestModel(t, domain.Profile{ID: "u1"})
	fc.likedBy = []string{"u1", "u2"}
	base := time.Now()
	m, _ = m.Update(CommentsLoadedMsg{
		PostID:   "p1",
		Comments: []domain.Comment{makeComment("c1", "", "a1", base, "u2")},
		ReqSeq:   m.reqSeq,
	})

	m.cursor = 1
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m, _ = m.Update(cmd().(CommentLikeResultMsg))

	c, _ := m.commentByID("c1")
	if c.LikeCount() != 2 || !c.LikedByViewer("u1") {
		t.Fatalf("server's liked set should win, got %v", c.LikedBy)
	}
}

func TestUpdate_SelfLikeRejectedLocally(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{ID: "u1"})
	base := time.Now()
	m, _ = m.Update(CommentsLoadedMsg{
		PostID:   "p1",
		Comments: []domain.Comment{makeComment("c1", "", "u1", base)},
		ReqSeq:   m.reqSeq,
	})

	m.cursor = 1
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if cmd != nil {
		t.Fatalf("self-like must not reach the network")
	}
	if m.notice == "" {
		t.Fatalf("self-like should surface a notice")
	}
	if c, _ := m.commentByID("c1"); c.LikeCount() != 0 {
		t.Fatalf("self-like must not change the liked set")
	}
}

func TestUpdate_PostLikeRequiresViewer(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{})
	m.loading = false
	m.cursor = 0

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if cmd != nil {
		t.Fatalf("anonymous like must not fire a request")
	}
	if m.notice == "" {
		t.Fatalf("anonymous like should prompt for sign-in")
	}
}

func TestUpdate_StatusFetchError_SettlesOnWarmState(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{ID: "u1"})
	req := m.rec.EnterPost("p1", interact.Snapshot{LikeCount: 3, CommentCount: 2})

	m, _ = m.Update(StatusFetchedMsg{Req: req, Err: errBoom})

	snap, phase := m.rec.Snapshot()
	if phase != interact.Ready {
		t.Fatalf("failed status fetch should settle the reconciler, phase = %v", phase)
	}
	if snap.LikeCount != 3 || snap.CommentCount != 2 {
		t.Fatalf("warm counters lost: %+v", snap)
	}
	if m.notice == "" {
		t.Fatalf("expected a notice about the failed fetch")
	}

	// A failure from a superseded request changes nothing and stays quiet.
	m2, _ := newTestModel(t, domain.Profile{ID: "u1"})
	stale := m2.rec.EnterPost("p1", interact.Snapshot{})
	m2.rec.EnterPost("p2", interact.Snapshot{})
	m2, _ = m2.Update(StatusFetchedMsg{Req: stale, Err: errBoom})
	if _, phase := m2.rec.Snapshot(); phase != interact.Loading {
		t.Fatalf("stale failure must not settle the new post, phase = %v", phase)
	}
	if m2.notice != "" {
		t.Fatalf("stale failure should not surface a notice, got %q", m2.notice)
	}
}

func TestUpdate_SortKeyCyclesAndEmits(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{})
	m.loading = false

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if m.sort != thread.Oldest {
		t.Fatalf("sort should cycle newest -> oldest, got %v", m.sort)
	}
	if cmd == nil {
		t.Fatalf("sort change should emit a persistence msg")
	}
	if msg, ok := cmd().(SortChangedMsg); !ok || msg.Sort != "oldest" {
		t.Fatalf("expected SortChangedMsg{oldest}, got %#v", cmd())
	}
}

func TestUpdate_EscEmitsClose(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc should emit a close msg")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Fatalf("expected CloseMsg, got %T", cmd())
	}
}

func TestUpdate_MostLikedSortOrdersRoots(t *testing.T) {
	m, _ := newTestModel(t, domain.Profile{})
	base := time.Now()
	m.sort = thread.MostLiked
	m, _ = m.Update(CommentsLoadedMsg{
		PostID: "p1",
		Comments: []domain.Comment{
			makeComment("old-popular", "", "a1", base.Add(-time.Hour), "u1", "u2"),
			makeComment("new-quiet", "", "a2", base),
		},
		ReqSeq: m.reqSeq,
	})

	if m.rows[0].comment.ID != "old-popular" {
		t.Fatalf("most liked sort should lead with the popular root, got %q", m.rows[0].comment.ID)
	}
}
