package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blogtty/app"
	"blogtty/domain"
	"blogtty/thread"
	"blogtty/tui/compose"
	"blogtty/tui/feed"
	"blogtty/tui/login"
	"blogtty/tui/post"
)

// --- Stubs ---

type stubPosts struct{}

func (stubPosts) Latest(context.Context, int) ([]domain.Post, error)              { return nil, nil }
func (stubPosts) ByCategory(context.Context, string, int) ([]domain.Post, error)  { return nil, nil }
func (stubPosts) ByTag(context.Context, string, int) ([]domain.Post, error)       { return nil, nil }
func (stubPosts) Search(context.Context, string, int) ([]domain.Post, error)      { return nil, nil }
func (stubPosts) Get(_ context.Context, id string) (domain.Post, error) {
	return domain.Post{ID: id}, nil
}

type stubTaxonomy struct{}

func (stubTaxonomy) Categories(context.Context) ([]domain.Category, error) { return nil, nil }
func (stubTaxonomy) Tags(context.Context) ([]domain.Tag, error)            { return nil, nil }

type stubComments struct {
	created []string // texts passed to Create
}

func (s *stubComments) List(context.Context, string) ([]domain.Comment, error) { return nil, nil }
func (s *stubComments) Create(_ context.Context, postID, parentID, text string) (domain.Comment, error) {
	s.created = append(s.created, text)
	return domain.Comment{ID: "srv-1", PostID: postID, ParentID: parentID, Text: text, CreatedAt: time.Now()}, nil
}
func (s *stubComments) Edit(_ context.Context, id, text string) (domain.Comment, error) {
	return domain.Comment{ID: id, Text: text}, nil
}
func (s *stubComments) Delete(context.Context, string) error              { return nil }
func (s *stubComments) ToggleLike(context.Context, string) ([]string, error) { return nil, nil }

type stubInteractions struct{}

func (stubInteractions) LikeStatus(context.Context, string) (bool, int, error) { return false, 0, nil }
func (stubInteractions) CommentCount(context.Context, string) (int, error)     { return 0, nil }
func (stubInteractions) SavedPosts(context.Context) ([]string, error)          { return nil, nil }
func (stubInteractions) ToggleLike(context.Context, string) (bool, int, error) { return true, 1, nil }
func (stubInteractions) ToggleSave(context.Context, string) (bool, error)      { return true, nil }

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, username, _ string) (domain.Profile, error) {
	return domain.Profile{ID: "u1", Username: username}, nil
}
func (stubAuth) Logout(context.Context) error { return nil }
func (stubAuth) CurrentProfile(context.Context) (domain.Profile, error) {
	return domain.Profile{}, domain.ErrUnauthorized
}

type stubAdmin struct{}

func (stubAdmin) Stats(context.Context) (domain.DashboardStats, error)   { return domain.DashboardStats{}, nil }
func (stubAdmin) AllPosts(context.Context, int) ([]domain.Post, error)   { return nil, nil }
func (stubAdmin) CreatePost(context.Context, app.PostDraft) (domain.Post, error) {
	return domain.Post{}, nil
}
func (stubAdmin) UpdatePost(context.Context, string, app.PostDraft) (domain.Post, error) {
	return domain.Post{}, nil
}
func (stubAdmin) DeletePost(context.Context, string) error { return nil }
func (stubAdmin) SetPublished(context.Context, string, bool) (domain.Post, error) {
	return domain.Post{}, nil
}
func (stubAdmin) CreateCategory(context.Context, string) (domain.Category, error) {
	return domain.Category{}, nil
}
func (stubAdmin) DeleteCategory(context.Context, string) error { return nil }
func (stubAdmin) CreateTag(context.Context, string) (domain.Tag, error) {
	return domain.Tag{}, nil
}
func (stubAdmin) DeleteTag(context.Context, string) error                     { return nil }
func (stubAdmin) PendingComments(context.Context) ([]domain.Comment, error)   { return nil, nil }
func (stubAdmin) ApproveComment(context.Context, string) error                { return nil }
func (stubAdmin) RemoveComment(context.Context, string) error                 { return nil }
func (stubAdmin) Settings(context.Context) (domain.Settings, error)           { return domain.Settings{}, nil }
func (stubAdmin) UpdateSettings(_ context.Context, s domain.Settings) (domain.Settings, error) {
	return s, nil
}

type nullCache struct{}

func (nullCache) LikedPosts(string) ([]string, bool)    { return nil, false }
func (nullCache) SavedPosts(string) ([]string, bool)    { return nil, false }
func (nullCache) SetLikedPosts(string, []string) error  { return nil }
func (nullCache) SetSavedPosts(string, []string) error  { return nil }
func (nullCache) InvalidateViewer(string) error         { return nil }

func newTestApp(comments *stubComments) App {
	return NewApp(Deps{
		Posts:        stubPosts{},
		Taxonomy:     stubTaxonomy{},
		Comments:     comments,
		Interactions: stubInteractions{},
		Auth:         stubAuth{},
		Admin:        stubAdmin{},
		Cache:        nullCache{},
	})
}

func openPost(t *testing.T, a App) App {
	t.Helper()
	model, _ := a.Update(feed.OpenPostMsg{Post: domain.Post{ID: "p1", Title: "Hello"}})
	next := model.(App)
	if next.active != postView {
		t.Fatalf("expected post view, got %v", next.active)
	}
	return next
}

// --- Tests ---

func TestOpenAndClosePost(t *testing.T) {
	a := newTestApp(&stubComments{})
	a = openPost(t, a)
	if a.post.Post().ID != "p1" {
		t.Fatalf("post id = %q", a.post.Post().ID)
	}

	model, _ := a.Update(post.CloseMsg{})
	a = model.(App)
	if a.active != feedView {
		t.Fatalf("expected feed view after close, got %v", a.active)
	}
}

func TestComposeDoneCreatesLocalComment(t *testing.T) {
	comments := &stubComments{}
	a := newTestApp(comments)
	a = openPost(t, a)

	model, cmd := a.Update(compose.DoneMsg{Text: "nice post", ParentID: ""})
	a = model.(App)
	if a.active != postView {
		t.Fatalf("expected post view, got %v", a.active)
	}
	if cmd == nil {
		t.Fatal("expected a create command")
	}

	raw := cmd()
	msg, ok := raw.(post.CommentResultMsg)
	if !ok {
		t.Fatalf("expected CommentResultMsg, got %T", raw)
	}
	if !strings.HasPrefix(msg.LocalID, "local-") {
		t.Errorf("local id = %q", msg.LocalID)
	}
	if msg.Err != nil || msg.Comment.ID != "srv-1" {
		t.Errorf("result = %+v", msg)
	}
	if len(comments.created) != 1 || comments.created[0] != "nice post" {
		t.Errorf("created = %v", comments.created)
	}
}

func TestComposeCancelled(t *testing.T) {
	a := newTestApp(&stubComments{})
	a = openPost(t, a)

	model, cmd := a.Update(compose.DoneMsg{Text: ""})
	a = model.(App)
	if cmd != nil {
		t.Fatal("cancelled compose must not issue a command")
	}
	if a.status != "Cancelled." {
		t.Errorf("status = %q", a.status)
	}
}

func TestLoginDoneInstallsViewer(t *testing.T) {
	a := newTestApp(&stubComments{})
	a.active = loginView

	model, _ := a.Update(login.DoneMsg{Profile: domain.Profile{ID: "u1", Username: "ada"}})
	a = model.(App)
	if a.active != feedView {
		t.Fatalf("expected feed view, got %v", a.active)
	}
	if a.viewer.ID != "u1" {
		t.Errorf("viewer = %+v", a.viewer)
	}
	if !strings.Contains(a.status, "ada") {
		t.Errorf("status = %q", a.status)
	}
}

func TestAdminKeyRequiresAdminRole(t *testing.T) {
	a := newTestApp(&stubComments{})
	a.viewer = domain.Profile{ID: "u1", Role: domain.RoleReader}

	keyA := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'A'}}
	model, _ := a.Update(keyA)
	if model.(App).active != feedView {
		t.Fatal("reader must not reach the admin view")
	}

	a.viewer.Role = domain.RoleAdmin
	model, cmd := a.Update(keyA)
	if model.(App).active != adminView {
		t.Fatal("admin should reach the admin view")
	}
	if cmd == nil {
		t.Fatal("expected the admin init command")
	}
}

func TestParseSort(t *testing.T) {
	if got := parseSort("oldest"); got != thread.Oldest {
		t.Errorf("oldest: got %v", got)
	}
	if got := parseSort("most liked"); got != thread.MostLiked {
		t.Errorf("most liked: got %v", got)
	}
	if got := parseSort(""); got != thread.Newest {
		t.Errorf("default: got %v", got)
	}
}
