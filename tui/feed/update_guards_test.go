package feed

import (
	"testing"
	"time"

	"blogtty/domain"
)

func TestUpdate_StalePostsLoaded_IgnoredByReqSeq(t *testing.T) {
	m := newTestModel()
	m.loading = true
	m.items = []domain.Post{makePost("existing", time.Now())}
	m.reqSeq = 5

	updated, cmd := m.Update(PostsLoadedMsg{
		Posts:    []domain.Post{makePost("new", time.Now())},
		QueryKey: m.currentQueryKey(),
		RawCount: 1,
		ReqSeq:   4,
	})
	if cmd != nil {
		t.Fatalf("expected nil cmd for stale response")
	}
	if len(updated.items) != 1 || updated.items[0].ID != "existing" {
		t.Fatalf("stale response should not mutate feed")
	}
	if !updated.loading {
		t.Fatalf("stale response should not clear loading state")
	}
}

func TestUpdate_StalePostsLoaded_IgnoredByQueryKey(t *testing.T) {
	m := newTestModel()
	m.loading = true
	m.reqSeq = 2
	m.items = []domain.Post{makePost("existing", time.Now())}

	updated, _ := m.Update(PostsLoadedMsg{
		Posts:    []domain.Post{makePost("new", time.Now())},
		QueryKey: "tag:some-other-tag",
		RawCount: 1,
		ReqSeq:   2,
	})
	if len(updated.items) != 1 || updated.items[0].ID != "existing" {
		t.Fatalf("stale query response should not mutate feed")
	}
	if !updated.loading {
		t.Fatalf("stale query response should not clear loading state")
	}
}

func TestUpdate_StalePostsPageLoaded_Ignored(t *testing.T) {
	m := newTestModel()
	m.loadingMore = true
	m.reqSeq = 9
	m.items = []domain.Post{makePost("existing", time.Now())}

	updated, _ := m.Update(PostsPageLoadedMsg{
		Posts:    []domain.Post{makePost("older", time.Now().Add(-time.Minute))},
		QueryKey: m.currentQueryKey(),
		RawCount: 1,
		ReqSeq:   8,
	})
	if len(updated.items) != 1 || updated.items[0].ID != "existing" {
		t.Fatalf("stale page response should not append")
	}
	if !updated.loadingMore {
		t.Fatalf("stale page response should not change loadingMore")
	}
}

func TestUpdate_StalePostsError_Ignored(t *testing.T) {
	m := newTestModel()
	m.loading = true
	m.reqSeq = 3

	updated, _ := m.Update(PostsErrorMsg{
		Err:      errBoom,
		QueryKey: m.currentQueryKey(),
		ReqSeq:   2,
	})
	if updated.err != nil {
		t.Fatalf("stale error should not surface: %v", updated.err)
	}
	if !updated.loading {
		t.Fatalf("stale error should not clear loading state")
	}
}
