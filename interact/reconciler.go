// Package interact reconciles per-post interaction state (liked, saved,
// like count, comment count) for the current viewer across three sources:
// server responses, the viewer-scoped local cache, and optimistic local
// mutations.
package interact

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"blogtty/domain"
)

// Phase tracks where the reconciler is in its fetch cycle.
type Phase int

const (
	Uninitialized Phase = iota
	Loading
	Ready
)

// Snapshot is the fully consistent interaction state for one post as seen
// by the current viewer. It is replaced whole, never patched field by
// field, so callers observe either the old state or the new one.
type Snapshot struct {
	Liked        bool
	LikeCount    int
	Saved        bool
	CommentCount int
}

// Service is the slice of the platform API the reconciler talks to. The
// viewer is implied by the bearer token on the underlying client.
type Service interface {
	LikeStatus(ctx context.Context, postID string) (liked bool, likeCount int, err error)
	CommentCount(ctx context.Context, postID string) (int, error)
	SavedPosts(ctx context.Context) ([]string, error)
	ToggleLike(ctx context.Context, postID string) (liked bool, likeCount int, err error)
	ToggleSave(ctx context.Context, postID string) (saved bool, err error)
}

// Cache persists the viewer's liked/saved post id lists between sessions
// with a TTL, replacing ad-hoc browser-local storage. Implementations are
// viewer-scoped; entries for one viewer never leak into another's session.
type Cache interface {
	LikedPosts(viewerID string) ([]string, bool)
	SavedPosts(viewerID string) ([]string, bool)
	SetLikedPosts(viewerID string, ids []string) error
	SetSavedPosts(viewerID string, ids []string) error
	InvalidateViewer(viewerID string) error
}

// Request tags an outgoing state fetch with the sequence and scope it was
// issued for. Apply discards the result if a newer request has superseded
// it: the winner is the last request issued, not the last response to
// arrive.
type Request struct {
	Seq             int
	PostID          string
	ViewerID        string
	RefreshCounters bool // False on viewer-only refreshes.
}

// Status is the server's answer to a Request.
type Status struct {
	Liked        bool
	LikeCount    int
	Saved        bool
	CommentCount int
}

// Reconciler owns the snapshot for the post currently in view. All methods
// are safe for concurrent use; in practice calls arrive from a single UI
// event loop with fetches running in background commands.
type Reconciler struct {
	svc   Service
	cache Cache

	mu           sync.Mutex
	phase        Phase
	seq          int
	postID       string
	viewerID     string
	snap         Snapshot
	likeInFlight bool
	saveInFlight bool
	likeSeq      int
	saveSeq      int
	prevLiked    bool
	prevSaved    bool
}

// New creates a reconciler. Cache may be nil (no warm start, no
// persistence).
func New(svc Service, cache Cache) *Reconciler {
	return &Reconciler{svc: svc, cache: cache}
}

// Snapshot returns the current state and phase.
func (r *Reconciler) Snapshot() (Snapshot, Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap, r.phase
}

// EnterPost targets a new post and returns the Request for the status
// fetch. Counters are reset to the post's values as known from the feed
// (pass zero if unknown); viewer booleans are warmed from the cache until
// the server answers.
func (r *Reconciler) EnterPost(postID string, known Snapshot) Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.postID = postID
	r.phase = Loading
	r.likeInFlight = false
	r.saveInFlight = false
	r.snap = known

	if r.cache != nil && r.viewerID != "" {
		if ids, ok := r.cache.LikedPosts(r.viewerID); ok {
			r.snap.Liked = contains(ids, postID)
		}
		if ids, ok := r.cache.SavedPosts(r.viewerID); ok {
			r.snap.Saved = contains(ids, postID)
		}
	}

	return Request{Seq: r.seq, PostID: postID, ViewerID: r.viewerID, RefreshCounters: true}
}

// SetViewer switches the active viewer identity. The viewer-owned booleans
// reset immediately; the shared counters are left alone; they are not
// owned by any viewer and are only ever replaced by fresh server data.
// The returned Request re-fetches just the viewer-scoped flags.
func (r *Reconciler) SetViewer(viewerID string) Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache != nil && r.viewerID != "" && r.viewerID != viewerID {
		_ = r.cache.InvalidateViewer(r.viewerID)
	}

	r.seq++
	r.viewerID = viewerID
	r.snap.Liked = false
	r.snap.Saved = false
	r.likeInFlight = false
	r.saveInFlight = false
	if r.postID != "" {
		r.phase = Loading
	}

	return Request{Seq: r.seq, PostID: r.postID, ViewerID: viewerID}
}

// Leave abandons the current post. Any in-flight response is discarded by
// the sequence bump, so nothing is applied to a view that is gone.
func (r *Reconciler) Leave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.postID = ""
	r.phase = Uninitialized
	r.snap = Snapshot{}
	r.likeInFlight = false
	r.saveInFlight = false
}

// Fetch performs the status lookups for req. Like status, comment count
// and saved status go out in parallel; saved status is skipped for
// anonymous viewers and comment count on viewer-only refreshes.
func (r *Reconciler) Fetch(ctx context.Context, req Request) (Status, error) {
	if req.PostID == "" {
		return Status{}, domain.ErrNotFound
	}

	var st Status
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		liked, count, err := r.svc.LikeStatus(ctx, req.PostID)
		if err != nil {
			return err
		}
		st.Liked = liked
		st.LikeCount = count
		return nil
	})

	if req.RefreshCounters {
		g.Go(func() error {
			count, err := r.svc.CommentCount(ctx, req.PostID)
			if err != nil {
				return err
			}
			st.CommentCount = count
			return nil
		})
	}

	if req.ViewerID != "" {
		g.Go(func() error {
			ids, err := r.svc.SavedPosts(ctx)
			if err != nil {
				return err
			}
			st.Saved = contains(ids, req.PostID)
			if r.cache != nil {
				_ = r.cache.SetSavedPosts(req.ViewerID, ids)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Status{}, err
	}
	return st, nil
}

// Apply installs a fetched status. It reports false, and changes nothing,
// when the request has been superseded by a newer one.
func (r *Reconciler) Apply(req Request, st Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.Seq != r.seq {
		return false // Stale response; a newer request owns the state.
	}

	snap := r.snap
	snap.Liked = st.Liked
	snap.LikeCount = st.LikeCount
	if req.ViewerID != "" {
		snap.Saved = st.Saved
	}
	if req.RefreshCounters {
		snap.CommentCount = st.CommentCount
	}
	r.snap = snap
	r.phase = Ready
	return true
}

// Fail resolves a failed status fetch. The warm-start snapshot (feed
// counters plus cached booleans) becomes the Ready state so the view stops
// waiting; a stale failure is ignored the same way a stale success is.
func (r *Reconciler) Fail(req Request) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.Seq != r.seq {
		return false
	}
	r.phase = Ready
	return true
}

// SetCommentCount replaces the comment counter with a value computed from
// a fresh comment list fetch (or an optimistic local adjustment).
func (r *Reconciler) SetCommentCount(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 {
		n = 0
	}
	r.snap.CommentCount = n
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
