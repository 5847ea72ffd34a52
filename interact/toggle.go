package interact

import (
	"context"

	"blogtty/domain"
)

// BeginToggleLike applies the optimistic flip for the viewer's like flag
// and marks the mutation in flight. The shared counter is NOT touched;
// the server's answer is authoritative for counts, so there is nothing to
// roll back on failure. A second call while one is pending returns
// ErrToggleInFlight so a fast double-press cannot fire two mutations.
func (r *Reconciler) BeginToggleLike() (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.toggleAllowed(r.likeInFlight); err != nil {
		return r.snap, err
	}
	r.likeInFlight = true
	r.likeSeq = r.seq
	r.prevLiked = r.snap.Liked
	r.snap.Liked = !r.snap.Liked
	return r.snap, nil
}

// FinishToggleLike reconciles the server's answer. On success the returned
// flag and count replace the optimistic guess; on failure the flag rolls
// back to its pre-mutation value and the count stays untouched. A result
// for a toggle begun before the sequence moved on (Leave, a new post, a
// new viewer) is discarded; it belongs to state that is no longer mounted.
func (r *Reconciler) FinishToggleLike(liked bool, likeCount int, err error) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.likeSeq != r.seq {
		return r.snap
	}
	r.likeInFlight = false
	if err != nil {
		r.snap.Liked = r.prevLiked
		return r.snap
	}
	r.snap.Liked = liked
	r.snap.LikeCount = likeCount
	r.syncLikedCacheLocked(liked)
	return r.snap
}

// BeginToggleSave is the save-flag counterpart of BeginToggleLike.
func (r *Reconciler) BeginToggleSave() (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.toggleAllowed(r.saveInFlight); err != nil {
		return r.snap, err
	}
	r.saveInFlight = true
	r.saveSeq = r.seq
	r.prevSaved = r.snap.Saved
	r.snap.Saved = !r.snap.Saved
	return r.snap, nil
}

// FinishToggleSave reconciles the server's answer for the save flag. Like
// FinishToggleLike, a result from before the sequence moved on is dropped.
func (r *Reconciler) FinishToggleSave(saved bool, err error) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveSeq != r.seq {
		return r.snap
	}
	r.saveInFlight = false
	if err != nil {
		r.snap.Saved = r.prevSaved
		return r.snap
	}
	r.snap.Saved = saved
	r.syncSavedCacheLocked(saved)
	return r.snap
}

// ToggleLike runs the full optimistic round-trip synchronously. UI callers
// use the Begin/Finish halves with a background command instead.
func (r *Reconciler) ToggleLike(ctx context.Context) (Snapshot, error) {
	if _, err := r.BeginToggleLike(); err != nil {
		return r.mustSnapshot(), err
	}
	r.mu.Lock()
	postID := r.postID
	r.mu.Unlock()

	liked, count, err := r.svc.ToggleLike(ctx, postID)
	snap := r.FinishToggleLike(liked, count, err)
	return snap, err
}

// ToggleSave runs the full optimistic save round-trip synchronously.
func (r *Reconciler) ToggleSave(ctx context.Context) (Snapshot, error) {
	if _, err := r.BeginToggleSave(); err != nil {
		return r.mustSnapshot(), err
	}
	r.mu.Lock()
	postID := r.postID
	r.mu.Unlock()

	saved, err := r.svc.ToggleSave(ctx, postID)
	snap := r.FinishToggleSave(saved, err)
	return snap, err
}

// PostID returns the post the reconciler currently targets.
func (r *Reconciler) PostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.postID
}

func (r *Reconciler) toggleAllowed(inFlight bool) error {
	if r.viewerID == "" {
		return domain.ErrUnauthorized
	}
	if r.postID == "" {
		return domain.ErrNotFound
	}
	if inFlight {
		return domain.ErrToggleInFlight
	}
	return nil
}

func (r *Reconciler) mustSnapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func (r *Reconciler) syncLikedCacheLocked(liked bool) {
	if r.cache == nil || r.viewerID == "" {
		return
	}
	ids, _ := r.cache.LikedPosts(r.viewerID)
	_ = r.cache.SetLikedPosts(r.viewerID, updateMembership(ids, r.postID, liked))
}

func (r *Reconciler) syncSavedCacheLocked(saved bool) {
	if r.cache == nil || r.viewerID == "" {
		return
	}
	ids, _ := r.cache.SavedPosts(r.viewerID)
	_ = r.cache.SetSavedPosts(r.viewerID, updateMembership(ids, r.postID, saved))
}

func updateMembership(ids []string, id string, present bool) []string {
	out := make([]string, 0, len(ids)+1)
	for _, v := range ids {
		if v == id {
			continue
		}
		out = append(out, v)
	}
	if present {
		out = append(out, id)
	}
	return out
}
