package post

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"blogtty/interact"
	"blogtty/thread"
)

// FetchStatusCmd runs the interaction status fetch for req and delivers
// the answer. The root model uses it too when switching viewers.
func FetchStatusCmd(rec *interact.Reconciler, req interact.Request) tea.Cmd {
	return func() tea.Msg {
		st, err := rec.Fetch(context.Background(), req)
		return StatusFetchedMsg{Req: req, St: st, Err: err}
	}
}

func (m Model) fetchComments(reqSeq int) tea.Cmd {
	comments := m.comments
	postID := m.post.ID
	return func() tea.Msg {
		flat, err := comments.List(context.Background(), postID)
		if err != nil {
			return CommentsErrorMsg{PostID: postID, Err: err, ReqSeq: reqSeq}
		}
		return CommentsLoadedMsg{PostID: postID, Comments: flat, ReqSeq: reqSeq}
	}
}

func (m Model) togglePostLike() tea.Cmd {
	interactions := m.interactions
	postID := m.post.ID
	return func() tea.Msg {
		liked, count, err := interactions.ToggleLike(context.Background(), postID)
		return LikeResultMsg{Liked: liked, LikeCount: count, Err: err}
	}
}

func (m Model) togglePostSave() tea.Cmd {
	interactions := m.interactions
	postID := m.post.ID
	return func() tea.Msg {
		saved, err := interactions.ToggleSave(context.Background(), postID)
		return SaveResultMsg{Saved: saved, Err: err}
	}
}

func (m Model) toggleCommentLike(id string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		likedBy, err := comments.ToggleLike(context.Background(), id)
		return CommentLikeResultMsg{ID: id, LikedBy: likedBy, Err: err}
	}
}

func (m Model) deleteComment(id string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		err := comments.Delete(context.Background(), id)
		return CommentDeletedMsg{ID: id, Err: err}
	}
}

// markCascadePending flags the comment and its whole reply subtree as
// pending deletion so the view greys them out together.
func (m *Model) markCascadePending(id string) {
	for _, cid := range thread.CascadeIDs(m.flat, id) {
		m.status[cid] = statusPendingDelete
	}
}
