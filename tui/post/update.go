package post

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"blogtty/domain"
	"blogtty/thread"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CommentsLoadedMsg:
		return m.handleCommentsLoaded(msg)

	case CommentsErrorMsg:
		if msg.ReqSeq != m.reqSeq || msg.PostID != m.post.ID {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case StatusFetchedMsg:
		if msg.Err != nil {
			// Settle on the warm-start snapshot instead of spinning.
			if m.rec.Fail(msg.Req) {
				m.notice = "Couldn't load interaction state."
			}
			return m, nil
		}
		m.rec.Apply(msg.Req, msg.St)
		return m, nil

	case LikeResultMsg:
		m.rec.FinishToggleLike(msg.Liked, msg.LikeCount, msg.Err)
		if msg.Err != nil {
			m.notice = "Like failed; reverted."
		}
		return m, nil

	case SaveResultMsg:
		m.rec.FinishToggleSave(msg.Saved, msg.Err)
		if msg.Err != nil {
			m.notice = "Save failed; reverted."
		}
		return m, nil

	case AddOptimisticCommentMsg, UpdateOptimisticCommentMsg, CommentResultMsg, CommentDeletedMsg, CommentLikeResultMsg:
		return m.handleOptimisticMsg(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleCommentsLoaded(msg CommentsLoadedMsg) (Model, tea.Cmd) {
	if msg.ReqSeq != m.reqSeq || msg.PostID != m.post.ID {
		return m, nil
	}

	server := make(map[string]struct{}, len(msg.Comments))
	for _, c := range msg.Comments {
		server[c.ID] = struct{}{}
	}

	// Keep optimistic items the server doesn't know about yet; everything
	// else is replaced by the authoritative list.
	merged := msg.Comments
	for _, c := range m.flat {
		if _, ok := server[c.ID]; ok {
			continue
		}
		switch m.status[c.ID] {
		case statusPendingCreate, statusFailed:
			merged = append(merged, c)
		}
	}
	for id, st := range m.status {
		if st == statusPendingCreate || st == statusFailed {
			continue
		}
		delete(m.status, id)
		delete(m.oldText, id)
	}

	m.flat = merged
	m.loading = false
	m.err = nil
	m.rebuild()
	m.rec.SetCommentCount(len(m.flat))
	return m, nil
}

func (m Model) handleOptimisticMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AddOptimisticCommentMsg:
		if msg.ParentID != "" {
			if err := thread.ValidateParent(m.flat, msg.ParentID); err != nil {
				m.notice = "That comment is gone; reply not sent."
				return m, nil
			}
		}
		m.flat = append(m.flat, domain.Comment{
			ID:         msg.LocalID,
			PostID:     m.post.ID,
			ParentID:   msg.ParentID,
			Text:       msg.Text,
			AuthorID:   m.viewer.ID,
			AuthorName: m.viewer.Name(),
			CreatedAt:  time.Now(),
		})
		m.status[msg.LocalID] = statusPendingCreate
		m.rebuild()
		m.rec.SetCommentCount(len(m.flat))
		m.focusComment(msg.LocalID)
		return m, nil

	case UpdateOptimisticCommentMsg:
		prev, ok := m.commentByID(msg.ID)
		if !ok {
			return m, nil
		}
		out, err := thread.ApplyEdit(m.flat, msg.ID, msg.Text)
		if err != nil {
			m.notice = "Edit rejected."
			return m, nil
		}
		m.oldText[msg.ID] = prev.Text
		m.flat = out
		m.status[msg.ID] = statusPendingUpdate
		m.rebuild()
		return m, nil

	case CommentResultMsg:
		if msg.Err != nil {
			m.status[msg.LocalID] = statusFailed
			m.failures[msg.LocalID] = msg.Err
			if msg.IsEdit {
				if old, ok := m.oldText[msg.LocalID]; ok {
					if out, err := thread.ApplyEdit(m.flat, msg.LocalID, old); err == nil {
						m.flat = out
					}
					delete(m.oldText, msg.LocalID)
				}
			}
			m.rebuild()
			return m, nil
		}
		m.flat = thread.Replace(m.flat, msg.LocalID, msg.Comment)
		delete(m.status, msg.LocalID)
		delete(m.failures, msg.LocalID)
		delete(m.oldText, msg.LocalID)
		m.rebuild()
		m.rec.SetCommentCount(len(m.flat))
		return m, nil

	case CommentDeletedMsg:
		if msg.Err != nil {
			m.status[msg.ID] = statusFailed
			m.failures[msg.ID] = msg.Err
			return m, nil
		}
		ids := thread.CascadeIDs(m.flat, msg.ID)
		m.flat = thread.RemoveAll(m.flat, ids)
		for _, id := range ids {
			delete(m.status, id)
			delete(m.failures, id)
			delete(m.oldText, id)
		}
		m.rebuild()
		m.rec.SetCommentCount(len(m.flat))
		return m, nil

	case CommentLikeResultMsg:
		if msg.Err != nil {
			// Rollback by toggling the optimistic flip again.
			if c, ok := m.commentByID(msg.ID); ok {
				if set, err := thread.ToggleLike(c.LikedBy, m.viewer.ID, c.AuthorID); err == nil {
					m.setLikedBy(msg.ID, set)
				}
			}
			m.notice = "Like failed; reverted."
			m.rebuild()
			return m, nil
		}
		m.setLikedBy(msg.ID, msg.LikedBy)
		m.rebuild()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			c, ok := m.selectedComment()
			if !ok {
				return m, nil
			}
			m.markCascadePending(c.ID)
			return m, m.deleteComment(c.ID)
		case "n", "esc":
			m.confirmDelete = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows) {
			m.cursor++
		}
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.reqSeq++
		m.loading = true
		m.err = nil
		snap, _ := m.rec.Snapshot()
		req := m.rec.EnterPost(m.post.ID, snap)
		return m, tea.Batch(m.fetchComments(m.reqSeq), FetchStatusCmd(m.rec, req))

	case key.Matches(msg, m.keys.Sort):
		m.sort = m.sort.Next()
		m.rebuild()
		sortLabel := m.sort.String()
		return m, func() tea.Msg { return SortChangedMsg{Sort: sortLabel} }

	case key.Matches(msg, m.keys.Like):
		if m.cursor == 0 {
			return m.togglePostLikeKey()
		}
		return m.toggleCommentLikeKey()

	case key.Matches(msg, m.keys.Save):
		return m.togglePostSaveKey()

	case key.Matches(msg, m.keys.Comment), key.Matches(msg, m.keys.Inline):
		if m.viewer.ID == "" {
			m.notice = "Sign in to comment."
			return m, nil
		}
		inline := key.Matches(msg, m.keys.Inline)
		return m, func() tea.Msg { return ComposeMsg{UseInline: inline} }

	case key.Matches(msg, m.keys.Reply):
		c, ok := m.selectedComment()
		if !ok {
			return m, nil
		}
		if m.viewer.ID == "" {
			m.notice = "Sign in to reply."
			return m, nil
		}
		if strings.HasPrefix(c.ID, "local-") {
			m.notice = "Wait for the comment to finish posting."
			return m, nil
		}
		compose := ComposeMsg{ParentID: c.ID, ParentAuthor: c.AuthorName}
		return m, func() tea.Msg { return compose }

	case key.Matches(msg, m.keys.Edit):
		c, ok := m.selectedComment()
		if !ok || !m.canModify(c) {
			return m, nil
		}
		if m.status[c.ID] == statusPendingCreate || m.status[c.ID] == statusPendingDelete {
			return m, nil
		}
		compose := ComposeMsg{CommentID: c.ID, Initial: c.Text, IsEdit: true}
		return m, func() tea.Msg { return compose }

	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selectedComment()
		if !ok || !m.canModify(c) {
			return m, nil
		}
		if strings.HasPrefix(c.ID, "local-") {
			return m, nil
		}
		m.confirmDelete = true
		return m, nil
	}

	return m, nil
}

func (m Model) togglePostLikeKey() (Model, tea.Cmd) {
	_, err := m.rec.BeginToggleLike()
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		m.notice = "Sign in to like posts."
		return m, nil
	case errors.Is(err, domain.ErrToggleInFlight):
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}
	return m, m.togglePostLike()
}

func (m Model) togglePostSaveKey() (Model, tea.Cmd) {
	_, err := m.rec.BeginToggleSave()
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		m.notice = "Sign in to save posts."
		return m, nil
	case errors.Is(err, domain.ErrToggleInFlight):
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}
	return m, m.togglePostSave()
}

func (m Model) toggleCommentLikeKey() (Model, tea.Cmd) {
	c, ok := m.selectedComment()
	if !ok {
		return m, nil
	}
	if m.viewer.ID == "" {
		m.notice = "Sign in to like comments."
		return m, nil
	}
	if strings.HasPrefix(c.ID, "local-") || m.status[c.ID] == statusPendingDelete {
		return m, nil
	}

	set, err := thread.ToggleLike(c.LikedBy, m.viewer.ID, c.AuthorID)
	if errors.Is(err, domain.ErrSelfLike) {
		m.notice = "You can't like your own comment."
		return m, nil
	}
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.setLikedBy(c.ID, set)
	m.rebuild()
	return m, m.toggleCommentLike(c.ID)
}

func (m Model) commentByID(id string) (domain.Comment, bool) {
	for _, c := range m.flat {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Comment{}, false
}

func (m *Model) setLikedBy(id string, set []string) {
	out := make([]domain.Comment, len(m.flat))
	copy(out, m.flat)
	for i := range out {
		if out[i].ID == id {
			out[i].LikedBy = set
			break
		}
	}
	m.flat = out
}

func (m *Model) focusComment(id string) {
	for i, r := range m.rows {
		if r.comment.ID == id {
			m.cursor = i + 1
			return
		}
	}
}
