package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"blogtty/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	Text      string // Empty if cancelled.
	ParentID  string // Reply target; empty for top-level comments.
	CommentID string // Set when editing an existing comment.
	IsEdit    bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the comment composer.
type Model struct {
	mode         mode
	editor       *editor.EnvEditor
	parentID     string
	parentAuthor string
	commentID    string
	content      string // Initial content when editing.
	isEdit       bool
	status       string
	textarea     textarea.Model // Only used in inline mode.
	tmpPath      string         // Temp file path for editor mode.
}

// NewEditor creates a composer that opens $EDITOR via tea.Exec. parentID
// is empty for top-level comments.
func NewEditor(ed *editor.EnvEditor, parentID, parentAuthor string) Model {
	return Model{
		mode:         editorMode,
		editor:       ed,
		parentID:     parentID,
		parentAuthor: parentAuthor,
		status:       "Opening editor...",
	}
}

// NewEditorForEdit creates a composer that edits an existing comment in
// $EDITOR.
func NewEditorForEdit(ed *editor.EnvEditor, commentID, content string) Model {
	return Model{
		mode:      editorMode,
		editor:    ed,
		commentID: commentID,
		content:   content,
		isEdit:    true,
		status:    "Opening editor...",
	}
}

// NewInline creates a composer with an inline Bubble Tea textarea.
func NewInline(parentID, parentAuthor string) Model {
	ta := newTextarea("")
	if parentAuthor != "" {
		ta.Placeholder = "Reply to " + parentAuthor + "..."
	}
	return Model{
		mode:         inlineMode,
		parentID:     parentID,
		parentAuthor: parentAuthor,
		textarea:     ta,
	}
}

// NewInlineForEdit creates a composer that edits an existing comment
// inline.
func NewInlineForEdit(commentID, content string) Model {
	return Model{
		mode:      inlineMode,
		commentID: commentID,
		content:   content,
		isEdit:    true,
		textarea:  newTextarea(content),
	}
}

func newTextarea(content string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = 2000
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.SetValue(content)
	ta.Focus()
	return ta
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.content, m.parentAuthor)
	if err != nil {
		return func() tea.Msg {
			return m.doneMsg("", fmt.Errorf("preparing editor: %w", err))
		}
	}
	m.tmpPath = tmpPath

	// tea.ExecProcess suspends Bubble Tea, runs the command with full terminal
	// control, then resumes Bubble Tea and delivers the callback message.
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(m.doneMsg("", fmt.Errorf("editor: %w", msg.err)))
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(m.doneMsg("", err))
		}

		if content == "" || content == m.content {
			return m, done(m.doneMsg("", nil)) // Cancel.
		}
		return m, done(m.doneMsg(content, nil))

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(m.doneMsg("", nil)) // Cancel.

		case "ctrl+d":
			content := m.textarea.Value()
			if content == "" || content == m.content {
				return m, done(m.doneMsg("", nil))
			}
			return m, done(m.doneMsg(content, nil))
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	// Pass through any remaining messages to textarea in inline mode.
	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) doneMsg(text string, err error) DoneMsg {
	return DoneMsg{
		Text:      text,
		ParentID:  m.parentID,
		CommentID: m.commentID,
		IsEdit:    m.isEdit,
		Err:       err,
	}
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
