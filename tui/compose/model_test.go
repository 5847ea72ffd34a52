package compose

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInline_SubmitCarriesReplyTarget(t *testing.T) {
	m := NewInline("c9", "Alice")
	m.textarea.SetValue("hello there")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatalf("expected a done command")
	}
	msg, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg, got %T", cmd())
	}
	if msg.Text != "hello there" || msg.ParentID != "c9" || msg.IsEdit {
		t.Fatalf("unexpected DoneMsg: %#v", msg)
	}
}

func TestInline_EscCancels(t *testing.T) {
	m := NewInline("", "")
	m.textarea.SetValue("typed but abandoned")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg := cmd().(DoneMsg)
	if msg.Text != "" {
		t.Fatalf("cancel should deliver an empty text, got %q", msg.Text)
	}
}

func TestInlineForEdit_UnchangedContentCancels(t *testing.T) {
	m := NewInlineForEdit("c1", "original")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	msg := cmd().(DoneMsg)
	if msg.Text != "" {
		t.Fatalf("submitting unchanged content should cancel, got %q", msg.Text)
	}
	if msg.CommentID != "c1" || !msg.IsEdit {
		t.Fatalf("edit metadata should survive: %#v", msg)
	}
}
