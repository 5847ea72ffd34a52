package compose

import (
	"strings"

	"blogtty/tui/common"
)

// View renders the composer.
func (m Model) View() string {
	var b strings.Builder

	switch m.mode {
	case editorMode:
		b.WriteString("\n  " + m.status + "\n")

	case inlineMode:
		header := "New comment"
		if m.isEdit {
			header = "Edit comment"
		} else if m.parentAuthor != "" {
			header = "Reply to " + m.parentAuthor
		}
		b.WriteString("\n  " + common.TitleStyle.Render(header) + "\n\n")
		b.WriteString(m.textarea.View() + "\n")
		b.WriteString(common.StatusBarStyle.Render("  ctrl+d: submit • esc: cancel"))
	}

	return b.String()
}
