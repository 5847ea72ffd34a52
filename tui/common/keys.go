package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding // enter: open post detail
	Back     key.Binding // esc: close current view
	Like     key.Binding // l: like post or comment
	Save     key.Binding // b: bookmark post
	Comment  key.Binding // c: comment via $EDITOR
	Inline   key.Binding // C: comment via inline textarea
	Reply    key.Binding // r: reply to selected comment
	Edit     key.Binding // e: edit own comment
	Delete   key.Binding // d: delete own comment
	Sort     key.Binding // o: cycle comment sort order
	Search   key.Binding // /: free-text post search
	Category key.Binding // g: browse by category
	Tag      key.Binding // t: browse by tag
	Saved    key.Binding // B: saved posts feed
	Latest   key.Binding // L: back to the latest feed
	Login    key.Binding // i: sign in / out
	Admin    key.Binding // A: admin screens
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Save: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "save"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment ($EDITOR)"),
		),
		Inline: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment (inline)"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reply"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "categories"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tags"),
		),
		Saved: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "saved"),
		),
		Latest: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "latest"),
		),
		Login: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "sign in"),
		),
		Admin: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "admin"),
		),
	}
}
