package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"blogtty/app"
	"blogtty/domain"
	"blogtty/tui/common"
)

// DoneMsg is sent to the root model after a successful sign-in.
type DoneMsg struct {
	Profile domain.Profile
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

type resultMsg struct {
	profile domain.Profile
	err     error
}

// Model holds the sign-in form state.
type Model struct {
	auth       app.AuthService
	form       *huh.Form
	username   *string
	password   *string
	submitting bool
	errMsg     string
}

// New creates the sign-in form.
func New(auth app.AuthService) Model {
	m := Model{
		auth:     auth,
		username: new(string),
		password: new(string),
	}
	m.form = newForm(m.username, m.password)
	return m
}

func newForm(username, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		),
	)
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the sign-in view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return CancelledMsg{} }
		}

	case resultMsg:
		m.submitting = false
		if msg.err != nil {
			// Fresh form so the user can retry; the password is cleared.
			m.errMsg = "Sign-in failed: " + msg.err.Error()
			*m.password = ""
			m.form = newForm(m.username, m.password)
			return m, m.form.Init()
		}
		profile := msg.profile
		return m, func() tea.Msg { return DoneMsg{Profile: profile} }
	}

	if m.submitting {
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelledMsg{} }
	case huh.StateCompleted:
		m.submitting = true
		m.errMsg = ""
		return m, m.login()
	}
	return m, cmd
}

func (m Model) login() tea.Cmd {
	auth := m.auth
	username := strings.TrimSpace(*m.username)
	password := *m.password
	return func() tea.Msg {
		profile, err := auth.Login(context.Background(), username, password)
		return resultMsg{profile: profile, err: err}
	}
}

// View renders the sign-in form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString("\n  " + common.TitleStyle.Render("Sign in") + "\n\n")
	if m.submitting {
		b.WriteString("  Signing in...\n")
	} else {
		b.WriteString(m.form.View())
	}
	if m.errMsg != "" {
		b.WriteString("\n" + common.ErrorStyle.Render("  "+m.errMsg))
	}
	b.WriteString("\n" + common.StatusBarStyle.Render("  enter: next • esc: cancel"))
	return b.String()
}
