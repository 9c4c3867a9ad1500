package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
)

type loginDoneMsg struct {
	err error
}

type loginModel struct {
	sess   *session.Session
	client *api.Client

	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newLoginModel(sess *session.Session, client *api.Client) loginModel {
	m := loginModel{
		sess:     sess,
		client:   client,
		email:    newTextInput("you@example.com", false),
		password: newTextInput("password", true),
	}
	m.email.Focus()
	return m
}

func (m loginModel) reset() loginModel {
	m.email.SetValue("")
	m.password.SetValue("")
	m.focus = 0
	m.busy = false
	m.email.Focus()
	m.password.Blur()
	return m
}

func (m loginModel) submit() tea.Cmd {
	sess := m.sess
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	return func() tea.Msg {
		_, err := sess.Login(context.Background(), email, password)
		return loginDoneMsg{err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, toast(loginErrorText(msg.err), true)
		}
		return m, navigate(routes.Dashboard)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, nil
		case "enter":
			if strings.TrimSpace(m.email.Value()) == "" || m.password.Value() == "" {
				return m, toast("Enter your email and password.", true)
			}
			m.busy = true
			return m, m.submit()
		case "ctrl+g":
			return m, navigate(routes.OAuthCallback)
		case "ctrl+r":
			return m, navigate(routes.Register)
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in to pathwise") + "\n\n")
	b.WriteString(labelStyle.Render("Email") + "\n" + m.email.View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n" + m.password.View() + "\n\n")
	if m.busy {
		b.WriteString(statusMessageStyle("Signing in...") + "\n")
	}
	b.WriteString(helpStyle.Render("enter sign in • ctrl+g sign in with Google • ctrl+r create account • ctrl+c quit"))
	return b.String()
}

func loginErrorText(err error) string {
	if errors.Is(err, api.ErrSessionExpired) {
		return "Session expired. Please sign in again."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Could not reach the service. Check your connection and try again."
}
