package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
)

type registerDoneMsg struct {
	err error
}

type registerModel struct {
	sess *session.Session

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newRegisterModel(sess *session.Session) registerModel {
	m := registerModel{
		sess:     sess,
		name:     newTextInput("Your name", false),
		email:    newTextInput("you@example.com", false),
		password: newTextInput("password", true),
	}
	m.name.Focus()
	return m
}

func (m registerModel) reset() registerModel {
	m.name.SetValue("")
	m.email.SetValue("")
	m.password.SetValue("")
	m.focus = 0
	m.busy = false
	m.name.Focus()
	m.email.Blur()
	m.password.Blur()
	return m
}

func (m *registerModel) focusField(i int) {
	m.focus = i
	inputs := []*textinput.Model{&m.name, &m.email, &m.password}
	for j, in := range inputs {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (m registerModel) submit() tea.Cmd {
	sess := m.sess
	name := strings.TrimSpace(m.name.Value())
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	return func() tea.Msg {
		// Registration does not authenticate; the learner signs in next.
		err := sess.Register(context.Background(), name, email, password)
		return registerDoneMsg{err: err}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, toast(loginErrorText(msg.err), true)
		}
		return m, tea.Sequence(
			navigate(routes.Login),
			toast("Account created. Sign in to continue.", false),
		)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focusField((m.focus + 1) % 3)
			return m, nil
		case "shift+tab", "up":
			m.focusField((m.focus + 2) % 3)
			return m, nil
		case "enter":
			if strings.TrimSpace(m.name.Value()) == "" ||
				strings.TrimSpace(m.email.Value()) == "" ||
				m.password.Value() == "" {
				return m, toast("Fill in every field before continuing.", true)
			}
			m.busy = true
			return m, m.submit()
		case "esc":
			return m, navigate(routes.Login)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.name, cmd = m.name.Update(msg)
	case 1:
		m.email, cmd = m.email.Update(msg)
	default:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create your account") + "\n\n")
	b.WriteString(labelStyle.Render("Name") + "\n" + m.name.View() + "\n\n")
	b.WriteString(labelStyle.Render("Email") + "\n" + m.email.View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n" + m.password.View() + "\n\n")
	if m.busy {
		b.WriteString(statusMessageStyle("Creating account...") + "\n")
	}
	b.WriteString(helpStyle.Render("enter create • esc back to sign in"))
	return b.String()
}
