package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/oauth"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
)

// oauthWaitTimeout bounds how long the callback listener stays up.
const oauthWaitTimeout = 3 * time.Minute

type oauthDoneMsg struct {
	err error
}

type oauthModel struct {
	sess     *session.Session
	listener *oauth.Listener
	client   *api.Client

	spin    spinner.Model
	waiting bool
}

func newOAuthModel(sess *session.Session, listener *oauth.Listener, client *api.Client) oauthModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return oauthModel{sess: sess, listener: listener, client: client, spin: sp}
}

// start brings up the loopback listener and waits for the provider redirect.
func (m oauthModel) start() (oauthModel, tea.Cmd) {
	m.waiting = true
	sess := m.sess
	listener := m.listener
	wait := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), oauthWaitTimeout)
		defer cancel()

		result, err := listener.Wait(ctx)
		if err != nil {
			return oauthDoneMsg{err: err}
		}
		_, err = sess.AdoptTokens(ctx, result.AccessToken, result.RefreshToken)
		return oauthDoneMsg{err: err}
	}
	return m, tea.Batch(m.spin.Tick, wait)
}

func (m oauthModel) Update(msg tea.Msg) (oauthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case oauthDoneMsg:
		m.waiting = false
		if msg.err != nil {
			// Missing params or a failed profile fetch both land back on
			// the sign-in view.
			text := "Sign-in was not completed. Please try again."
			if errors.Is(msg.err, oauth.ErrMissingTokens) {
				text = "The provider did not return a session. Please try again."
			}
			return m, tea.Sequence(navigate(routes.Login), toast(text, true))
		}
		return m, navigate(routes.Dashboard)

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, navigate(routes.Login)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m oauthModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in with Google") + "\n\n")
	b.WriteString("Open this address in your browser to continue:\n\n")
	b.WriteString(selectedStyle.Render("  "+m.client.GoogleAuthURL()) + "\n\n")
	if m.waiting {
		b.WriteString(m.spin.View() + " Waiting for the sign-in to finish...\n\n")
	}
	b.WriteString(helpStyle.Render("esc cancel"))
	return b.String()
}
