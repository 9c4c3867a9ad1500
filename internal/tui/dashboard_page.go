package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/logger"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
	"go.uber.org/zap"
)

type logoutDoneMsg struct{}

// dashboardModel is the landing view for an onboarded learner: a greeting
// and the recommended pathways with their progress.
type dashboardModel struct {
	sess     *session.Session
	cat      *catalog.Catalog
	progress *catalog.ProgressTracker

	pathways []catalog.Pathway
	cursor   int
}

func newDashboardModel(sess *session.Session, cat *catalog.Catalog, progress *catalog.ProgressTracker) dashboardModel {
	return dashboardModel{sess: sess, cat: cat, progress: progress}
}

func (m dashboardModel) reset() dashboardModel {
	m.pathways = m.cat.PathwaysForSectors(interestSectors(m.sess.Snapshot()))
	m.cursor = 0
	return m
}

// interestSectors pulls the learner's chosen sectors out of the opaque
// profile details, when the server included them.
func interestSectors(st session.State) []string {
	if st.User == nil {
		return nil
	}
	raw, ok := st.User.UserDetails["interestSectors"].([]any)
	if !ok {
		return nil
	}
	var sectors []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			sectors = append(sectors, s)
		}
	}
	return sectors
}

func (m dashboardModel) logout() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if err := sess.Logout(context.Background()); err != nil {
			// Local logout already happened; the remote failure is only
			// worth a log line.
			logger.Warn("remote logout failed", zap.Error(err))
		}
		return logoutDoneMsg{}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logoutDoneMsg:
		return m, navigate(routes.Login)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.pathways)-1 {
				m.cursor++
			}
		case "enter":
			return m, navigate(routes.Pathways)
		case "c":
			return m, navigate(routes.Courses)
		case "p":
			return m, navigate(routes.Profile)
		case "q":
			return m, tea.Quit
		case "ctrl+l":
			return m, m.logout()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	st := m.sess.Snapshot()

	var b strings.Builder
	name := "learner"
	if st.User != nil && st.User.DisplayName != "" {
		name = st.User.DisplayName
	}
	b.WriteString(titleStyle.Render("pathwise") + "\n")
	b.WriteString(subtitleStyle.Render("Welcome back, "+name) + "\n\n")
	b.WriteString(labelStyle.Render("Recommended pathways") + "\n")

	for i, p := range m.pathways {
		completed, total := m.progress.Completion(&p)
		line := fmt.Sprintf("  %s — %s, %s  (%d/%d steps)", p.Title, p.Sector, p.Duration, completed, total)
		if i == m.cursor {
			line = selectedStyle.Render("> " + strings.TrimSpace(line))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter browse pathways • c courses • p profile • ctrl+l sign out • q quit"))
	return b.String()
}
