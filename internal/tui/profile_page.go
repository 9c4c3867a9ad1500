package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
)

type profileModel struct {
	sess *session.Session
}

func newProfileModel(sess *session.Session) profileModel {
	return profileModel{sess: sess}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, navigate(routes.Dashboard)
	}
	return m, nil
}

func (m profileModel) View() string {
	st := m.sess.Snapshot()
	if st.User == nil {
		return "No profile loaded."
	}

	u := st.User
	var b strings.Builder
	b.WriteString(labelStyle.Render("Name    ") + " " + u.DisplayName + "\n")
	b.WriteString(labelStyle.Render("Email   ") + " " + u.Email + "\n")
	b.WriteString(labelStyle.Render("Onboarded") + " " + yesNo(u.Onboarded) + "\n")
	b.WriteString(labelStyle.Render("Quiz done") + " " + yesNo(u.QuizCompleted) + "\n")

	if goal, ok := u.UserDetails["careerGoal"].(string); ok && goal != "" {
		b.WriteString(labelStyle.Render("Goal    ") + " " + goal + "\n")
	}
	if sectors := interestSectors(st); len(sectors) > 0 {
		b.WriteString(labelStyle.Render("Interests") + " " + strings.Join(sectors, ", ") + "\n")
	}

	page := titleStyle.Render("Your Profile") + "\n\n" + cardStyle.Render(strings.TrimRight(b.String(), "\n"))
	return page + "\n" + helpStyle.Render("esc dashboard")
}

func yesNo(v bool) string {
	if v {
		return checkedStyle.Render("yes")
	}
	return "no"
}
