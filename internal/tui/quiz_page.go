package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
)

type quizDoneMsg struct {
	err error
}

// quizModel walks the preference quiz one question at a time.
type quizModel struct {
	sess *session.Session
	cat  *catalog.Catalog

	current int
	answers map[string]string
	option  picker
	busy    bool
}

func newQuizModel(sess *session.Session, cat *catalog.Catalog) quizModel {
	return quizModel{sess: sess, cat: cat}
}

func (m quizModel) reset() quizModel {
	m.current = 0
	m.answers = make(map[string]string)
	m.busy = false
	m.option = m.pickerFor(0)
	return m
}

func (m quizModel) pickerFor(i int) picker {
	q := m.cat.QuizQuestions[i]
	return newPickerWith(q.Question, q.Options, m.answers[q.ID])
}

func (m quizModel) submit() tea.Cmd {
	sess := m.sess
	answers := m.answers
	return func() tea.Msg {
		_, err := sess.SubmitQuiz(context.Background(), answers)
		return quizDoneMsg{err: err}
	}
}

func (m quizModel) Update(msg tea.Msg) (quizModel, tea.Cmd) {
	switch msg := msg.(type) {
	case quizDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, toast(loginErrorText(msg.err), true)
		}
		return m, tea.Sequence(navigate(routes.Dashboard), toast("Quiz completed!", false))

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if msg.String() == "left" && m.current > 0 {
			m.current--
			m.option = m.pickerFor(m.current)
			return m, nil
		}
	}

	var chosen bool
	m.option, chosen = m.option.Update(msg)
	if !chosen {
		return m, nil
	}

	q := m.cat.QuizQuestions[m.current]
	m.answers[q.ID] = m.option.choice

	if m.current < len(m.cat.QuizQuestions)-1 {
		m.current++
		m.option = m.pickerFor(m.current)
		return m, nil
	}

	m.busy = true
	return m, m.submit()
}

func (m quizModel) View() string {
	if m.answers == nil {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Preference Quiz") + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Question %d of %d", m.current+1, len(m.cat.QuizQuestions))) + "\n\n")
	b.WriteString(m.option.View() + "\n")
	if m.busy {
		b.WriteString(statusMessageStyle("Submitting your answers...") + "\n")
	}
	b.WriteString(helpStyle.Render("enter choose & continue • ← previous question"))
	return b.String()
}
