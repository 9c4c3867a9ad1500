package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/routes"
)

// coursesModel shows the standalone course offerings and, once one is opened,
// its full description and learning outcomes.
type coursesModel struct {
	cat *catalog.Catalog

	cursor int
	openID string
}

func newCoursesModel(cat *catalog.Catalog) coursesModel {
	return coursesModel{cat: cat}
}

func (m coursesModel) reset() coursesModel {
	m.cursor = 0
	m.openID = ""
	return m
}

func (m coursesModel) Update(msg tea.Msg) (coursesModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.openID != "" {
		if key.String() == "esc" {
			m.openID = ""
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cat.Courses)-1 {
			m.cursor++
		}
	case "enter":
		m.openID = m.cat.Courses[m.cursor].ID
	case "esc":
		return m, navigate(routes.Dashboard)
	}
	return m, nil
}

func (m coursesModel) View() string {
	if m.openID != "" {
		if course, ok := m.cat.CourseByID(m.openID); ok {
			return m.detailView(course)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Courses") + "\n\n")
	for i, c := range m.cat.Courses {
		line := fmt.Sprintf("  %s — %s, %s, %s", c.Title, c.Provider, c.Duration, c.Mode)
		if i == m.cursor {
			line = selectedStyle.Render("> " + strings.TrimSpace(line))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter open • esc dashboard"))
	return b.String()
}

func (m coursesModel) detailView(c *catalog.Course) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title) + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s • %s • %s • NSQF %d", c.Provider, c.Duration, c.Mode, c.NSQFLevel)) + "\n\n")
	b.WriteString(c.Description + "\n\n")

	b.WriteString(labelStyle.Render("What you will learn") + "\n")
	for _, outcome := range c.LearningOutcomes {
		b.WriteString("  • " + outcome + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("esc back"))
	return b.String()
}
