package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/routes"
)

// pathwaysModel shows the pathway list and, once one is opened, its steps.
// Steps can be ticked off to track progress through the pathway.
type pathwaysModel struct {
	cat      *catalog.Catalog
	progress *catalog.ProgressTracker

	cursor     int
	open       *catalog.Pathway
	stepCursor int
}

func newPathwaysModel(cat *catalog.Catalog, progress *catalog.ProgressTracker) pathwaysModel {
	return pathwaysModel{cat: cat, progress: progress}
}

func (m pathwaysModel) reset() pathwaysModel {
	m.cursor = 0
	m.open = nil
	m.stepCursor = 0
	return m
}

func (m pathwaysModel) Update(msg tea.Msg) (pathwaysModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.open != nil {
		switch key.String() {
		case "up", "k":
			if m.stepCursor > 0 {
				m.stepCursor--
			}
		case "down", "j":
			if m.stepCursor < len(m.open.Steps)-1 {
				m.stepCursor++
			}
		case " ", "enter":
			m.progress.ToggleStep(m.open.ID, m.stepCursor)
		case "esc":
			m.open = nil
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cat.Pathways)-1 {
			m.cursor++
		}
	case "enter":
		m.open = &m.cat.Pathways[m.cursor]
		m.stepCursor = 0
	case "esc":
		return m, navigate(routes.Dashboard)
	}
	return m, nil
}

func (m pathwaysModel) View() string {
	if m.open != nil {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Learning Pathways") + "\n\n")
	for i, p := range m.cat.Pathways {
		line := fmt.Sprintf("  %s — %s, NSQF %d, %s demand", p.Title, p.Duration, p.NSQFLevel, p.SkillDemand)
		if i == m.cursor {
			line = selectedStyle.Render("> " + strings.TrimSpace(line))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter open • esc dashboard"))
	return b.String()
}

func (m pathwaysModel) detailView() string {
	p := m.open
	completed, total := m.progress.Completion(p)

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title) + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s • %s • NSQF %d • %d/%d steps done", p.Sector, p.Duration, p.NSQFLevel, completed, total)) + "\n\n")
	b.WriteString(p.Description + "\n\n")

	for i, step := range p.Steps {
		mark := "[ ]"
		if m.progress.StepDone(p.ID, i) {
			mark = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("  %s %s — %s (%s)", mark, step.Title, step.Duration, step.Provider)
		if i == m.stepCursor {
			line = selectedStyle.Render("> " + strings.TrimSpace(line))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Job opportunities: ") + strings.Join(p.JobOpportunities, ", "))
	b.WriteString("\n\n" + helpStyle.Render("space toggle step • esc back"))
	return b.String()
}
