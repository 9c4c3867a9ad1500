package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/logger"
	"github.com/pathwise/pathwise/internal/routes"
	"github.com/pathwise/pathwise/internal/session"
	"github.com/pathwise/pathwise/internal/store"
	"go.uber.org/zap"
)

type onboardingDoneMsg struct {
	err error
}

var onboardingStepTitles = [store.StepCount]string{
	"Basic Details",
	"Education",
	"Skills & Interests",
	"Career Goals",
}

// onboardingModel is the four-step profile wizard. Every edit is written to
// the draft store, so quitting mid-wizard loses nothing.
type onboardingModel struct {
	sess   *session.Session
	drafts *store.DraftStore
	cat    *catalog.Catalog

	draft *store.OnboardingDraft
	step  int
	focus int
	busy  bool

	ageRange      picker
	language      picker
	state         picker
	district      textinput.Model
	qualification picker
	stream        picker
	status        picker
	skills        multiPicker
	interests     multiPicker
	careerGoal    picker
	mode          picker
	budget        picker
	duration      picker
}

func newOnboardingModel(sess *session.Session, drafts *store.DraftStore, cat *catalog.Catalog) onboardingModel {
	return onboardingModel{sess: sess, drafts: drafts, cat: cat}
}

// reset rehydrates the wizard from the saved draft.
func (m onboardingModel) reset() onboardingModel {
	draft := m.drafts.Load()
	if draft == nil {
		draft = &store.OnboardingDraft{}
	}
	m.draft = draft
	m.step = 0
	m.focus = 0
	m.busy = false

	opts := m.cat.Options
	m.ageRange = newPickerWith("Age range", opts.AgeRanges, draft.AgeRange)
	m.language = newPickerWith("Preferred language", opts.Languages, draft.Language)
	m.state = newPickerWith("State", opts.States, draft.State)
	m.district = newTextInput("District", false)
	m.district.SetValue(draft.District)
	m.qualification = newPickerWith("Highest qualification", opts.Qualifications, draft.Qualification)
	m.stream = newPickerWith("Stream", opts.Streams, draft.Stream)
	m.status = newPickerWith("Current status", opts.Statuses, draft.Status)
	m.skills = newMultiPicker("Skills", opts.Skills, draft.Skills)
	m.interests = newMultiPicker("Interest sectors", opts.Sectors, draft.Interests)
	m.careerGoal = newPickerWith("Career goal", opts.CareerGoals, draft.CareerGoal)
	m.mode = newPickerWith("Preferred mode", opts.Modes, draft.Mode)
	m.budget = newPickerWith("Budget", opts.Budgets, draft.Budget)
	m.duration = newPickerWith("Time you can invest", opts.Durations, draft.Duration)
	return m
}

func (m *onboardingModel) persist() {
	if err := m.drafts.Save(m.draft); err != nil {
		logger.Warn("failed to save onboarding draft", zap.Error(err))
	}
}

func (m onboardingModel) fieldsInStep() int {
	switch m.step {
	case store.StepBasicDetails:
		return 4
	case store.StepEducation:
		return 3
	case store.StepSkills:
		return 2
	default:
		return 4
	}
}

func (m onboardingModel) submit() tea.Cmd {
	sess := m.sess
	draft := m.draft
	return func() tea.Msg {
		_, err := sess.SubmitOnboarding(context.Background(), draft)
		return onboardingDoneMsg{err: err}
	}
}

func (m onboardingModel) Update(msg tea.Msg) (onboardingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case onboardingDoneMsg:
		m.busy = false
		if msg.err != nil {
			// The draft is still on disk; the learner can retry.
			return m, toast(loginErrorText(msg.err), true)
		}
		return m, tea.Sequence(navigate(routes.Quiz), toast("Profile saved. On to the quiz!", false))

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab":
			m.focus = (m.focus + 1) % m.fieldsInStep()
			return m, nil
		case "shift+tab":
			m.focus = (m.focus + m.fieldsInStep() - 1) % m.fieldsInStep()
			return m, nil
		case "right", "pgdown":
			return m.nextStep()
		case "left", "pgup":
			if m.step > 0 {
				m.step--
				m.focus = 0
			}
			return m, nil
		}
	}
	return m.updateFocusedField(msg)
}

func (m onboardingModel) nextStep() (onboardingModel, tea.Cmd) {
	// District lives in a free-text field; fold it into the draft before
	// validating.
	m.draft.District = strings.TrimSpace(m.district.Value())
	m.persist()

	if !m.draft.StepComplete(m.step) {
		return m, toast("Please fill the required fields before continuing.", true)
	}
	if m.step < store.StepCount-1 {
		m.step++
		m.focus = 0
		return m, nil
	}
	m.busy = true
	return m, m.submit()
}

func (m onboardingModel) updateFocusedField(msg tea.Msg) (onboardingModel, tea.Cmd) {
	var chosen bool
	switch m.step {
	case store.StepBasicDetails:
		switch m.focus {
		case 0:
			m.ageRange, chosen = m.ageRange.Update(msg)
			if chosen {
				m.draft.AgeRange = m.ageRange.choice
			}
		case 1:
			m.language, chosen = m.language.Update(msg)
			if chosen {
				m.draft.Language = m.language.choice
			}
		case 2:
			m.state, chosen = m.state.Update(msg)
			if chosen {
				m.draft.State = m.state.choice
			}
		case 3:
			var cmd tea.Cmd
			m.district, cmd = m.district.Update(msg)
			m.district.Focus()
			m.draft.District = strings.TrimSpace(m.district.Value())
			return m, cmd
		}
	case store.StepEducation:
		switch m.focus {
		case 0:
			m.qualification, chosen = m.qualification.Update(msg)
			if chosen {
				m.draft.Qualification = m.qualification.choice
			}
		case 1:
			m.stream, chosen = m.stream.Update(msg)
			if chosen {
				m.draft.Stream = m.stream.choice
			}
		case 2:
			m.status, chosen = m.status.Update(msg)
			if chosen {
				m.draft.Status = m.status.choice
			}
		}
	case store.StepSkills:
		var toggled string
		if m.focus == 0 {
			m.skills, toggled = m.skills.Update(msg)
			if toggled != "" {
				m.draft.ToggleSkill(toggled)
			}
		} else {
			m.interests, toggled = m.interests.Update(msg)
			if toggled != "" {
				m.draft.ToggleInterest(toggled)
			}
		}
		if toggled != "" {
			m.persist()
		}
		return m, nil
	case store.StepCareerGoals:
		switch m.focus {
		case 0:
			m.careerGoal, chosen = m.careerGoal.Update(msg)
			if chosen {
				m.draft.CareerGoal = m.careerGoal.choice
			}
		case 1:
			m.mode, chosen = m.mode.Update(msg)
			if chosen {
				m.draft.Mode = m.mode.choice
			}
		case 2:
			m.budget, chosen = m.budget.Update(msg)
			if chosen {
				m.draft.Budget = m.budget.choice
			}
		case 3:
			m.duration, chosen = m.duration.Update(msg)
			if chosen {
				m.draft.Duration = m.duration.choice
			}
		}
	}
	if chosen {
		m.persist()
	}
	return m, nil
}

func (m onboardingModel) View() string {
	if m.draft == nil {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Build Your Learning Profile") + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Step %d of %d — %s", m.step+1, store.StepCount, onboardingStepTitles[m.step])) + "\n\n")

	switch m.step {
	case store.StepBasicDetails:
		b.WriteString(m.ageRange.View() + "\n")
		b.WriteString(m.language.View() + "\n")
		b.WriteString(m.state.View() + "\n")
		b.WriteString(labelStyle.Render("District") + "\n" + m.district.View() + "\n")
	case store.StepEducation:
		b.WriteString(m.qualification.View() + "\n")
		b.WriteString(m.stream.View() + "\n")
		b.WriteString(m.status.View() + "\n")
	case store.StepSkills:
		b.WriteString(m.skills.View() + "\n")
		b.WriteString(m.interests.View() + "\n")
	case store.StepCareerGoals:
		b.WriteString(m.careerGoal.View() + "\n")
		b.WriteString(m.mode.View() + "\n")
		b.WriteString(m.budget.View() + "\n")
		b.WriteString(m.duration.View() + "\n")
	}

	if m.busy {
		b.WriteString(statusMessageStyle("Saving your profile...") + "\n")
	}
	b.WriteString(helpStyle.Render("tab next field • enter/space choose • → next step • ← previous step"))
	return b.String()
}
