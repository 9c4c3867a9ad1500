package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/spf13/afero"
)

const draftFileName = "onboarding_draft.json"

// OnboardingDraft is the partially filled profile wizard. It is saved after
// every edit so an interrupted run resumes where the learner left off, and it
// is cleared only once the server has confirmed the submission and the
// session has been refreshed.
type OnboardingDraft struct {
	AgeRange      string            `json:"ageRange"`
	State         string            `json:"state"`
	District      string            `json:"district"`
	Language      string            `json:"language"`
	Qualification string            `json:"qualification"`
	Stream        string            `json:"stream"`
	Status        string            `json:"status"`
	Skills        []string          `json:"selectedSkills"`
	Interests     []string          `json:"interests"`
	Mode          string            `json:"mode"`
	Budget        string            `json:"budget"`
	Duration      string            `json:"duration"`
	CareerGoal    string            `json:"careerGoal"`
	QuizAnswers   map[string]string `json:"quizAnswers"`
}

// Wizard step indexes.
const (
	StepBasicDetails = iota
	StepEducation
	StepSkills
	StepCareerGoals
	StepCount
)

// StepComplete reports whether the required fields of the given wizard step
// are filled.
func (d *OnboardingDraft) StepComplete(step int) bool {
	switch step {
	case StepBasicDetails:
		return d.AgeRange != "" && d.Language != "" && d.State != "" && d.District != ""
	case StepEducation:
		return d.Qualification != "" && d.Stream != "" && d.Status != ""
	case StepSkills:
		return len(d.Skills) > 0 || len(d.Interests) > 0
	case StepCareerGoals:
		return d.CareerGoal != ""
	}
	return true
}

// Complete reports whether every wizard step is filled.
func (d *OnboardingDraft) Complete() bool {
	for step := 0; step < StepCount; step++ {
		if !d.StepComplete(step) {
			return false
		}
	}
	return true
}

// ToggleSkill adds or removes a skill from the selection.
func (d *OnboardingDraft) ToggleSkill(skill string) {
	d.Skills = toggle(d.Skills, skill)
}

// ToggleInterest adds or removes an interest sector from the selection.
func (d *OnboardingDraft) ToggleInterest(interest string) {
	d.Interests = toggle(d.Interests, interest)
}

func toggle(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i], values[i+1:]...)
		}
	}
	return append(values, v)
}

// DraftStore persists the onboarding draft under a fixed file name.
type DraftStore struct {
	fs   afero.Fs
	path string
}

func NewDraftStore(fs afero.Fs, cfg *config.Config) *DraftStore {
	return &DraftStore{
		fs:   fs,
		path: filepath.Join(cfg.Storage.Dir, draftFileName),
	}
}

// Save writes the draft. Saving replaces any previous draft.
func (s *DraftStore) Save(d *OnboardingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("write draft file: %w", err)
	}
	return nil
}

// Load returns the saved draft, or nil when none exists. A corrupt draft file
// is treated as absent rather than blocking the wizard.
func (s *DraftStore) Load() *OnboardingDraft {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil
	}
	var draft OnboardingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil
	}
	return &draft
}

// Clear removes the saved draft. Clearing an empty store is not an error.
func (s *DraftStore) Clear() error {
	if ok, _ := afero.Exists(s.fs, s.path); !ok {
		return nil
	}
	return s.fs.Remove(s.path)
}
