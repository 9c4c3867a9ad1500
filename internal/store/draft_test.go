package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pathwise/pathwise/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftStoreForTest(t *testing.T) (*DraftStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	cfg := &config.Config{Storage: config.StorageConfig{Dir: "/state"}}
	return NewDraftStore(fs, cfg), fs
}

func fullDraft() *OnboardingDraft {
	return &OnboardingDraft{
		AgeRange:      "18-21",
		State:         "Jharkhand",
		District:      "Ranchi",
		Language:      "Hindi",
		Qualification: "12th Pass",
		Stream:        "Science",
		Status:        "Completed",
		Skills:        []string{"Computer Basics", "Communication"},
		Interests:     []string{"IT & Software", "Healthcare"},
		Mode:          "Online",
		Budget:        "Free",
		Duration:      "3-6 months",
		CareerGoal:    "Data Analyst",
		QuizAnswers:   map[string]string{"q1": "a", "q2": "b"},
	}
}

func TestDraftStoreRoundTrip(t *testing.T) {
	s, _ := newDraftStoreForTest(t)
	draft := fullDraft()

	require.NoError(t, s.Save(draft))
	loaded := s.Load()
	require.NotNil(t, loaded)

	if diff := cmp.Diff(draft, loaded); diff != "" {
		t.Errorf("draft changed across save/load (-want +got):\n%s", diff)
	}
}

func TestDraftStoreAbsentAndCorrupt(t *testing.T) {
	s, fs := newDraftStoreForTest(t)

	assert.Nil(t, s.Load(), "no draft saved yet")

	require.NoError(t, afero.WriteFile(fs, "/state/onboarding_draft.json", []byte("{broken"), 0o600))
	assert.Nil(t, s.Load(), "a corrupt draft must not block the wizard")
}

func TestDraftStoreClear(t *testing.T) {
	s, _ := newDraftStoreForTest(t)

	require.NoError(t, s.Clear())

	require.NoError(t, s.Save(fullDraft()))
	require.NoError(t, s.Clear())
	assert.Nil(t, s.Load())
}

func TestDraftStepCompletion(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OnboardingDraft)
		step   int
		want   bool
	}{
		{name: "full draft passes every step", mutate: func(d *OnboardingDraft) {}, step: StepBasicDetails, want: true},
		{name: "missing district fails basic details", mutate: func(d *OnboardingDraft) { d.District = "" }, step: StepBasicDetails, want: false},
		{name: "missing stream fails education", mutate: func(d *OnboardingDraft) { d.Stream = "" }, step: StepEducation, want: false},
		{name: "interests alone satisfy the skills step", mutate: func(d *OnboardingDraft) { d.Skills = nil }, step: StepSkills, want: true},
		{name: "no skills and no interests fails", mutate: func(d *OnboardingDraft) { d.Skills = nil; d.Interests = nil }, step: StepSkills, want: false},
		{name: "missing goal fails career goals", mutate: func(d *OnboardingDraft) { d.CareerGoal = "" }, step: StepCareerGoals, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := fullDraft()
			tt.mutate(draft)
			assert.Equal(t, tt.want, draft.StepComplete(tt.step))
		})
	}
}

func TestDraftComplete(t *testing.T) {
	draft := fullDraft()
	assert.True(t, draft.Complete())

	draft.CareerGoal = ""
	assert.False(t, draft.Complete())
}

func TestDraftToggle(t *testing.T) {
	draft := &OnboardingDraft{}

	draft.ToggleSkill("Computer Basics")
	draft.ToggleSkill("Communication")
	assert.Equal(t, []string{"Computer Basics", "Communication"}, draft.Skills)

	draft.ToggleSkill("Computer Basics")
	assert.Equal(t, []string{"Communication"}, draft.Skills)

	draft.ToggleInterest("Healthcare")
	draft.ToggleInterest("Healthcare")
	assert.Empty(t, draft.Interests)
}
