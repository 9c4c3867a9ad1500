package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Pathways)
	assert.NotEmpty(t, c.Courses)
	assert.NotEmpty(t, c.QuizQuestions)

	for _, p := range c.Pathways {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Sector)
		assert.NotEmpty(t, p.Steps, "pathway %s has no steps", p.ID)
	}
	for _, q := range c.QuizQuestions {
		assert.NotEmpty(t, q.ID)
		assert.GreaterOrEqual(t, len(q.Options), 2, "question %s needs choices", q.ID)
	}

	// The wizard cannot run with empty option lists.
	assert.NotEmpty(t, c.Options.AgeRanges)
	assert.NotEmpty(t, c.Options.States)
	assert.NotEmpty(t, c.Options.Qualifications)
	assert.NotEmpty(t, c.Options.Skills)
	assert.NotEmpty(t, c.Options.Sectors)
	assert.NotEmpty(t, c.Options.CareerGoals)
}

const minimalCatalogYAML = `
pathways:
  - id: "1"
    title: Test Pathway
    sector: Technology
    steps:
      - { title: Step One, duration: 1 week }
quiz_questions:
  - id: q1
    question: Pick one
    options: [a, b]
options:
  age_ranges: [18-21]
  languages: [Hindi]
  states: [Jharkhand]
  qualifications: [12th Pass]
  streams: [Science]
  statuses: [Completed]
  skills: [Computer Basics]
  sectors: [Technology]
  modes: [Online]
  budgets: [Free]
  durations: [3-6 months]
  career_goals: [Data Analyst]
`

func TestParseRejectsUnusableData(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Catalog)
		wantErr string
	}{
		{
			name:    "no pathways",
			mutate:  func(c *Catalog) { c.Pathways = nil },
			wantErr: "no pathways",
		},
		{
			name:    "no quiz questions",
			mutate:  func(c *Catalog) { c.QuizQuestions = nil },
			wantErr: "no quiz questions",
		},
		{
			name:    "quiz question with a single option",
			mutate:  func(c *Catalog) { c.QuizQuestions[0].Options = []string{"only"} },
			wantErr: "at least two options",
		},
		{
			name:    "empty wizard option list",
			mutate:  func(c *Catalog) { c.Options.Skills = nil },
			wantErr: "option list skills is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := parse([]byte(minimalCatalogYAML))
			require.NoError(t, err, "the baseline document must be valid")

			tt.mutate(c)
			err = c.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("baseline parses clean", func(t *testing.T) {
		c, err := parse([]byte(minimalCatalogYAML))
		require.NoError(t, err)
		assert.Len(t, c.Pathways, 1)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := parse([]byte("pathways: ["))
		require.Error(t, err)
	})
}

func TestLookups(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	p, ok := c.PathwayByID("1")
	require.True(t, ok)
	assert.Equal(t, "Full Stack Web Development", p.Title)

	_, ok = c.PathwayByID("does-not-exist")
	assert.False(t, ok)

	course, ok := c.CourseByID("3")
	require.True(t, ok)
	assert.Equal(t, "Python for Data Science", course.Title)

	_, ok = c.CourseByID("does-not-exist")
	assert.False(t, ok)
}

func TestPathwaysForSectors(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tech := c.PathwaysForSectors([]string{"Technology"})
	require.NotEmpty(t, tech)
	for _, p := range tech {
		assert.Equal(t, "Technology", p.Sector)
	}

	all := c.PathwaysForSectors(nil)
	assert.Len(t, all, len(c.Pathways), "no interests means every pathway")

	unknown := c.PathwaysForSectors([]string{"Space Mining"})
	assert.Len(t, unknown, len(c.Pathways), "unmatched interests fall back to every pathway")
}

func TestProgressTracker(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	p, ok := c.PathwayByID("1")
	require.True(t, ok)

	tracker := NewProgressTracker()

	completed, total := tracker.Completion(p)
	assert.Equal(t, 0, completed)
	assert.Equal(t, len(p.Steps), total)

	tracker.ToggleStep(p.ID, 0)
	tracker.ToggleStep(p.ID, 2)
	assert.True(t, tracker.StepDone(p.ID, 0))
	assert.False(t, tracker.StepDone(p.ID, 1))

	completed, _ = tracker.Completion(p)
	assert.Equal(t, 2, completed)

	tracker.ToggleStep(p.ID, 0)
	assert.False(t, tracker.StepDone(p.ID, 0))
	completed, _ = tracker.Completion(p)
	assert.Equal(t, 1, completed)
}
