// Package catalog ships the demo learning-pathway data the client renders:
// pathways, courses, the option lists the onboarding wizard offers, and the
// preference quiz questions. The data is static; there is no recommendation
// engine behind it.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawData []byte

// Step is one stage of a pathway.
type Step struct {
	Title     string `yaml:"title"`
	Duration  string `yaml:"duration"`
	NSQFLevel int    `yaml:"nsqf_level"`
	Mode      string `yaml:"mode"`
	Provider  string `yaml:"provider"`
}

// Pathway is a sequenced set of courses toward a career outcome.
type Pathway struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Sector           string   `yaml:"sector"`
	Duration         string   `yaml:"duration"`
	NSQFLevel        int      `yaml:"nsqf_level"`
	Mode             string   `yaml:"mode"`
	Steps            []Step   `yaml:"steps"`
	JobOpportunities []string `yaml:"job_opportunities"`
	SkillDemand      string   `yaml:"skill_demand"`
	Tags             []string `yaml:"tags"`
}

// Course is a single standalone offering.
type Course struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Provider         string   `yaml:"provider"`
	Duration         string   `yaml:"duration"`
	Mode             string   `yaml:"mode"`
	NSQFLevel        int      `yaml:"nsqf_level"`
	Description      string   `yaml:"description"`
	LearningOutcomes []string `yaml:"learning_outcomes"`
}

// QuizQuestion is one preference quiz prompt with its fixed options.
type QuizQuestion struct {
	ID       string   `yaml:"id"`
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
}

// Options are the choice lists offered by the onboarding wizard.
type Options struct {
	AgeRanges      []string `yaml:"age_ranges"`
	Languages      []string `yaml:"languages"`
	States         []string `yaml:"states"`
	Qualifications []string `yaml:"qualifications"`
	Streams        []string `yaml:"streams"`
	Statuses       []string `yaml:"statuses"`
	Skills         []string `yaml:"skills"`
	Sectors        []string `yaml:"sectors"`
	Modes          []string `yaml:"modes"`
	Budgets        []string `yaml:"budgets"`
	Durations      []string `yaml:"durations"`
	CareerGoals    []string `yaml:"career_goals"`
}

// Catalog is the full embedded data set.
type Catalog struct {
	Pathways      []Pathway      `yaml:"pathways"`
	Courses       []Course       `yaml:"courses"`
	QuizQuestions []QuizQuestion `yaml:"quiz_questions"`
	Options       Options        `yaml:"options"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return parse(rawData)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return &c, nil
}

// validate rejects data the UI cannot run on: the quiz indexes into its
// question list and the wizard pickers index into their option lists, so
// none of them may be empty.
func (c *Catalog) validate() error {
	if len(c.Pathways) == 0 {
		return fmt.Errorf("no pathways")
	}
	if len(c.QuizQuestions) == 0 {
		return fmt.Errorf("no quiz questions")
	}
	for _, q := range c.QuizQuestions {
		if len(q.Options) < 2 {
			return fmt.Errorf("quiz question %q needs at least two options", q.ID)
		}
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"age_ranges", c.Options.AgeRanges},
		{"languages", c.Options.Languages},
		{"states", c.Options.States},
		{"qualifications", c.Options.Qualifications},
		{"streams", c.Options.Streams},
		{"statuses", c.Options.Statuses},
		{"skills", c.Options.Skills},
		{"sectors", c.Options.Sectors},
		{"modes", c.Options.Modes},
		{"budgets", c.Options.Budgets},
		{"durations", c.Options.Durations},
		{"career_goals", c.Options.CareerGoals},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			return fmt.Errorf("option list %s is empty", l.name)
		}
	}
	return nil
}

// PathwayByID looks up a pathway.
func (c *Catalog) PathwayByID(id string) (*Pathway, bool) {
	for i := range c.Pathways {
		if c.Pathways[i].ID == id {
			return &c.Pathways[i], true
		}
	}
	return nil, false
}

// CourseByID looks up a course.
func (c *Catalog) CourseByID(id string) (*Course, bool) {
	for i := range c.Courses {
		if c.Courses[i].ID == id {
			return &c.Courses[i], true
		}
	}
	return nil, false
}

// PathwaysForSectors returns pathways whose sector matches any of the given
// interest sectors, or every pathway when no interests are given.
func (c *Catalog) PathwaysForSectors(sectors []string) []Pathway {
	if len(sectors) == 0 {
		return c.Pathways
	}
	wanted := make(map[string]bool, len(sectors))
	for _, s := range sectors {
		wanted[s] = true
	}
	var matched []Pathway
	for _, p := range c.Pathways {
		if wanted[p.Sector] {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return c.Pathways
	}
	return matched
}
