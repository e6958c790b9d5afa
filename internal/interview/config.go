package interview

import (
	"fmt"
	"strings"
)

// Seniority is the level a candidate is interviewed for. It fixes the passing
// threshold used when the final verdict is reconciled.
type Seniority string

const (
	SeniorityEntry  Seniority = "entry"
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Type selects the question track of the interview.
type Type string

const (
	TypeTechnical    Type = "technical"
	TypeBullet       Type = "bullet"
	TypeCoding       Type = "coding"
	TypeSystemDesign Type = "system-design"
)

// Mode tunes pacing. Flash mode discourages follow-ups to keep the session
// short; the remaining modes only affect the hosting UI.
type Mode string

const (
	ModeRegular     Mode = "regular"
	ModePractice    Mode = "practice"
	ModeFlash       Mode = "flash"
	ModePlay        Mode = "play"
	ModeCompetitive Mode = "competitive"
	ModeTeacher     Mode = "teacher"
)

// Config describes one interview session.
type Config struct {
	Position  string    `mapstructure:"position" json:"position"`
	Seniority Seniority `mapstructure:"seniority" json:"seniority"`
	Type      Type      `mapstructure:"type" json:"type"`
	Mode      Mode      `mapstructure:"mode" json:"mode"`
	DemoMode  bool      `mapstructure:"demo-mode" json:"demo_mode,omitempty"`

	// TotalQuestions overrides the per-type question budget when positive.
	TotalQuestions int `mapstructure:"total-questions" json:"total_questions,omitempty"`
}

// PassingScore returns the minimum verdict score for the given seniority.
// Unknown values fall back to the mid-level threshold.
func (s Seniority) PassingScore() int {
	switch s {
	case SeniorityEntry:
		return 55
	case SeniorityJunior:
		return 60
	case SeniorityMid:
		return 70
	case SenioritySenior:
		return 80
	default:
		return 70
	}
}

// Expectation returns a short description of what candidates at this level
// must demonstrate. It is embedded into analysis prompts and mock reports.
func (s Seniority) Expectation() string {
	switch s {
	case SeniorityEntry:
		return "Entry-level candidates must demonstrate basic understanding of fundamental concepts and eagerness to learn."
	case SeniorityJunior:
		return "Junior candidates must demonstrate basic understanding of core concepts and show learning potential."
	case SenioritySenior:
		return "Senior candidates must demonstrate deep expertise, architectural thinking, and leadership capability."
	default:
		return "Mid-level candidates must show solid technical knowledge and independent problem-solving ability."
	}
}

// QuestionBudget returns the number of planned primary questions for the
// session. Follow-ups never count against this budget.
func (c *Config) QuestionBudget() int {
	if c.TotalQuestions > 0 {
		return c.TotalQuestions
	}
	if c.DemoMode {
		return 3
	}

	switch c.Type {
	case TypeBullet:
		return 3
	case TypeCoding:
		return 6
	case TypeSystemDesign:
		return 5
	default:
		return 8
	}
}

var (
	validSeniorities = []Seniority{SeniorityEntry, SeniorityJunior, SeniorityMid, SenioritySenior}
	validTypes       = []Type{TypeTechnical, TypeBullet, TypeCoding, TypeSystemDesign}
	validModes       = []Mode{ModeRegular, ModePractice, ModeFlash, ModePlay, ModeCompetitive, ModeTeacher}
)

// Validate reports every problem with the config at once so the caller can
// surface them together.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Position) == "" {
		problems = append(problems, "position is required")
	}
	if !contains(validSeniorities, c.Seniority) {
		problems = append(problems, fmt.Sprintf("seniority must be one of %v", validSeniorities))
	}
	if !contains(validTypes, c.Type) {
		problems = append(problems, fmt.Sprintf("interview type must be one of %v", validTypes))
	}
	if c.Mode != "" && !contains(validModes, c.Mode) {
		problems = append(problems, fmt.Sprintf("interview mode must be one of %v", validModes))
	}
	if c.TotalQuestions < 0 {
		problems = append(problems, "total-questions must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid interview config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func contains[T comparable](values []T, v T) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
