package interview

import (
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg:  Config{Position: "Backend Engineer", Seniority: SeniorityMid, Type: TypeTechnical, Mode: ModeRegular},
		},
		{
			name: "empty mode is allowed",
			cfg:  Config{Position: "Backend Engineer", Seniority: SeniorityMid, Type: TypeTechnical},
		},
		{
			name:    "missing position",
			cfg:     Config{Seniority: SeniorityMid, Type: TypeTechnical},
			wantErr: "position is required",
		},
		{
			name:    "unknown seniority",
			cfg:     Config{Position: "Backend Engineer", Seniority: "principal", Type: TypeTechnical},
			wantErr: "seniority must be one of",
		},
		{
			name:    "unknown type",
			cfg:     Config{Position: "Backend Engineer", Seniority: SeniorityMid, Type: "behavioral"},
			wantErr: "interview type must be one of",
		},
		{
			name:    "unknown mode",
			cfg:     Config{Position: "Backend Engineer", Seniority: SeniorityMid, Type: TypeTechnical, Mode: "turbo"},
			wantErr: "interview mode must be one of",
		},
		{
			name:    "negative question override",
			cfg:     Config{Position: "Backend Engineer", Seniority: SeniorityMid, Type: TypeTechnical, TotalQuestions: -1},
			wantErr: "total-questions must not be negative",
		},
		{
			name:    "all problems reported together",
			cfg:     Config{},
			wantErr: "position is required; seniority must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected an error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error to contain %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestQuestionBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		expected int
	}{
		{name: "technical", cfg: Config{Type: TypeTechnical}, expected: 8},
		{name: "coding", cfg: Config{Type: TypeCoding}, expected: 6},
		{name: "system design", cfg: Config{Type: TypeSystemDesign}, expected: 5},
		{name: "bullet", cfg: Config{Type: TypeBullet}, expected: 3},
		{name: "demo mode shortens the plan", cfg: Config{Type: TypeTechnical, DemoMode: true}, expected: 3},
		{name: "explicit override wins", cfg: Config{Type: TypeTechnical, DemoMode: true, TotalQuestions: 12}, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.QuestionBudget(); got != tt.expected {
				t.Fatalf("expected a budget of %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPassingScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seniority Seniority
		expected  int
	}{
		{SeniorityEntry, 55},
		{SeniorityJunior, 60},
		{SeniorityMid, 70},
		{SenioritySenior, 80},
		{Seniority("unknown"), 70},
	}

	for _, tt := range tests {
		if got := tt.seniority.PassingScore(); got != tt.expected {
			t.Fatalf("%s: expected threshold %d, got %d", tt.seniority, tt.expected, got)
		}
	}
}

func TestBudgetExhausted(t *testing.T) {
	t.Parallel()

	c := SessionCounters{AskedQuestions: 7, TotalPlanned: 8}
	if c.BudgetExhausted() {
		t.Fatalf("expected the budget to have one question left")
	}

	c.AskedQuestions++
	if !c.BudgetExhausted() {
		t.Fatalf("expected the budget to be exhausted")
	}
}

func TestTranscriptAppendAndFilter(t *testing.T) {
	t.Parallel()

	transcript := &Transcript{}
	if got := transcript.Append(RoleInterviewer, "Question?", false); got != 0 {
		t.Fatalf("expected ordinal 0, got %d", got)
	}
	if got := transcript.Append(RoleCandidate, "Answer.", false); got != 1 {
		t.Fatalf("expected ordinal 1, got %d", got)
	}
	transcript.Append(RoleInterviewer, "Follow-up?", true)

	if transcript.Len() != 3 {
		t.Fatalf("expected 3 utterances, got %d", transcript.Len())
	}
	if got := transcript.Interviewer(); len(got) != 2 || !got[1].IsFollowUp {
		t.Fatalf("unexpected interviewer utterances: %v", got)
	}
	if got := transcript.Candidate(); len(got) != 1 || got[0].Text != "Answer." {
		t.Fatalf("unexpected candidate utterances: %v", got)
	}

	// All returns a copy; mutating it never touches the transcript.
	all := transcript.All()
	all[0].Text = "mutated"
	if transcript.All()[0].Text != "Question?" {
		t.Fatalf("expected the transcript to be immutable through All")
	}
}
