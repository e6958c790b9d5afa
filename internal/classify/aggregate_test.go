package classify

import (
	"testing"

	"github.com/spigell/interview-conductor/internal/interview"
)

const substantiveAnswer = "I would add a covering index on the user_id column because every request filters on it, and measure the query plan before and after."

func buildTranscript(t *testing.T, answers []string) *interview.Transcript {
	t.Helper()

	transcript := &interview.Transcript{}
	for _, answer := range answers {
		transcript.Append(interview.RoleInterviewer, "Question", false)
		transcript.Append(interview.RoleCandidate, answer, false)
	}
	return transcript
}

func TestAggregateAllNoAnswers(t *testing.T) {
	t.Parallel()

	c := New(DefaultPatterns())

	answers := make([]string, 8)
	for i := range answers {
		answers[i] = "I don't know"
	}

	analysis := c.Aggregate(buildTranscript(t, answers))

	if analysis.TotalQuestions != 8 {
		t.Fatalf("expected 8 questions, got %d", analysis.TotalQuestions)
	}
	if analysis.Substantive != 0 {
		t.Fatalf("expected 0 substantive responses, got %d", analysis.Substantive)
	}
	if analysis.NoAnswer != 8 {
		t.Fatalf("expected 8 no-answers, got %d", analysis.NoAnswer)
	}
	if analysis.QualityScore != 0 {
		t.Fatalf("expected quality score 0, got %v", analysis.QualityScore)
	}
	if got := analysis.MaxAllowedScore(); got != 10 {
		t.Fatalf("expected ceiling 10 for all non-answers, got %d", got)
	}
}

func TestAggregateSixOfEightSubstantive(t *testing.T) {
	t.Parallel()

	c := New(DefaultPatterns())

	answers := []string{
		substantiveAnswer,
		substantiveAnswer,
		substantiveAnswer,
		substantiveAnswer,
		substantiveAnswer,
		substantiveAnswer,
		"idk",
		"[Question skipped]",
	}

	analysis := c.Aggregate(buildTranscript(t, answers))

	if analysis.Substantive != 6 {
		t.Fatalf("expected 6 substantive responses, got %d", analysis.Substantive)
	}
	if analysis.Skipped != 1 || analysis.NoAnswer != 1 {
		t.Fatalf("expected 1 skipped and 1 no-answer, got %d and %d", analysis.Skipped, analysis.NoAnswer)
	}
	if analysis.EffectiveResponseRate != 75 {
		t.Fatalf("expected effective response rate 75, got %v", analysis.EffectiveResponseRate)
	}

	// quality = 6/8*100 - 2/8*50 = 62.5
	if analysis.QualityScore != 62.5 {
		t.Fatalf("expected quality score 62.5, got %v", analysis.QualityScore)
	}

	ceiling := analysis.MaxAllowedScore()
	if ceiling < 60 || ceiling > 100 {
		t.Fatalf("expected ceiling in [60, 100] for a 75%% substantive rate, got %d", ceiling)
	}
}

func TestAggregateSkipMarkerCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := New(DefaultPatterns())
	analysis := c.Aggregate(buildTranscript(t, []string{"[question skipped]"}))

	if analysis.Skipped != 1 {
		t.Fatalf("expected skip marker to be counted regardless of case, got %d", analysis.Skipped)
	}
}

func TestAggregateIgnoresFollowUpQuestions(t *testing.T) {
	t.Parallel()

	c := New(DefaultPatterns())

	transcript := &interview.Transcript{}
	transcript.Append(interview.RoleInterviewer, "Primary question", false)
	transcript.Append(interview.RoleCandidate, substantiveAnswer, false)
	transcript.Append(interview.RoleInterviewer, "Follow-up probe", true)
	transcript.Append(interview.RoleCandidate, substantiveAnswer, false)

	analysis := c.Aggregate(transcript)

	if analysis.TotalQuestions != 1 {
		t.Fatalf("expected follow-ups to be excluded from the question count, got %d", analysis.TotalQuestions)
	}
	if analysis.TotalResponses != 2 {
		t.Fatalf("expected 2 responses, got %d", analysis.TotalResponses)
	}
}

func TestMaxAllowedScoreTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		analysis Analysis
		expected int
	}{
		{
			name:     "no substantive responses",
			analysis: Analysis{TotalQuestions: 8, Substantive: 0, QualityScore: 90},
			expected: 10,
		},
		{
			name:     "under thirty percent",
			analysis: Analysis{TotalQuestions: 8, Substantive: 2, QualityScore: 90},
			expected: 25,
		},
		{
			name:     "under fifty percent",
			analysis: Analysis{TotalQuestions: 8, Substantive: 3, QualityScore: 90},
			expected: 40,
		},
		{
			name:     "under seventy percent",
			analysis: Analysis{TotalQuestions: 8, Substantive: 5, QualityScore: 90},
			expected: 60,
		},
		{
			name:     "healthy rate scales with quality",
			analysis: Analysis{TotalQuestions: 8, Substantive: 7, QualityScore: 70},
			expected: 84,
		},
		{
			name:     "healthy rate capped at one hundred",
			analysis: Analysis{TotalQuestions: 8, Substantive: 8, QualityScore: 95},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.analysis.MaxAllowedScore(); got != tt.expected {
				t.Fatalf("expected ceiling %d, got %d", tt.expected, got)
			}
		})
	}
}
