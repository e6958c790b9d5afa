package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
)

func newFallback(t *testing.T) *Fallback {
	t.Helper()

	f, err := NewFallback()
	if err != nil {
		t.Fatalf("decoding the embedded question bank: %v", err)
	}
	return f
}

func TestFallbackBankCoversEveryInterviewType(t *testing.T) {
	t.Parallel()

	f := newFallback(t)

	for _, typ := range []interview.Type{
		interview.TypeTechnical,
		interview.TypeCoding,
		interview.TypeSystemDesign,
		interview.TypeBullet,
	} {
		if _, ok := f.tracks[typ]; !ok {
			t.Fatalf("no question track for %q", typ)
		}
	}
	if f.closing == "" {
		t.Fatalf("expected a closing remark in the bank")
	}
}

func TestFallbackQuestionSequence(t *testing.T) {
	t.Parallel()

	f := newFallback(t)
	cfg := interview.Config{Type: interview.TypeTechnical}
	transcript := &interview.Transcript{}

	first, err := f.NextQuestion(context.Background(), cfg, transcript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transcript.Append(interview.RoleInterviewer, first, false)
	transcript.Append(interview.RoleCandidate, "An answer.", false)

	second, err := f.NextQuestion(context.Background(), cfg, transcript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == first {
		t.Fatalf("expected the second primary question to differ from the first")
	}

	// Re-asking without recording anything is deterministic.
	again, err := f.NextQuestion(context.Background(), cfg, transcript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != second {
		t.Fatalf("expected a deterministic pick, got %q then %q", second, again)
	}
}

func TestFallbackFollowUpsRotate(t *testing.T) {
	t.Parallel()

	f := newFallback(t)
	cfg := interview.Config{Type: interview.TypeTechnical}
	transcript := &interview.Transcript{}

	transcript.Append(interview.RoleInterviewer, "Primary question?", false)

	firstProbe, err := f.NextQuestion(context.Background(), cfg, transcript, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	transcript.Append(interview.RoleInterviewer, firstProbe, true)

	secondProbe, err := f.NextQuestion(context.Background(), cfg, transcript, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondProbe == firstProbe {
		t.Fatalf("expected consecutive follow-up probes to rotate")
	}
}

func TestFallbackUnknownTrackUsesTechnical(t *testing.T) {
	t.Parallel()

	f := newFallback(t)
	transcript := &interview.Transcript{}

	got, err := f.NextQuestion(context.Background(), interview.Config{Type: interview.Type("astrology")}, transcript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := f.NextQuestion(context.Background(), interview.Config{Type: interview.TypeTechnical}, transcript, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected an unknown track to fall back to technical, got %q", got)
	}
}

func TestFallbackAnalysisReportIsParseable(t *testing.T) {
	t.Parallel()

	f := newFallback(t)
	cfg := interview.Config{
		Position:  "Backend Engineer",
		Seniority: interview.SeniorityMid,
		Type:      interview.TypeTechnical,
	}

	transcript := &interview.Transcript{}
	transcript.Append(interview.RoleInterviewer, "What does database indexing do?", false)
	transcript.Append(interview.RoleCandidate, "It lets the engine find rows without a full scan, because the index keeps a sorted structure over the column.", false)

	analysis := classify.New(classify.DefaultPatterns()).Aggregate(transcript)

	raw, err := f.AnalysisReport(context.Background(), cfg, transcript, analysis)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(raw, "DECISION:") {
		t.Fatalf("expected a decision marker in the report:\n%s", raw)
	}
	if !strings.Contains(raw, "/100") {
		t.Fatalf("expected a score in the report:\n%s", raw)
	}
}
