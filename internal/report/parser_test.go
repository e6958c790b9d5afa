package report

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
)

func midConfig() interview.Config {
	return interview.Config{
		Position:  "Backend Engineer",
		Seniority: interview.SeniorityMid,
		Type:      interview.TypeTechnical,
	}
}

// healthyAnalysis supports scores up to 96.
func healthyAnalysis() classify.Analysis {
	return classify.Analysis{
		TotalQuestions: 8,
		TotalResponses: 8,
		Substantive:    8,
		QualityScore:   80,
	}
}

// poorAnalysis caps at 25: only 2 of 8 questions answered substantively.
func poorAnalysis() classify.Analysis {
	return classify.Analysis{
		TotalQuestions: 8,
		TotalResponses: 8,
		Substantive:    2,
		NoAnswer:       6,
		QualityScore:   12.5,
	}
}

const sampleReport = `## INTERVIEW RESULT
**DECISION: PASS**
Score: 85/100

## WHY THIS DECISION
Strong fundamentals with consistent depth.

## DETAILED ANALYSIS
**Strengths:**
- Clear explanation of indexing trade-offs
- Communicated design decisions well

**Critical Weaknesses:**
- None demonstrated

### Areas for Growth
- Distributed systems depth

## KNOWLEDGE GAPS
- SQL query planning | Priority: high | Tags: SQL, Query Plans | Why: Could not explain EXPLAIN output. See [Use the Index, Luke](https://use-the-index-luke.com)
- Caching strategies | Priority: medium | Tags: caching | Why: Only mentioned TTLs.

## RECOMMENDATIONS
Keep practicing distributed systems design.
`

func TestParseFullReport(t *testing.T) {
	t.Parallel()

	verdict := NewParser(zap.NewNop()).Parse(sampleReport, healthyAnalysis(), midConfig(), nil)

	if verdict.Degraded {
		t.Fatalf("expected a non-degraded verdict")
	}
	if verdict.Score != 85 {
		t.Fatalf("expected score 85, got %d", verdict.Score)
	}
	if verdict.Decision != DecisionPass || !verdict.Passed {
		t.Fatalf("expected PASS, got %s", verdict.Decision)
	}
	if verdict.PassingThreshold != 70 {
		t.Fatalf("expected mid threshold 70, got %d", verdict.PassingThreshold)
	}

	if len(verdict.Strengths) != 2 {
		t.Fatalf("expected 2 strengths, got %v", verdict.Strengths)
	}
	// The placeholder weakness is dropped; the Areas for Growth heading
	// contributes instead.
	if len(verdict.Weaknesses) != 1 || verdict.Weaknesses[0] != "Distributed systems depth" {
		t.Fatalf("unexpected weaknesses: %v", verdict.Weaknesses)
	}

	if len(verdict.KnowledgeGaps) != 2 {
		t.Fatalf("expected 2 knowledge gaps, got %v", verdict.KnowledgeGaps)
	}
	gap := verdict.KnowledgeGaps[0]
	if gap.Title != "SQL query planning" || gap.Priority != PriorityHigh {
		t.Fatalf("unexpected first gap: %+v", gap)
	}
	if len(gap.Tags) != 2 || gap.Tags[0] != "sql" || gap.Tags[1] != "query-plans" {
		t.Fatalf("expected sanitized tags, got %v", gap.Tags)
	}
	if len(gap.Resources) != 1 || gap.Resources[0].URL != "https://use-the-index-luke.com" {
		t.Fatalf("expected a resource link, got %v", gap.Resources)
	}

	if verdict.WhyDecision != "Strong fundamentals with consistent depth." {
		t.Fatalf("unexpected why-decision: %q", verdict.WhyDecision)
	}
	if verdict.Recommendations != "Keep practicing distributed systems design." {
		t.Fatalf("unexpected recommendations: %q", verdict.Recommendations)
	}
	if verdict.Raw != sampleReport {
		t.Fatalf("expected raw report to be preserved")
	}
}

func TestParseCapsInflatedScore(t *testing.T) {
	t.Parallel()

	// A praising report over a transcript of non-answers: the statistics win.
	verdict := NewParser(zap.NewNop()).Parse(sampleReport, poorAnalysis(), midConfig(), nil)

	if verdict.Score != 25 {
		t.Fatalf("expected score capped at 25, got %d", verdict.Score)
	}
	if verdict.Decision != DecisionFail || verdict.Passed {
		t.Fatalf("expected the capped score to fail the mid threshold, got %s", verdict.Decision)
	}
}

func TestParseRecomputesDecisionUpward(t *testing.T) {
	t.Parallel()

	raw := "DECISION: FAIL\nScore: 60/100\n"
	cfg := midConfig()
	cfg.Seniority = interview.SeniorityEntry

	verdict := NewParser(zap.NewNop()).Parse(raw, healthyAnalysis(), cfg, nil)

	if verdict.Score != 60 {
		t.Fatalf("expected score 60, got %d", verdict.Score)
	}
	if verdict.Decision != DecisionPass {
		t.Fatalf("expected the entry threshold (55) to turn the stated FAIL into PASS, got %s", verdict.Decision)
	}
}

func TestParseScoreFallbackPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{
			name:     "explicit score over one hundred",
			raw:      "DECISION: FAIL\nscore: 42/100",
			expected: 42,
		},
		{
			name:     "bare fraction",
			raw:      "DECISION: FAIL\nthe candidate earned 55/100 overall",
			expected: 55,
		},
		{
			name:     "score keyword",
			raw:      "DECISION: FAIL\nfinal score 48",
			expected: 48,
		},
		{
			name:     "points suffix",
			raw:      "DECISION: FAIL\nthe interview earned 33 points total",
			expected: 33,
		},
		{
			name:     "no score at all defaults to zero",
			raw:      "DECISION: FAIL\nno numbers here",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verdict := NewParser(zap.NewNop()).Parse(tt.raw, healthyAnalysis(), midConfig(), nil)
			if verdict.Degraded {
				t.Fatalf("expected a non-degraded verdict")
			}
			if verdict.Score != tt.expected {
				t.Fatalf("expected score %d, got %d", tt.expected, verdict.Score)
			}
		})
	}
}

func TestParseDegradedReports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty report", raw: ""},
		{name: "whitespace only", raw: "   \n\t  "},
		{name: "no marker and no score", raw: "The model rambled about nothing measurable."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verdict := NewParser(zap.NewNop()).Parse(tt.raw, healthyAnalysis(), midConfig(), nil)
			if !verdict.Degraded {
				t.Fatalf("expected a degraded verdict")
			}
			if verdict.Score != 0 || verdict.Decision != DecisionFail {
				t.Fatalf("expected the fixed error verdict, got score %d decision %s", verdict.Score, verdict.Decision)
			}
			if verdict.Raw != tt.raw {
				t.Fatalf("expected raw text preserved")
			}
		})
	}
}

func TestParseListDeduplication(t *testing.T) {
	t.Parallel()

	raw := "DECISION: PASS\nScore: 90/100\n\n**Strengths:**\n- Solid SQL knowledge\n- solid sql knowledge\n- ok\n"

	verdict := NewParser(zap.NewNop()).Parse(raw, healthyAnalysis(), midConfig(), nil)

	if len(verdict.Strengths) != 1 {
		t.Fatalf("expected case-insensitive dedupe and short-item drop, got %v", verdict.Strengths)
	}
}

func TestParseFallbackLists(t *testing.T) {
	t.Parallel()

	raw := "DECISION: FAIL\nScore: 5/100\n"

	verdict := NewParser(zap.NewNop()).Parse(raw, classify.Analysis{TotalQuestions: 8, TotalResponses: 8, NoAnswer: 8}, midConfig(), nil)

	if len(verdict.Strengths) == 0 {
		t.Fatalf("expected a fallback strengths list")
	}
	if len(verdict.Weaknesses) == 0 {
		t.Fatalf("expected a fallback weaknesses list")
	}
	found := false
	for _, w := range verdict.Weaknesses {
		if strings.Contains(w, "Backend Engineer") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the fallback weaknesses to be keyed off the position, got %v", verdict.Weaknesses)
	}
}

func TestParsePassRequiresThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seniority interview.Seniority
		score     int
		passed    bool
	}{
		{interview.SeniorityEntry, 55, true},
		{interview.SeniorityEntry, 54, false},
		{interview.SeniorityJunior, 60, true},
		{interview.SeniorityJunior, 59, false},
		{interview.SeniorityMid, 70, true},
		{interview.SeniorityMid, 69, false},
		{interview.SenioritySenior, 80, true},
		{interview.SenioritySenior, 79, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.seniority), func(t *testing.T) {
			t.Parallel()
			cfg := midConfig()
			cfg.Seniority = tt.seniority

			raw := fmt.Sprintf("DECISION: PASS\nScore: %d/100\n", tt.score)
			analysis := classify.Analysis{TotalQuestions: 8, TotalResponses: 8, Substantive: 8, QualityScore: 100}

			verdict := NewParser(zap.NewNop()).Parse(raw, analysis, cfg, nil)
			if verdict.Passed != tt.passed {
				t.Fatalf("score %d at %s: expected passed=%v, got %v", tt.score, tt.seniority, tt.passed, verdict.Passed)
			}
		})
	}
}
