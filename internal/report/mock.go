package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
)

// outroMarkers identify interviewer utterances that wrap the session up
// rather than ask anything. They are excluded when questions are extracted
// for gap seeding.
var outroMarkers = []string{
	"that concludes",
	"this concludes",
	"thank you for your time",
	"thanks for your time",
	"we're out of time",
	"that's all the questions",
	"wrap up",
	"best of luck",
}

// ExtractQuestions returns the primary interviewer questions of a session in
// the order they were asked. Follow-ups and closing remarks are skipped.
func ExtractQuestions(transcript *interview.Transcript) []string {
	var questions []string
	for _, u := range transcript.Interviewer() {
		if u.IsFollowUp || isOutro(u.Text) {
			continue
		}
		questions = append(questions, strings.TrimSpace(u.Text))
	}
	return questions
}

func isOutro(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range outroMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Mock produces a deterministic report from the response statistics alone,
// in the same shape the parser reads. It backs demo mode and any run without
// an upstream model; two sessions with equal statistics get byte-identical
// reports.
func Mock(cfg interview.Config, analysis classify.Analysis, questions []string) string {
	score := int(math.Round(analysis.QualityScore * 0.9))
	if ceiling := analysis.MaxAllowedScore(); score > ceiling {
		score = ceiling
	}

	threshold := cfg.Seniority.PassingScore()
	decision := DecisionFail
	if score >= threshold {
		decision = DecisionPass
	}

	var b strings.Builder

	b.WriteString("## INTERVIEW RESULT\n")
	fmt.Fprintf(&b, "**DECISION: %s**\n", decision)
	fmt.Fprintf(&b, "Score: %d/100\n\n", score)

	b.WriteString("## WHY THIS DECISION\n")
	fmt.Fprintf(&b,
		"The candidate answered %d of %d questions substantively (effective response rate %.0f%%). %s The %s threshold for a %s position is %d.\n\n",
		analysis.Substantive, analysis.TotalQuestions, analysis.EffectiveResponseRate,
		cfg.Seniority.Expectation(), cfg.Seniority, cfg.Position, threshold,
	)

	b.WriteString("## DETAILED ANALYSIS\n")
	b.WriteString(mockStrengths(analysis))
	b.WriteString(mockWeaknesses(analysis))

	b.WriteString("## KNOWLEDGE GAPS\n")
	for _, gap := range mockGaps(analysis, cfg, questions, decision) {
		fmt.Fprintf(&b, "- %s | Priority: %s | Tags: %s | Why: %s\n",
			gap.Title, gap.Priority, strings.Join(gap.Tags, ", "), gap.Why)
	}
	b.WriteString("\n")

	b.WriteString("## RECOMMENDATIONS\n")
	b.WriteString(mockRecommendations(cfg, analysis, decision))

	return b.String()
}

func mockStrengths(analysis classify.Analysis) string {
	var b strings.Builder
	b.WriteString("**Strengths:**\n")
	switch {
	case analysis.Substantive >= analysis.TotalQuestions && analysis.TotalQuestions > 0:
		b.WriteString("- Engaged with every question asked\n")
		b.WriteString("- Answers carried enough detail to evaluate\n")
	case analysis.Substantive > 0:
		b.WriteString("- Provided substantive answers to some questions\n")
	default:
		b.WriteString("- None demonstrated in this interview\n")
	}
	if analysis.AverageResponseLength > 150 {
		b.WriteString("- Answered in depth rather than one-liners\n")
	}
	b.WriteString("\n")
	return b.String()
}

func mockWeaknesses(analysis classify.Analysis) string {
	var b strings.Builder
	b.WriteString("**Critical Weaknesses:**\n")
	if analysis.Skipped > 0 {
		fmt.Fprintf(&b, "- Skipped %d question(s) outright\n", analysis.Skipped)
	}
	if analysis.NoAnswer+analysis.Gibberish > 0 {
		fmt.Fprintf(&b, "- %d response(s) carried no evaluable content\n", analysis.NoAnswer+analysis.Gibberish)
	}
	if analysis.VeryShort > 0 {
		fmt.Fprintf(&b, "- %d answer(s) were too short to judge\n", analysis.VeryShort)
	}
	if analysis.PoorResponses() == 0 {
		b.WriteString("- No significant weaknesses in engagement; depth varies by topic\n")
	}
	b.WriteString("\n")
	return b.String()
}

func mockGaps(analysis classify.Analysis, cfg interview.Config, questions []string, decision Decision) []KnowledgeGap {
	var gaps []KnowledgeGap
	if analysis.PoorResponses() > 0 {
		for _, question := range questions {
			gap := seedGapFromQuestion(question, cfg.Position)
			gap.Priority = defaultGapPriority(decision)
			gaps = append(gaps, gap)
			if len(gaps) == maxKnowledgeGaps {
				break
			}
		}
	}
	if len(gaps) == 0 {
		gaps = append(gaps, KnowledgeGap{
			Title:    "Deepen advanced " + cfg.Position + " topics",
			Priority: PriorityLow,
			Tags:     sanitizeTags(cfg.Position),
			Why:      "Solid overall performance; advanced depth is the next step.",
		})
	}
	return gaps
}

func mockRecommendations(cfg interview.Config, analysis classify.Analysis, decision Decision) string {
	if decision == DecisionPass {
		return fmt.Sprintf(
			"Proceed to the next stage. Keep building depth beyond the %s-level expectations for %s roles.\n",
			cfg.Seniority, cfg.Position,
		)
	}
	if analysis.Substantive == 0 {
		return fmt.Sprintf(
			"Not ready for a %s %s interview. Build fundamentals first and practice answering questions out loud before reapplying.\n",
			cfg.Seniority, cfg.Position,
		)
	}
	return fmt.Sprintf(
		"Close the listed knowledge gaps and practice structured answers. Reapply for a %s %s role once the high-priority gaps are covered.\n",
		cfg.Seniority, cfg.Position,
	)
}
