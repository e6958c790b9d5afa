package report

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
)

var (
	decisionPattern = regexp.MustCompile(`(?i)\*{0,2}DECISION:\*{0,2}\s*\*{0,2}(PASS|FAIL)\*{0,2}`)

	// Score shapes in decreasing order of confidence. The first pattern that
	// yields a value in [0, 100] wins.
	scorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)score:\s*\*{0,2}(\d{1,3})\s*/\s*100`),
		regexp.MustCompile(`(\d{1,3})\s*/\s*100`),
		regexp.MustCompile(`(?i)\bscore[:\s]+(\d{1,3})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,3})\s*points?\b`),
	}

	bulletPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d{1,2}\.)\s+(.*)$`)
	boldMarkers   = strings.NewReplacer("**", "", "__", "")

	placeholderPrefixes = []string{
		"none demonstrated",
		"no significant",
		"not applicable",
	}
	placeholderExact = []string{"none", "n/a", "-"}
)

// Parser reconciles the upstream model's free-form assessment text with the
// locally computed response statistics. The statistics always win: the score
// is clamped to the anti-inflation ceiling and the pass/fail decision is
// recomputed from the clamped score, regardless of what the report claims.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// Parse never returns an error. A report with no recognizable decision marker
// and no score shape is structurally unusable; the result is then the
// degraded verdict (score 0, FAIL, Degraded set, raw text preserved) and the
// caller decides how to present it. questions are the primary interviewer
// questions of the session, used only to seed fallback knowledge gaps; nil is
// fine.
func (p *Parser) Parse(raw string, analysis classify.Analysis, cfg interview.Config, questions []string) *Verdict {
	threshold := cfg.Seniority.PassingScore()

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		p.logger.Warn("analysis report is empty, producing degraded verdict")
		return degradedVerdict(raw, threshold)
	}

	statedDecision, decisionFound := extractDecision(trimmed)
	score, scoreFound := extractScore(trimmed)

	if !decisionFound && !scoreFound {
		p.logger.Warn("analysis report has no decision marker and no score, producing degraded verdict",
			zap.Int("report_length", len(raw)),
		)
		return degradedVerdict(raw, threshold)
	}

	if ceiling := analysis.MaxAllowedScore(); score > ceiling {
		p.logger.Warn("report score exceeds response-quality ceiling, capping",
			zap.Int("reported_score", score),
			zap.Int("ceiling", ceiling),
			zap.Int("substantive_responses", analysis.Substantive),
			zap.Int("total_questions", analysis.TotalQuestions),
		)
		score = ceiling
	}

	decision := DecisionFail
	if score >= threshold {
		decision = DecisionPass
	}
	if decisionFound && statedDecision != decision {
		p.logger.Warn("report decision disagrees with capped score, recomputed",
			zap.String("stated", string(statedDecision)),
			zap.String("recomputed", string(decision)),
			zap.Int("score", score),
			zap.Int("threshold", threshold),
		)
	}

	strengths := extractList(trimmed, "Strengths")
	if len(strengths) == 0 {
		strengths = fallbackStrengths(analysis)
	}

	weaknesses := extractList(trimmed, "Critical Weaknesses", "Weaknesses", "Areas for Growth")
	if len(weaknesses) == 0 {
		weaknesses = fallbackWeaknesses(cfg, analysis)
	}

	gaps := extractKnowledgeGaps(trimmed, decision)
	gaps = supplementGaps(gaps, questions, cfg, decision)

	return &Verdict{
		Score:            score,
		Decision:         decision,
		Passed:           decision == DecisionPass,
		PassingThreshold: threshold,
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		KnowledgeGaps:    gaps,
		WhyDecision:      section(trimmed, "WHY THIS DECISION"),
		Recommendations:  section(trimmed, "RECOMMENDATIONS"),
		DetailedAnalysis: section(trimmed, "DETAILED ANALYSIS"),
		Raw:              raw,
	}
}

func degradedVerdict(raw string, threshold int) *Verdict {
	return &Verdict{
		Score:            0,
		Decision:         DecisionFail,
		Passed:           false,
		PassingThreshold: threshold,
		Strengths:        []string{"Unable to assess: the analysis report could not be parsed"},
		Weaknesses:       []string{"Unable to assess: the analysis report could not be parsed"},
		Raw:              raw,
		Degraded:         true,
	}
}

func extractDecision(raw string) (Decision, bool) {
	m := decisionPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	if strings.EqualFold(m[1], "PASS") {
		return DecisionPass, true
	}
	return DecisionFail, true
}

func extractScore(raw string) (int, bool) {
	for _, pattern := range scorePatterns {
		for _, m := range pattern.FindAllStringSubmatch(raw, -1) {
			n, err := strconv.Atoi(m[1])
			if err == nil && n >= 0 && n <= 100 {
				return n, true
			}
		}
	}
	return 0, false
}

// section returns the body of a "## HEADING" markdown section, trimmed. The
// body runs until the next heading or the end of the report.
func section(raw, heading string) string {
	pattern := regexp.MustCompile(`(?is)(?:^|\n)##+\s*` + regexp.QuoteMeta(heading) + `\s*:?\s*\n(.*?)(?:\n##|\z)`)
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractList collects bullet items under any of the given labels, in either
// of the two shapes the upstream model produces: a bold inline label
// ("**Strengths:**") or a markdown heading ("### Strengths"). Labels may
// occur several times (once per category section); all occurrences
// contribute. Items are deduplicated case-insensitively and placeholder
// entries are dropped.
func extractList(raw string, labels ...string) []string {
	var bodies []string
	for _, label := range labels {
		quoted := regexp.QuoteMeta(label)

		bold := regexp.MustCompile(`(?is)\*\*\s*` + quoted + `\s*:?\s*\*\*:?\s*\n?(.*?)(?:\n\s*\n|\n\*\*|\n##|\z)`)
		for _, m := range bold.FindAllStringSubmatch(raw, -1) {
			bodies = append(bodies, m[1])
		}

		heading := regexp.MustCompile(`(?is)(?:^|\n)##+\s*` + quoted + `\s*:?\s*\n(.*?)(?:\n##|\z)`)
		for _, m := range heading.FindAllStringSubmatch(raw, -1) {
			bodies = append(bodies, m[1])
		}
	}

	var items []string
	seen := map[string]bool{}
	for _, body := range bodies {
		for _, line := range strings.Split(body, "\n") {
			m := bulletPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			item := strings.TrimSpace(boldMarkers.Replace(m[1]))
			if len(item) < 4 || isPlaceholder(item) {
				continue
			}
			key := strings.ToLower(item)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, item)
		}
	}
	return items
}

func isPlaceholder(item string) bool {
	lower := strings.ToLower(item)
	for _, prefix := range placeholderPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, exact := range placeholderExact {
		if lower == exact {
			return true
		}
	}
	return false
}

func fallbackStrengths(analysis classify.Analysis) []string {
	if analysis.Substantive > 0 {
		return []string{"Provided substantive answers to some questions"}
	}
	return []string{"No significant strengths demonstrated in this interview"}
}

func fallbackWeaknesses(cfg interview.Config, analysis classify.Analysis) []string {
	if analysis.Substantive == 0 {
		return []string{
			"Fundamental knowledge gaps across all areas",
			"Review core " + cfg.Position + " concepts before reapplying",
		}
	}
	return []string{"Deepen practical knowledge of core " + cfg.Position + " topics"}
}
