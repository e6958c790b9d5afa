package report

import (
	"regexp"
	"strings"

	"github.com/spigell/interview-conductor/internal/interview"
)

const (
	minKnowledgeGaps = 2
	maxKnowledgeGaps = 5
	maxGapTags       = 6
	maxGapTagLength  = 32
)

var (
	gapFieldSplit   = regexp.MustCompile(`\s*\|\s*`)
	markdownLink    = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
	tagSeparator    = regexp.MustCompile(`[^a-z0-9]+`)
	titlePrefix     = regexp.MustCompile(`(?i)^title:\s*`)
	questionLeadIns = regexp.MustCompile(`(?i)^(what|how|why|when|where|which|can you|could you|would you|do you|have you|explain|describe|tell me about|walk me through)\s+`)
)

// extractKnowledgeGaps reads the "## KNOWLEDGE GAPS" section. Each bullet is
// a pipe-separated record ("Title | Priority: high | Tags: sql, indexes |
// Why: ...") but a bare title on its own also parses. Anything that fails
// the title sanity checks is dropped rather than surfaced half-broken.
func extractKnowledgeGaps(raw string, decision Decision) []KnowledgeGap {
	body := section(raw, "KNOWLEDGE GAPS")
	if body == "" {
		return nil
	}

	var gaps []KnowledgeGap
	seen := map[string]bool{}
	for _, line := range strings.Split(body, "\n") {
		m := bulletPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		gap, ok := parseGap(m[1], decision)
		if !ok {
			continue
		}
		key := strings.ToLower(gap.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		gaps = append(gaps, gap)
		if len(gaps) == maxKnowledgeGaps {
			break
		}
	}
	return gaps
}

func parseGap(entry string, decision Decision) (KnowledgeGap, bool) {
	gap := KnowledgeGap{Priority: defaultGapPriority(decision)}

	for i, field := range gapFieldSplit.Split(entry, -1) {
		field = strings.TrimSpace(boldMarkers.Replace(field))
		lower := strings.ToLower(field)
		switch {
		case strings.HasPrefix(lower, "priority:"):
			gap.Priority = parsePriority(field[len("priority:"):], gap.Priority)
		case strings.HasPrefix(lower, "tags:"):
			gap.Tags = sanitizeTags(field[len("tags:"):])
		case strings.HasPrefix(lower, "why:"):
			gap.Why = strings.TrimSpace(field[len("why:"):])
			gap.Resources = extractResources(gap.Why)
		case i == 0 || strings.HasPrefix(lower, "title:"):
			gap.Title = normalizeGapTitle(field)
		}
	}

	if !acceptableGapTitle(gap.Title) {
		return KnowledgeGap{}, false
	}
	return gap, true
}

func defaultGapPriority(decision Decision) Priority {
	if decision == DecisionFail {
		return PriorityHigh
	}
	return PriorityMedium
}

func parsePriority(value string, fallback Priority) Priority {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return fallback
	}
}

// sanitizeTags lowercases, slugifies and bounds the tag list. Tags that come
// out empty, over-long or degenerate (runs of dashes) are dropped.
func sanitizeTags(value string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, tag := range strings.Split(value, ",") {
		slug := strings.ToLower(strings.TrimSpace(tag))
		slug = tagSeparator.ReplaceAllString(slug, "-")
		slug = strings.Trim(slug, "-")
		if slug == "" || len(slug) > maxGapTagLength || strings.Contains(slug, "--") {
			continue
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		tags = append(tags, slug)
		if len(tags) == maxGapTags {
			break
		}
	}
	return tags
}

func extractResources(why string) []ResourceLink {
	var links []ResourceLink
	for _, m := range markdownLink.FindAllStringSubmatch(why, -1) {
		links = append(links, ResourceLink{Title: m[1], URL: m[2]})
	}
	return links
}

func normalizeGapTitle(field string) string {
	title := titlePrefix.ReplaceAllString(field, "")
	title = strings.TrimSpace(strings.Trim(title, `"'`))
	return strings.Join(strings.Fields(title), " ")
}

func acceptableGapTitle(title string) bool {
	if len(title) < 5 || len(title) > 64 {
		return false
	}
	if strings.Contains(title, "?") {
		return false
	}
	words := len(strings.Fields(title))
	return words >= 1 && words <= 10
}

// gapSeed maps question keywords to a canned knowledge gap. Checked in order;
// the first match wins.
var gapSeeds = []struct {
	keywords []string
	gap      KnowledgeGap
}{
	{
		keywords: []string{"sql", "database", "query", "index"},
		gap: KnowledgeGap{
			Title: "SQL fundamentals and query design",
			Tags:  []string{"sql", "databases"},
			Why:   "The related interview question did not receive a substantive answer.",
		},
	},
	{
		keywords: []string{"java", "jvm", "garbage collect"},
		gap: KnowledgeGap{
			Title: "Java core concepts and the JVM",
			Tags:  []string{"java", "jvm"},
			Why:   "The related interview question did not receive a substantive answer.",
		},
	},
	{
		keywords: []string{"react", "component", "hook"},
		gap: KnowledgeGap{
			Title: "React component model and hooks",
			Tags:  []string{"react", "frontend"},
			Why:   "The related interview question did not receive a substantive answer.",
		},
	},
	{
		keywords: []string{"http", "rest", "api"},
		gap: KnowledgeGap{
			Title: "HTTP semantics and REST API design",
			Tags:  []string{"http", "api-design"},
			Why:   "The related interview question did not receive a substantive answer.",
		},
	},
	{
		keywords: []string{"concurren", "thread", "goroutine", "lock"},
		gap: KnowledgeGap{
			Title: "Concurrency and synchronization",
			Tags:  []string{"concurrency"},
			Why:   "The related interview question did not receive a substantive answer.",
		},
	},
	{
		keywords: []string{"test", "mock", "coverage"},
		gap: KnowledgeGap{
			Title: "Testing strategy and practices",
			Tags:  []string{"testing"},
			Why:   "The related interview question did not receive a substantive answer.",
		},
	},
}

// supplementGaps tops the extracted list up with question-derived seeds until
// the minimum is reached, keeping the overall cap. Seeding is deterministic:
// questions are walked in the order they were asked.
func supplementGaps(gaps []KnowledgeGap, questions []string, cfg interview.Config, decision Decision) []KnowledgeGap {
	seen := map[string]bool{}
	for _, gap := range gaps {
		seen[strings.ToLower(gap.Title)] = true
	}

	for _, question := range questions {
		if len(gaps) >= minKnowledgeGaps || len(gaps) >= maxKnowledgeGaps {
			break
		}
		gap := seedGapFromQuestion(question, cfg.Position)
		gap.Priority = defaultGapPriority(decision)
		key := strings.ToLower(gap.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		gaps = append(gaps, gap)
	}
	return gaps
}

func seedGapFromQuestion(question, position string) KnowledgeGap {
	lower := strings.ToLower(question)
	for _, seed := range gapSeeds {
		for _, keyword := range seed.keywords {
			if strings.Contains(lower, keyword) {
				return seed.gap
			}
		}
	}

	topic := strings.TrimSpace(questionLeadIns.ReplaceAllString(question, ""))
	topic = strings.TrimRight(topic, "?.! ")
	words := strings.Fields(topic)
	if len(words) > 5 {
		words = words[:5]
	}
	if len(words) == 0 {
		return KnowledgeGap{
			Title: "Core " + position + " topics",
			Why:   "Interview questions in this area did not receive substantive answers.",
		}
	}
	return KnowledgeGap{
		Title: "Review: " + strings.ToLower(strings.Join(words, " ")),
		Why:   "The related interview question did not receive a substantive answer.",
	}
}
