// Package classify labels candidate answers and folds the per-turn labels
// into session-level quality statistics. Everything here is deterministic and
// pure: the same text always produces the same classification, with no model
// involved.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Category is the label assigned to a single candidate answer.
type Category string

const (
	CategoryNoAnswer    Category = "no-answer"
	CategoryGibberish   Category = "gibberish"
	CategoryVeryShort   Category = "very-short"
	CategorySubstantive Category = "substantive"
)

// Classification is derived purely from an answer's text and never mutated.
type Classification struct {
	Category  Category
	WordCount int
	CharCount int
}

// QualitySignals describe what a substantive answer contains. The indicator
// score feeds the follow-up heuristic.
type QualitySignals struct {
	HasCodeExample     bool
	HasExplanation     bool
	MentionsTechnology bool
	Length             int
	IndicatorScore     int
}

// Classifier labels answers against an immutable pattern table.
type Classifier struct {
	patterns Patterns
}

// New returns a classifier built from the given pattern table.
func New(patterns Patterns) *Classifier {
	return &Classifier{patterns: patterns}
}

// Classify resolves the text to exactly one category. Ambiguity is never an
// error: substantive is the safe fallback.
func (c *Classifier) Classify(text string) Classification {
	trimmed := strings.TrimSpace(text)
	wordCount := len(strings.Fields(trimmed))
	charCount := utf8.RuneCountInString(trimmed)

	switch {
	case trimmed == "" || matchesAny(trimmed, c.patterns.NoAnswer):
		return Classification{Category: CategoryNoAnswer, WordCount: wordCount, CharCount: charCount}
	case isRepeatedRun(trimmed) || matchesAny(trimmed, c.patterns.Gibberish):
		return Classification{Category: CategoryGibberish, WordCount: wordCount, CharCount: charCount}
	case charCount < c.patterns.MinChars || wordCount < c.patterns.MinWords:
		return Classification{Category: CategoryVeryShort, WordCount: wordCount, CharCount: charCount}
	default:
		return Classification{Category: CategorySubstantive, WordCount: wordCount, CharCount: charCount}
	}
}

// IsUnknown reports whether the answer indicates a lack of knowledge: a
// no-answer or gibberish classification, or an unknown marker embedded in a
// longer sentence. The orchestrator moves on instead of following up on
// these.
func (c *Classifier) IsUnknown(text string) bool {
	classification := c.Classify(text)
	if classification.Category == CategoryNoAnswer || classification.Category == CategoryGibberish {
		return true
	}

	lower := strings.ToLower(text)
	for _, marker := range c.patterns.UnknownMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return strings.TrimSpace(text) == SkipMarker
}

// Signals extracts the quality signals of an answer. Weights: code +2,
// explanation +2, technology mention +1, substantial-but-not-rambling
// length +2.
func (c *Classifier) Signals(text string) QualitySignals {
	length := utf8.RuneCountInString(strings.TrimSpace(text))

	signals := QualitySignals{
		HasCodeExample:     c.patterns.Code.MatchString(text),
		HasExplanation:     c.patterns.Explanation.MatchString(text),
		MentionsTechnology: c.patterns.Technology.MatchString(text),
		Length:             length,
	}

	if signals.HasCodeExample {
		signals.IndicatorScore += 2
	}
	if signals.HasExplanation {
		signals.IndicatorScore += 2
	}
	if signals.MentionsTechnology {
		signals.IndicatorScore++
	}
	if length >= 100 && length <= 500 {
		signals.IndicatorScore += 2
	}

	return signals
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// isRepeatedRun reports whether the text is one character repeated six or
// more times ("aaaaaa"). RE2 cannot express this with a backreference.
func isRepeatedRun(text string) bool {
	runes := []rune(text)
	if len(runes) < 6 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
