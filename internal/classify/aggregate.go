package classify

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/spigell/interview-conductor/internal/interview"
)

// Analysis holds the session-level response statistics. It is always rebuilt
// from the whole transcript, never patched incrementally, so it cannot drift
// from the conversation it describes.
type Analysis struct {
	TotalQuestions int `json:"total_questions"`
	TotalResponses int `json:"total_responses"`

	Skipped     int `json:"skipped"`
	NoAnswer    int `json:"no_answer"`
	Gibberish   int `json:"gibberish"`
	VeryShort   int `json:"very_short"`
	Substantive int `json:"substantive"`

	AverageResponseLength float64 `json:"average_response_length"`
	EffectiveResponseRate float64 `json:"effective_response_rate"`
	QualityScore          float64 `json:"quality_score"`
}

// Aggregate classifies every candidate utterance in the transcript and folds
// the labels into an Analysis. Re-running it is idempotent and side-effect
// free.
func (c *Classifier) Aggregate(transcript *interview.Transcript) Analysis {
	analysis := Analysis{}

	for _, u := range transcript.Interviewer() {
		if !u.IsFollowUp {
			analysis.TotalQuestions++
		}
	}

	totalLength := 0
	for _, u := range transcript.Candidate() {
		content := strings.TrimSpace(u.Text)
		analysis.TotalResponses++
		totalLength += utf8.RuneCountInString(content)

		if strings.EqualFold(content, SkipMarker) {
			analysis.Skipped++
			continue
		}

		switch c.Classify(content).Category {
		case CategoryNoAnswer:
			analysis.NoAnswer++
		case CategoryGibberish:
			analysis.Gibberish++
		case CategoryVeryShort:
			analysis.VeryShort++
		default:
			analysis.Substantive++
		}
	}

	if analysis.TotalResponses > 0 {
		analysis.AverageResponseLength = float64(totalLength) / float64(analysis.TotalResponses)
		analysis.EffectiveResponseRate = float64(analysis.Substantive) / float64(analysis.TotalResponses) * 100
	}

	questions := float64(max(analysis.TotalQuestions, 1))
	poor := float64(analysis.PoorResponses())
	quality := float64(analysis.Substantive)/questions*100 - poor/questions*50
	analysis.QualityScore = math.Max(0, math.Min(100, quality))

	return analysis
}

// PoorResponses counts every answer that carried no evaluable content.
func (a Analysis) PoorResponses() int {
	return a.Skipped + a.NoAnswer + a.Gibberish + a.VeryShort
}

// MaxAllowedScore is the anti-inflation ceiling applied to the upstream
// report's score. It depends only on the response statistics, so a report
// praising a transcript full of non-answers cannot push the verdict up.
func (a Analysis) MaxAllowedScore() int {
	if a.Substantive == 0 {
		return 10
	}

	rate := float64(a.Substantive) / float64(max(a.TotalQuestions, 1))
	switch {
	case rate < 0.3:
		return 25
	case rate < 0.5:
		return 40
	case rate < 0.7:
		return 60
	default:
		return min(100, int(math.Round(a.QualityScore*1.2)))
	}
}
