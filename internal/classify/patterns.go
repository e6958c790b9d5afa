package classify

import "regexp"

// SkipMarker is the literal the hosting UI substitutes when a candidate skips
// a question instead of answering it.
const SkipMarker = "[Question skipped]"

// Patterns is the immutable pattern table the classifier is built from. It is
// compiled once, never mutated, and may be shared across sessions. Tests can
// substitute a minimal table.
type Patterns struct {
	// NoAnswer matches skip markers, "I don't know" phrasings, hedges,
	// filler interjections and bare punctuation.
	NoAnswer []*regexp.Regexp
	// Gibberish matches all-symbol strings, bare acknowledgements, single
	// digits and single letters. Repeated single-character runs are handled
	// separately since RE2 has no backreferences.
	Gibberish []*regexp.Regexp

	// UnknownMarkers are substrings that mark an answer as a non-answer even
	// when embedded in a longer sentence.
	UnknownMarkers []string

	// Code, Explanation and Technology drive the quality signals of a
	// substantive answer.
	Code        *regexp.Regexp
	Explanation *regexp.Regexp
	Technology  *regexp.Regexp

	// MinChars and MinWords separate very-short answers from substantive
	// ones.
	MinChars int
	MinWords int
}

// DefaultPatterns returns the production pattern table.
func DefaultPatterns() Patterns {
	return Patterns{
		NoAnswer: compileAll(
			`(?i)^\s*\[question skipped\]\s*$`,
			`(?i)^\s*skip(?:ped)?\s*$`,
			`(?i)^\s*pass\s*$`,
			`(?i)^\s*next\s*$`,
			`(?i)^\s*i\s*don'?t\s*know\s*\.?$`,
			`(?i)^\s*idk\s*\.?$`,
			`(?i)^\s*dunno\s*\.?$`,
			`(?i)^\s*no\s*idea\s*\.?$`,
			`(?i)^\s*not\s*sure\s*\.?$`,
			`(?i)^\s*i'?m\s*not\s*sure\s*\.?$`,
			`(?i)^\s*i\s*have\s*no\s*idea\s*\.?$`,
			`(?i)^\s*don'?t\s*know\s*\.?$`,
			`(?i)^\s*no\s*clue\s*\.?$`,
			`(?i)^\s*unsure\s*\.?$`,
			`(?i)^\s*unknown\s*\.?$`,
			`(?i)^\s*maybe\s*\.?$`,
			`(?i)^\s*perhaps\s*\.?$`,
			`(?i)^\s*possibly\s*\.?$`,
			`(?i)^\s*i\s*think\s*\.?$`,
			`(?i)^\s*not\s*really\s*\.?$`,
			`(?i)^\s*kind\s*of\s*\.?$`,
			`(?i)^\s*sort\s*of\s*\.?$`,
			`(?i)^\s*um+\s*\.?$`,
			`(?i)^\s*uh+\s*\.?$`,
			`(?i)^\s*er+\s*\.?$`,
			`(?i)^\s*hmm+\s*\.?$`,
			`(?i)^\s*well+\s*\.?$`,
			`^\s*\.+\s*$`,
			`^\s*\?+\s*$`,
		),
		Gibberish: compileAll(
			`^[^a-zA-Z0-9\s]{5,}$`,
			`(?i)^\s*lol+\s*$`,
			`(?i)^\s*haha+\s*$`,
			`(?i)^\s*ok+\s*$`,
			`(?i)^\s*okay+\s*$`,
			`(?i)^\s*yes\s*$`,
			`(?i)^\s*no\s*$`,
			`(?i)^\s*nope\s*$`,
			`(?i)^\s*yep\s*$`,
			`(?i)^\s*sure\s*$`,
			`(?i)^\s*fine\s*$`,
			`(?i)^\s*whatever\s*$`,
			`^[0-9]+$`,
			`^[a-z]$`,
		),
		UnknownMarkers: []string{
			"don't know",
			"dont know",
			"not sure",
			"idk",
			"no idea",
		},
		Code:        regexp.MustCompile("```|\\bfunction\\b|\\bclass\\b|\\bconst\\b|\\blet\\b|\\bvar\\b|\\bfunc\\b|[{}]"),
		Explanation: regexp.MustCompile(`(?i)\b(because|reason|why|how|when|since|due to)\b`),
		Technology:  regexp.MustCompile(`(?i)\b(react|javascript|typescript|node|go|golang|python|sql|api|database)\b`),
		MinChars:    20,
		MinWords:    4,
	}
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(expr))
	}
	return compiled
}
