package session

import (
	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
)

const (
	// followUpThreshold is the rule-sum at which a follow-up is generated.
	followUpThreshold = 2
	// maxConsecutiveFollowUps caps drilling on one topic.
	maxConsecutiveFollowUps = 2
	// minFollowUpLength is the shortest answer worth probing.
	minFollowUpLength = 10
)

// RuleContext is the input every follow-up rule scores against.
type RuleContext struct {
	Config               interview.Config
	Signals              classify.QualitySignals
	ConsecutiveFollowUps int
}

// Rule contributes one signed weight to the follow-up score. Rules are
// independent and order-insensitive; the list exists so each contribution can
// be named, logged and tested on its own.
type Rule struct {
	Name   string
	Weight func(ctx RuleContext) int
}

// DefaultRules returns the production rule list.
func DefaultRules() []Rule {
	return []Rule{
		{
			// A mid-length answer leaves the most room for probing; very
			// short ones rarely contain a thread worth pulling.
			Name: "length-band",
			Weight: func(ctx RuleContext) int {
				switch {
				case ctx.Signals.Length >= 100 && ctx.Signals.Length <= 500:
					return 2
				case ctx.Signals.Length > 500:
					return 1
				case ctx.Signals.Length < 50:
					return -1
				default:
					return 0
				}
			},
		},
		{
			Name: "quality-indicators",
			Weight: func(ctx RuleContext) int {
				return ctx.Signals.IndicatorScore
			},
		},
		{
			Name: "consecutive-follow-up-cap",
			Weight: func(ctx RuleContext) int {
				if ctx.ConsecutiveFollowUps >= maxConsecutiveFollowUps {
					return -2
				}
				return 0
			},
		},
		{
			Name: "coding-code-example",
			Weight: func(ctx RuleContext) int {
				if ctx.Config.Type == interview.TypeCoding && ctx.Signals.HasCodeExample {
					return 1
				}
				return 0
			},
		},
		{
			Name: "system-design-depth",
			Weight: func(ctx RuleContext) int {
				if ctx.Config.Type == interview.TypeSystemDesign && ctx.Signals.Length > 200 {
					return 1
				}
				return 0
			},
		},
		{
			// Flash mode favors pace over depth.
			Name: "flash-pace",
			Weight: func(ctx RuleContext) int {
				if ctx.Config.Mode == interview.ModeFlash && ctx.Signals.Length > 150 {
					return -1
				}
				return 0
			},
		},
		{
			// A terse answer from a senior candidate is suspicious.
			Name: "senior-terse",
			Weight: func(ctx RuleContext) int {
				if ctx.Config.Seniority == interview.SenioritySenior && ctx.Signals.Length < 100 {
					return 1
				}
				return 0
			},
		},
		{
			Name: "junior-verbose",
			Weight: func(ctx RuleContext) int {
				if ctx.Config.Seniority == interview.SeniorityJunior && ctx.Signals.Length > 300 {
					return 1
				}
				return 0
			},
		},
	}
}
