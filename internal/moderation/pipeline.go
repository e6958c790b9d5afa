// Package moderation screens candidate utterances before they reach the
// classifier. Four independent detectors run on every message: language-switch
// requests and profanity are hard stops, inappropriate behavior escalates a
// warning counter, and disallowed topics only redirect the conversation. A
// separate redaction pass strips PII before anything is logged or persisted.
package moderation

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Reason explains why a session was terminated by moderation.
type Reason string

const (
	ReasonLanguage  Reason = "language"
	ReasonProfanity Reason = "profanity"
	ReasonBehavior  Reason = "inappropriate-behavior"
)

// State carries the moderation counters across turns. WarningCount never
// decreases; once Terminated is set the session is frozen and further reviews
// return the state unchanged.
type State struct {
	WarningCount int    `json:"warning_count"`
	Terminated   bool   `json:"terminated"`
	Reason       Reason `json:"reason,omitempty"`
}

// Result is the verdict for a single utterance.
type Result struct {
	LanguageRequest bool
	Profanity       bool
	DisallowedTopic bool
	Behavior        bool

	// Warning is set when behavior matched but the warning limit has not
	// been reached yet: the turn proceeds with a warning attached.
	Warning bool
}

// Terminates reports whether this result alone ends the session.
func (r Result) Terminates() bool {
	return r.LanguageRequest || r.Profanity || (r.Behavior && !r.Warning)
}

// Pipeline evaluates utterances against an immutable rule set.
type Pipeline struct {
	rules  RuleSet
	logger *zap.Logger
}

// New builds a pipeline. A nil logger is replaced with a no-op one.
func New(rules RuleSet, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rules.WarningLimit <= 0 {
		rules.WarningLimit = DefaultWarningLimit
	}
	return &Pipeline{rules: rules, logger: logger}
}

// Review runs all detectors on the utterance and returns the per-turn result
// together with the advanced state. The detectors themselves are stateless;
// only the warning counter carries over.
func (p *Pipeline) Review(text string, state State) (Result, State) {
	if state.Terminated {
		return Result{}, state
	}

	normalized := strings.ToLower(text)

	if matchAny(normalized, p.rules.LanguageRequest) {
		state.Terminated = true
		state.Reason = ReasonLanguage
		p.logger.Info("terminating session",
			zap.String("reason", string(ReasonLanguage)),
		)
		return Result{LanguageRequest: true}, state
	}

	carveOut := p.securityContext(normalized)

	if !carveOut && matchAny(normalized, p.rules.Profanity) {
		state.Terminated = true
		state.Reason = ReasonProfanity
		p.logger.Info("terminating session",
			zap.String("reason", string(ReasonProfanity)),
		)
		return Result{Profanity: true}, state
	}

	result := Result{
		DisallowedTopic: matchAny(normalized, p.rules.DisallowedTopics),
	}

	if !carveOut && matchAny(normalized, p.rules.Behavior) {
		result.Behavior = true
		state.WarningCount++

		if state.WarningCount >= p.rules.WarningLimit {
			state.Terminated = true
			state.Reason = ReasonBehavior
			p.logger.Info("terminating session",
				zap.String("reason", string(ReasonBehavior)),
				zap.Int("warning_count", state.WarningCount),
			)
			return result, state
		}

		result.Warning = true
		p.logger.Info("behavior warning issued",
			zap.Int("warning_count", state.WarningCount),
			zap.Int("warning_limit", p.rules.WarningLimit),
		)
	}

	return result, state
}

// securityContext reports whether the utterance uses "penetration" in a
// testing context. Such text must never be flagged as profanity or
// harassment.
func (p *Pipeline) securityContext(normalized string) bool {
	if !strings.Contains(normalized, "penetration") && !strings.Contains(normalized, "pentest") && !strings.Contains(normalized, "pen test") && !strings.Contains(normalized, "pen-test") {
		return false
	}
	for _, marker := range p.rules.SecurityContext {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
