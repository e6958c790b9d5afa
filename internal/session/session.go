// Package session implements the finite-state controller that drives one
// interview. Given the latest answer's moderation verdict and classification
// plus the session counters, it decides the next action: ask a follow-up,
// advance to the next planned question, close out, or terminate. It never
// decides question content; that belongs to the hosting prompt builder.
package session

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
	"github.com/spigell/interview-conductor/internal/moderation"
)

// State is the controller state between turns.
type State string

const (
	StateAwaitingFirstQuestion State = "awaiting-first-question"
	StateAwaitingAnswer        State = "awaiting-answer"
	StateGeneratingFollowUp    State = "generating-follow-up"
	StateAdvancingQuestion     State = "advancing-question"
	StateClosing               State = "closing"
	StateComplete              State = "complete"
	StateTerminated            State = "terminated"
)

// NextAction tells the caller what to request from the prompt builder next.
type NextAction string

const (
	ActionAskFollowUp NextAction = "ask-followup"
	ActionAdvance     NextAction = "advance"
	ActionClose       NextAction = "close"
	ActionTerminate   NextAction = "terminate"
)

// Decision is the per-turn outbound contract.
type Decision struct {
	NextAction        NextAction                `json:"next_action"`
	TerminationReason moderation.Reason         `json:"termination_reason,omitempty"`
	Warning           bool                      `json:"warning,omitempty"`
	Redirect          bool                      `json:"redirect,omitempty"`
	Counters          interview.SessionCounters `json:"counters"`
	Moderation        moderation.State          `json:"moderation"`
}

// ErrFrozen is returned when a turn arrives after the session reached a
// terminal state.
var ErrFrozen = errors.New("session is frozen")

// Session owns all per-conversation state. It must be driven by a single
// goroutine; independent sessions share only the read-only pattern tables.
type Session struct {
	id     string
	cfg    interview.Config
	logger *zap.Logger

	classifier *classify.Classifier
	pipeline   *moderation.Pipeline
	rules      []Rule

	transcript interview.Transcript
	counters   interview.SessionCounters
	modState   moderation.State
	state      State
}

// New validates the config and builds a session in its initial state.
func New(cfg interview.Config, classifier *classify.Classifier, pipeline *moderation.Pipeline, logger *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if pipeline == nil {
		return nil, errors.New("moderation pipeline is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New().String()

	return &Session{
		id:         id,
		cfg:        cfg,
		logger:     logger.With(zap.String("session_id", id)),
		classifier: classifier,
		pipeline:   pipeline,
		rules:      DefaultRules(),
		counters:   interview.SessionCounters{TotalPlanned: cfg.QuestionBudget()},
		state:      StateAwaitingFirstQuestion,
	}, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Config() interview.Config { return s.cfg }

func (s *Session) State() State { return s.state }

func (s *Session) Counters() interview.SessionCounters { return s.counters }

func (s *Session) ModerationState() moderation.State { return s.modState }

// Transcript exposes the append-only conversation record.
func (s *Session) Transcript() *interview.Transcript { return &s.transcript }

// RecordQuestion appends an interviewer question. Primary questions consume
// the budget and reset the consecutive follow-up counter; follow-ups extend
// it.
func (s *Session) RecordQuestion(text string, followUp bool) error {
	if s.frozen() {
		return ErrFrozen
	}

	s.transcript.Append(interview.RoleInterviewer, text, followUp)
	if followUp {
		s.counters.ConsecutiveFollowUps++
	} else {
		s.counters.AskedQuestions++
		s.counters.ConsecutiveFollowUps = 0
	}
	s.state = StateAwaitingAnswer
	return nil
}

// RecordFallbackQuestion appends a primary question without consuming the
// budget. The hosting application calls this when the model invocation timed
// out and a canned question was substituted: no real question was asked, so
// the plan is not advanced.
func (s *Session) RecordFallbackQuestion(text string) error {
	if s.frozen() {
		return ErrFrozen
	}

	s.transcript.Append(interview.RoleInterviewer, text, false)
	s.counters.ConsecutiveFollowUps = 0
	s.state = StateAwaitingAnswer
	return nil
}

// RecordClosing appends the closing remark and completes the session.
func (s *Session) RecordClosing(text string) error {
	if s.frozen() {
		return ErrFrozen
	}

	s.transcript.Append(interview.RoleInterviewer, text, true)
	s.state = StateComplete
	return nil
}

// HandleAnswer processes one candidate utterance and decides the next action.
// The answer passes through the moderation gate first, then the classifier,
// then the follow-up heuristic. The redacted text, not the original, is what
// lands in the transcript.
func (s *Session) HandleAnswer(text string) (Decision, error) {
	if s.frozen() {
		return Decision{}, ErrFrozen
	}
	if s.state != StateAwaitingAnswer && s.state != StateClosing {
		return Decision{}, errors.New("no question is awaiting an answer")
	}

	sanitized, redacted := moderation.Redact(text)
	if redacted {
		s.logger.Info("privacy redaction applied",
			zap.Int("original_length", utf8.RuneCountInString(text)),
			zap.Int("sanitized_length", utf8.RuneCountInString(sanitized)),
		)
	}
	s.transcript.Append(interview.RoleCandidate, sanitized, false)

	result, modState := s.pipeline.Review(sanitized, s.modState)
	s.modState = modState

	if result.Terminates() {
		s.state = StateTerminated
		return s.decision(Decision{
			NextAction:        ActionTerminate,
			TerminationReason: modState.Reason,
		}), nil
	}

	if s.state == StateClosing {
		// The one answer the closing state accepts.
		s.state = StateComplete
		return s.decision(Decision{NextAction: ActionClose}), nil
	}

	if s.counters.BudgetExhausted() {
		s.state = StateClosing
		return s.decision(Decision{
			NextAction: ActionClose,
			Warning:    result.Warning,
			Redirect:   result.DisallowedTopic,
		}), nil
	}

	if s.classifier.IsUnknown(sanitized) {
		// Never drill into a non-answer; move on.
		s.state = StateAdvancingQuestion
		return s.decision(Decision{
			NextAction: ActionAdvance,
			Warning:    result.Warning,
			Redirect:   result.DisallowedTopic,
		}), nil
	}

	if s.shouldFollowUp(sanitized) {
		s.state = StateGeneratingFollowUp
		return s.decision(Decision{
			NextAction: ActionAskFollowUp,
			Warning:    result.Warning,
			Redirect:   result.DisallowedTopic,
		}), nil
	}

	s.state = StateAdvancingQuestion
	return s.decision(Decision{
		NextAction: ActionAdvance,
		Warning:    result.Warning,
		Redirect:   result.DisallowedTopic,
	}), nil
}

// Aggregate recomputes the response statistics from the full transcript.
func (s *Session) Aggregate() classify.Analysis {
	return s.classifier.Aggregate(&s.transcript)
}

func (s *Session) decision(d Decision) Decision {
	d.Counters = s.counters
	d.Moderation = s.modState
	return d
}

func (s *Session) frozen() bool {
	return s.modState.Terminated || s.state == StateTerminated || s.state == StateComplete
}

// shouldFollowUp sums the ordered rule list once and compares against the
// threshold once. Early aborts: exhausted budget (already handled by the
// caller) and answers too short to probe.
func (s *Session) shouldFollowUp(answer string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(answer)) < minFollowUpLength {
		return false
	}

	ctx := RuleContext{
		Config:               s.cfg,
		Signals:              s.classifier.Signals(answer),
		ConsecutiveFollowUps: s.counters.ConsecutiveFollowUps,
	}

	score := 0
	fields := make([]zap.Field, 0, len(s.rules)+1)
	for _, rule := range s.rules {
		weight := rule.Weight(ctx)
		if weight != 0 {
			fields = append(fields, zap.Int(rule.Name, weight))
		}
		score += weight
	}

	fields = append(fields, zap.Int("total", score))
	s.logger.Debug("follow-up score", fields...)

	return score >= followUpThreshold
}
