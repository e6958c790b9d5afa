package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
	"github.com/spigell/interview-conductor/internal/logger"
	"github.com/spigell/interview-conductor/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateContentWithCache(ctx context.Context, prompt, cacheName string) (string, error)
	EnsureBriefCache(ctx context.Context, sessionID, displayName, brief string) (string, error)
	Model() string
}

//go:embed prompt_brief.md
var briefTemplate string

//go:embed prompt_question.md
var questionTemplate string

//go:embed prompt_report.md
var reportTemplate string

const (
	defaultMaxLogLength = 200

	directiveNextQuestion = "Ask the next interview question. Open a new topic appropriate for this position and level; do not repeat a topic already covered."
	directiveFollowUp     = "Ask one short follow-up question that probes the candidate's previous answer more deeply."
	directiveClosing      = "The interview is over. Deliver a brief, polite closing remark thanking the candidate and explaining that results will follow. Do not ask anything."
)

// Interviewer implements ai.Interviewer on top of a Gemini content generator.
// The static session brief is held in a Gemini content cache so it is not
// resent on every turn; only the transcript and directive travel per request.
type Interviewer struct {
	generator contentGenerator
	sessionID string
	logger    *zap.Logger
	maxLogLen int
}

func NewInterviewer(generator contentGenerator, sessionID string, log *zap.Logger, maxLogLength int) *Interviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Interviewer{
		generator: generator,
		sessionID: strings.TrimSpace(sessionID),
		logger:    logger.WithProviderFields(log, "gemini", generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (i *Interviewer) NextQuestion(ctx context.Context, cfg interview.Config, transcript *interview.Transcript, followUp bool) (string, error) {
	directive := directiveNextQuestion
	if followUp {
		directive = directiveFollowUp
	}
	return i.generateWithBrief(ctx, "question", buildBrief(cfg), buildQuestionPrompt(cfg, transcript, directive))
}

func (i *Interviewer) ClosingRemark(ctx context.Context, cfg interview.Config) (string, error) {
	return i.generateWithBrief(ctx, "closing", buildBrief(cfg), buildQuestionPrompt(cfg, nil, directiveClosing))
}

func (i *Interviewer) AnalysisReport(ctx context.Context, cfg interview.Config, transcript *interview.Transcript, analysis classify.Analysis) (string, error) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal response statistics: %w", err)
	}

	prompt := fillTemplate(reportTemplate, cfg, transcript)
	prompt = strings.ReplaceAll(prompt, "{{ANALYSIS_JSON}}", string(analysisJSON))

	return i.generate(ctx, "report", prompt)
}

// generateWithBrief prefers the cached-brief path and falls back to a single
// full prompt when the cache is unavailable.
func (i *Interviewer) generateWithBrief(ctx context.Context, kind, brief, body string) (string, error) {
	if name := i.briefCacheName(ctx, brief); name != "" {
		raw, err := i.invoke(ctx, kind, body, name)
		if err == nil {
			return raw, nil
		}
		i.logger.Warn("cached generation failed, retrying without the cache", zap.Error(err))
	}
	return i.generate(ctx, kind, brief+"\n\n"+body)
}

func (i *Interviewer) briefCacheName(ctx context.Context, brief string) string {
	if i.sessionID == "" {
		return ""
	}

	name, err := i.generator.EnsureBriefCache(ctx, i.sessionID, "interview-brief-"+i.sessionID, brief)
	if err != nil {
		i.logger.Debug("session brief cache unavailable", zap.Error(err))
		return ""
	}
	return name
}

func (i *Interviewer) generate(ctx context.Context, kind, prompt string) (string, error) {
	return i.invoke(ctx, kind, prompt, "")
}

func (i *Interviewer) invoke(ctx context.Context, kind, prompt, cacheName string) (string, error) {
	i.logger.Debug("gemini generate content request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, i.maxLogLen)),
		zap.String("cache", cacheName),
	)

	var (
		raw string
		err error
	)
	if cacheName != "" {
		raw, err = i.generator.GenerateContentWithCache(ctx, prompt, cacheName)
	} else {
		raw, err = i.generator.GenerateContent(ctx, prompt)
	}
	if err != nil {
		return "", err
	}

	i.logger.Debug("gemini generate content response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, i.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}

func buildBrief(cfg interview.Config) string {
	return strings.TrimSpace(fillTemplate(briefTemplate, cfg, nil))
}

func buildQuestionPrompt(cfg interview.Config, transcript *interview.Transcript, directive string) string {
	prompt := fillTemplate(questionTemplate, cfg, transcript)
	return strings.ReplaceAll(prompt, "{{DIRECTIVE}}", directive)
}

func fillTemplate(template string, cfg interview.Config, transcript *interview.Transcript) string {
	prompt := strings.ReplaceAll(template, "{{POSITION}}", cfg.Position)
	prompt = strings.ReplaceAll(prompt, "{{SENIORITY}}", string(cfg.Seniority))
	prompt = strings.ReplaceAll(prompt, "{{TYPE}}", string(cfg.Type))
	prompt = strings.ReplaceAll(prompt, "{{EXPECTATION}}", cfg.Seniority.Expectation())
	return strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", renderTranscript(transcript))
}

func renderTranscript(transcript *interview.Transcript) string {
	if transcript == nil || transcript.Len() == 0 {
		return "(the interview has not started yet)"
	}

	var b strings.Builder
	for _, u := range transcript.All() {
		speaker := "Interviewer"
		if u.Role == interview.RoleCandidate {
			speaker = "Candidate"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, u.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
