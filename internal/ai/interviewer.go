// Package ai defines the external collaborator that produces interviewer
// text: questions, closing remarks and the end-of-interview analysis report.
// The engine itself never invokes a model; it only consumes the text this
// collaborator returns.
package ai

import (
	"context"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
)

// Interviewer produces the interviewer side of the conversation.
type Interviewer interface {
	// NextQuestion returns the next interviewer utterance. When followUp is
	// set the question must probe the candidate's latest answer instead of
	// opening a new topic.
	NextQuestion(ctx context.Context, cfg interview.Config, transcript *interview.Transcript, followUp bool) (string, error)

	// ClosingRemark returns the wrap-up line spoken when the question budget
	// is exhausted.
	ClosingRemark(ctx context.Context, cfg interview.Config) (string, error)

	// AnalysisReport returns the free-form assessment text that the report
	// parser turns into a verdict.
	AnalysisReport(ctx context.Context, cfg interview.Config, transcript *interview.Transcript, analysis classify.Analysis) (string, error)
}
