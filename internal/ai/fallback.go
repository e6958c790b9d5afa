package ai

import (
	"bytes"
	"context"
	"fmt"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/interview-conductor/internal/classify"
	"github.com/spigell/interview-conductor/internal/interview"
	"github.com/spigell/interview-conductor/internal/report"
)

//go:embed questions.yaml
var questionBank []byte

// bankDocument is the embedded question bank layout.
type bankDocument struct {
	Closing   string      `mapstructure:"closing"`
	FollowUps []string    `mapstructure:"follow-ups"`
	Tracks    []bankTrack `mapstructure:"tracks"`
}

type bankTrack struct {
	Type      interview.Type `mapstructure:"type"`
	Questions []string       `mapstructure:"questions"`
}

// Fallback is the deterministic offline Interviewer. It serves questions from
// the embedded bank and reports from the statistics-driven mock generator, so
// a session always completes even with no model configured.
type Fallback struct {
	closing   string
	followUps []string
	tracks    map[interview.Type][]string
}

// NewFallback decodes the embedded question bank.
func NewFallback() (*Fallback, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(questionBank)); err != nil {
		return nil, fmt.Errorf("read embedded question bank: %w", err)
	}

	var doc bankDocument
	if err := mapstructure.Decode(v.AllSettings(), &doc); err != nil {
		return nil, fmt.Errorf("decode embedded question bank: %w", err)
	}
	if len(doc.Tracks) == 0 || len(doc.FollowUps) == 0 {
		return nil, fmt.Errorf("embedded question bank is incomplete")
	}

	tracks := make(map[interview.Type][]string, len(doc.Tracks))
	for _, track := range doc.Tracks {
		if len(track.Questions) == 0 {
			return nil, fmt.Errorf("question track %q is empty", track.Type)
		}
		tracks[track.Type] = track.Questions
	}

	return &Fallback{
		closing:   doc.Closing,
		followUps: doc.FollowUps,
		tracks:    tracks,
	}, nil
}

// NextQuestion picks by position in the plan: the Nth primary question of the
// track, wrapping when the bank is shorter than the budget. Follow-ups rotate
// through the generic probes.
func (f *Fallback) NextQuestion(_ context.Context, cfg interview.Config, transcript *interview.Transcript, followUp bool) (string, error) {
	asked := 0
	followUps := 0
	for _, u := range transcript.Interviewer() {
		if u.IsFollowUp {
			followUps++
		} else {
			asked++
		}
	}

	if followUp {
		return f.followUps[followUps%len(f.followUps)], nil
	}

	questions, ok := f.tracks[cfg.Type]
	if !ok {
		questions = f.tracks[interview.TypeTechnical]
	}
	return questions[asked%len(questions)], nil
}

func (f *Fallback) ClosingRemark(_ context.Context, _ interview.Config) (string, error) {
	return f.closing, nil
}

// AnalysisReport delegates to the deterministic mock report.
func (f *Fallback) AnalysisReport(_ context.Context, cfg interview.Config, transcript *interview.Transcript, analysis classify.Analysis) (string, error) {
	return report.Mock(cfg, analysis, report.ExtractQuestions(transcript)), nil
}
