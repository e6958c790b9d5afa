package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-conductor/internal/ai"
	"github.com/spigell/interview-conductor/internal/ai/gemini"
	"github.com/spigell/interview-conductor/internal/classify"
	intrv "github.com/spigell/interview-conductor/internal/interview"
	"github.com/spigell/interview-conductor/internal/logger"
	"github.com/spigell/interview-conductor/internal/moderation"
	"github.com/spigell/interview-conductor/internal/report"
	"github.com/spigell/interview-conductor/internal/secrets"
	"github.com/spigell/interview-conductor/internal/session"
)

const defaultQuestionTimeout = 30 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one interview session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("demo", false, "short demo session with the embedded question bank")
	runCmd.Flags().Bool("dump", false, "dump the transcript and verdict to a temp file at the end")
	runCmd.Flags().StringP("position", "p", "", "position to interview for (asked interactively when unset)")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	baseLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		baseLogger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	baseLogger.Info("starting the interview-conductor", zap.String("version", version))

	cfg, err := completeInterviewConfig(cmd, config.Interview)
	if err != nil {
		baseLogger.Fatal("completing interview setup", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(cfg, "", "  ")
	baseLogger.Debug(fmt.Sprintf("starting with interview config: \n%s", pretty))

	classifier := classify.New(classify.DefaultPatterns())
	pipeline := moderation.New(moderation.DefaultRuleSet(), baseLogger)

	sess, err := session.New(cfg, classifier, pipeline, baseLogger)
	if err != nil {
		baseLogger.Fatal("creating a session", zap.Error(err))
	}

	sessLogger := logger.WithSessionFields(baseLogger, sess.ID(), cfg)

	fallback, err := ai.NewFallback()
	if err != nil {
		sessLogger.Fatal("loading the embedded question bank", zap.Error(err))
	}

	interviewer, timeout := newInterviewer(ctx, config.AI, fallback, sess.ID(), sessLogger)

	verdict, err := conduct(ctx, sess, interviewer, fallback, timeout, sessLogger)
	if err != nil {
		sessLogger.Fatal("running the interview", zap.Error(err))
	}

	prettyVerdict, _ := json.MarshalIndent(verdict, "", "  ")
	fmt.Printf("\n%s\n", prettyVerdict)

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := dumpToTmpFile(sess, verdict)
		if err != nil {
			sessLogger.Fatal("dumping session to file", zap.Error(err))
		}
		sessLogger.Info("dumped session to file", zap.String("filename", filename))
	}
}

// conduct drives the question/answer loop until the orchestrator completes or
// terminates the session, then produces the parsed verdict.
func conduct(ctx context.Context, sess *session.Session, interviewer ai.Interviewer, fallback *ai.Fallback, timeout time.Duration, log *zap.Logger) (*report.Verdict, error) {
	cfg := sess.Config()
	followUp := false

	answerPrompt := promptui.Prompt{Label: "You"}

loop:
	for {
		question, err := askQuestion(ctx, sess, interviewer, fallback, followUp, timeout, log)
		if err != nil {
			return nil, err
		}
		fmt.Printf("\nInterviewer: %s\n", question)

		answer, err := answerPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("reading answer: %w", err)
		}

		decision, err := sess.HandleAnswer(answer)
		if err != nil {
			return nil, err
		}

		if decision.Warning {
			fmt.Printf("\nInterviewer: %s\n", ai.MessageBehaviorWarning)
		}
		if decision.Redirect {
			fmt.Printf("\nInterviewer: %s\n", ai.MessageTopicRedirect)
		}

		switch decision.NextAction {
		case session.ActionTerminate:
			fmt.Printf("\nInterviewer: %s\n", ai.TerminationMessage(decision.TerminationReason))
			break loop
		case session.ActionClose:
			if err := closeOut(ctx, sess, interviewer, fallback, timeout, log); err != nil {
				return nil, err
			}
			break loop
		case session.ActionAskFollowUp:
			followUp = true
		default:
			followUp = false
		}
	}

	return assess(ctx, sess, interviewer, fallback, cfg, log), nil
}

// askQuestion requests the next question from the interviewer, falling back
// to the embedded bank on failure or timeout. Fallback primary questions do
// not consume the question plan.
func askQuestion(ctx context.Context, sess *session.Session, interviewer ai.Interviewer, fallback *ai.Fallback, followUp bool, timeout time.Duration, log *zap.Logger) (string, error) {
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	question, err := interviewer.NextQuestion(qctx, sess.Config(), sess.Transcript(), followUp)
	if err == nil {
		return question, sess.RecordQuestion(question, followUp)
	}

	log.Warn("question generation failed, falling back to the question bank", zap.Error(err))

	question, err = fallback.NextQuestion(ctx, sess.Config(), sess.Transcript(), followUp)
	if err != nil {
		return "", err
	}
	if followUp {
		return question, sess.RecordQuestion(question, true)
	}
	return question, sess.RecordFallbackQuestion(question)
}

func closeOut(ctx context.Context, sess *session.Session, interviewer ai.Interviewer, fallback *ai.Fallback, timeout time.Duration, log *zap.Logger) error {
	if sess.State() == session.StateComplete {
		return nil
	}

	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	remark, err := interviewer.ClosingRemark(qctx, sess.Config())
	if err != nil {
		log.Warn("closing remark generation failed, using the canned one", zap.Error(err))
		remark, _ = fallback.ClosingRemark(ctx, sess.Config())
	}

	fmt.Printf("\nInterviewer: %s\n", remark)
	return sess.RecordClosing(remark)
}

// assess turns the finished session into a verdict. Report generation may
// fail; the deterministic mock then keeps the session from ending without a
// result.
func assess(ctx context.Context, sess *session.Session, interviewer ai.Interviewer, fallback *ai.Fallback, cfg intrv.Config, log *zap.Logger) *report.Verdict {
	analysis := sess.Aggregate()

	raw, err := interviewer.AnalysisReport(ctx, cfg, sess.Transcript(), analysis)
	if err != nil {
		log.Warn("analysis report generation failed, using the deterministic mock", zap.Error(err))
		raw, _ = fallback.AnalysisReport(ctx, cfg, sess.Transcript(), analysis)
	}

	questions := report.ExtractQuestions(sess.Transcript())
	return report.NewParser(log).Parse(raw, analysis, cfg, questions)
}

// completeInterviewConfig fills whatever the config file and flags left out
// through interactive prompts.
func completeInterviewConfig(cmd *cobra.Command, cfg *intrv.Config) (intrv.Config, error) {
	if cfg == nil {
		cfg = &intrv.Config{}
	}

	if flag := strings.TrimSpace(cmd.Flag("position").Value.String()); flag != "" {
		cfg.Position = flag
	}
	if cmd.Flag("demo").Value.String() == "true" {
		cfg.DemoMode = true
	}

	if strings.TrimSpace(cfg.Position) == "" {
		prompt := promptui.Prompt{
			Label: "Position to interview for",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("position must not be empty")
				}
				return nil
			},
		}
		position, err := prompt.Run()
		if err != nil {
			return *cfg, err
		}
		cfg.Position = strings.TrimSpace(position)
	}

	if cfg.Seniority == "" {
		selected, err := selectOne("Seniority level", []string{
			string(intrv.SeniorityEntry),
			string(intrv.SeniorityJunior),
			string(intrv.SeniorityMid),
			string(intrv.SenioritySenior),
		})
		if err != nil {
			return *cfg, err
		}
		cfg.Seniority = intrv.Seniority(selected)
	}

	if cfg.Type == "" {
		selected, err := selectOne("Interview type", []string{
			string(intrv.TypeTechnical),
			string(intrv.TypeCoding),
			string(intrv.TypeSystemDesign),
			string(intrv.TypeBullet),
		})
		if err != nil {
			return *cfg, err
		}
		cfg.Type = intrv.Type(selected)
	}

	if cfg.Mode == "" {
		cfg.Mode = intrv.ModeRegular
	}

	return *cfg, nil
}

func selectOne(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	_, selected, err := prompt.Run()
	return selected, err
}

// newInterviewer wires the Gemini collaborator when configured and falls back
// to the embedded bank otherwise.
func newInterviewer(ctx context.Context, cfg *AIConfig, fallback *ai.Fallback, sessionID string, log *zap.Logger) (ai.Interviewer, time.Duration) {
	timeout := defaultQuestionTimeout

	if cfg == nil || !cfg.Enabled {
		log.Info("ai interviewer is disabled, using the embedded question bank")
		return fallback, timeout
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		log.Warn("unsupported ai provider, using the embedded question bank", zap.String("provider", cfg.Provider))
		return fallback, timeout
	}
	if cfg.Gemini == nil {
		log.Warn("gemini configuration is missing, using the embedded question bank")
		return fallback, timeout
	}

	if cfg.Gemini.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		log.Warn("loading gemini api key failed, using the embedded question bank",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return fallback, timeout
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		log.Warn("building gemini generator failed, using the embedded question bank", zap.Error(err))
		return fallback, timeout
	}

	return gemini.NewInterviewer(generator, sessionID, log, cfg.Gemini.MaxLogLength), timeout
}

func dumpToTmpFile(sess *session.Session, verdict *report.Verdict) (string, error) {
	payload := struct {
		SessionID  string            `json:"session_id"`
		Config     intrv.Config      `json:"config"`
		Transcript []intrv.Utterance `json:"transcript"`
		Analysis   classify.Analysis `json:"analysis"`
		Verdict    *report.Verdict   `json:"verdict"`
	}{
		SessionID:  sess.ID(),
		Config:     sess.Config(),
		Transcript: sess.Transcript().All(),
		Analysis:   sess.Aggregate(),
		Verdict:    verdict,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	file, err := os.CreateTemp("", app+"-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return "", err
	}
	return file.Name(), nil
}
