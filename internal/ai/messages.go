package ai

import "github.com/spigell/interview-conductor/internal/moderation"

// Fixed interviewer copy for moderation outcomes. These lines are spoken by
// the host, not generated, so a terminated session always ends with the same
// words.
const (
	MessageLanguageTermination = "This interview is conducted in English only. Since you've requested to continue in another language, we'll end the session here. Thank you for your time."

	MessageProfanityTermination = "This interview is terminated due to inappropriate language. Professional communication is a requirement for this process. Thank you for your time."

	MessageBehaviorTermination = "This interview is terminated due to repeated unprofessional conduct. Thank you for your time."

	MessageBehaviorWarning = "Please keep the conversation professional. Let's return to the interview question."

	MessageTopicRedirect = "That topic is outside the scope of this interview. Let's get back to the question at hand."
)

// TerminationMessage maps a moderation stop reason to its interviewer line.
func TerminationMessage(reason moderation.Reason) string {
	switch reason {
	case moderation.ReasonLanguage:
		return MessageLanguageTermination
	case moderation.ReasonProfanity:
		return MessageProfanityTermination
	default:
		return MessageBehaviorTermination
	}
}
