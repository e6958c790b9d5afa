package interview

// Role identifies which party produced an utterance.
type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// Utterance is a single message in the transcript. Once appended it is never
// mutated.
type Utterance struct {
	Role       Role   `json:"role"`
	Text       string `json:"text"`
	Ordinal    int    `json:"ordinal"`
	IsFollowUp bool   `json:"is_follow_up,omitempty"`
}

// Transcript is the append-only record of a session. It is the sole
// persistent memory of the conversation: everything derived from it
// (aggregates, verdicts) is recomputed from the full sequence on demand.
type Transcript struct {
	utterances []Utterance
}

// Append records a new utterance and returns its ordinal.
func (t *Transcript) Append(role Role, text string, isFollowUp bool) int {
	ordinal := len(t.utterances)
	t.utterances = append(t.utterances, Utterance{
		Role:       role,
		Text:       text,
		Ordinal:    ordinal,
		IsFollowUp: isFollowUp,
	})
	return ordinal
}

// All returns a copy of the recorded utterances in order.
func (t *Transcript) All() []Utterance {
	out := make([]Utterance, len(t.utterances))
	copy(out, t.utterances)
	return out
}

// Candidate returns the candidate utterances in order.
func (t *Transcript) Candidate() []Utterance {
	return t.byRole(RoleCandidate)
}

// Interviewer returns the interviewer utterances in order.
func (t *Transcript) Interviewer() []Utterance {
	return t.byRole(RoleInterviewer)
}

func (t *Transcript) byRole(role Role) []Utterance {
	out := make([]Utterance, 0, len(t.utterances))
	for _, u := range t.utterances {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func (t *Transcript) Len() int {
	return len(t.utterances)
}
