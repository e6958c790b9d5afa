package interview

// SessionCounters track the question budget of a session. AskedQuestions only
// moves when a primary question is asked; follow-ups are free but bounded by
// the consecutive counter.
type SessionCounters struct {
	AskedQuestions       int `json:"asked_questions"`
	TotalPlanned         int `json:"total_planned"`
	ConsecutiveFollowUps int `json:"consecutive_follow_ups"`
}

// BudgetExhausted reports whether every planned primary question was asked.
func (c SessionCounters) BudgetExhausted() bool {
	return c.AskedQuestions >= c.TotalPlanned
}
