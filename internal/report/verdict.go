// Package report turns the upstream model's free-form end-of-interview text
// into a validated, capped, internally consistent verdict. The parser never
// fails to its caller: structurally unusable reports degrade to a fixed
// error verdict instead.
package report

// Decision is the final hire recommendation. It is always recomputed from
// the capped score and the seniority threshold, never taken on faith from
// the upstream report.
type Decision string

const (
	DecisionPass Decision = "PASS"
	DecisionFail Decision = "FAIL"
)

// Priority ranks a knowledge gap.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ResourceLink points the candidate at remediation material.
type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// KnowledgeGap describes one topic the candidate failed to demonstrate
// competence in.
type KnowledgeGap struct {
	Title     string         `json:"title"`
	Priority  Priority       `json:"priority"`
	Tags      []string       `json:"tags,omitempty"`
	Why       string         `json:"why,omitempty"`
	Resources []ResourceLink `json:"resources,omitempty"`
}

// Verdict is the immutable session outcome. Degraded marks the deterministic
// error verdict produced when the upstream report could not be parsed;
// callers must handle that case explicitly instead of relying on a
// swallowed error.
type Verdict struct {
	Score            int      `json:"score"`
	Decision         Decision `json:"decision"`
	Passed           bool     `json:"passed"`
	PassingThreshold int      `json:"passing_threshold"`

	Strengths     []string       `json:"strengths"`
	Weaknesses    []string       `json:"weaknesses"`
	KnowledgeGaps []KnowledgeGap `json:"knowledge_gaps,omitempty"`

	WhyDecision      string `json:"why_decision,omitempty"`
	Recommendations  string `json:"recommendations,omitempty"`
	DetailedAnalysis string `json:"detailed_analysis,omitempty"`

	// Raw preserves the upstream report verbatim.
	Raw      string `json:"raw,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}
