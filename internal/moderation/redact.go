package moderation

import "regexp"

// Redaction replacements run in a fixed order: phone shapes are tried before
// the SSN shape so "555-123-4567" is redacted as a phone, not an SSN.
var redactions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		"[EMAIL_REDACTED]",
	},
	{
		// No leading \b: a "+1" prefix sits on a non-word boundary.
		regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
		"[PHONE_REDACTED]",
	},
	{
		regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		"[PHONE_REDACTED]",
	},
	{
		regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`),
		"[SSN_REDACTED]",
	},
	{
		regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
		"[CARD_REDACTED]",
	},
	{
		regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Court|Ct|Place|Pl)\b`),
		"[ADDRESS_REDACTED]",
	},
	{
		// The case-insensitive flag stays on the lead phrase only, so the
		// name itself must be capitalized and ordinary words are left alone.
		regexp.MustCompile(`\b((?i:my name is|i'm|i am|call me))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`),
		"${1} [NAME_REDACTED]",
	},
}

// Redact rewrites emails, phone numbers, SSN- and card-shaped sequences,
// street addresses and self-introduced names to redaction markers before the
// utterance is logged or persisted. It reports whether anything was replaced.
// Absence of PII is the common case and a no-op; re-redacting already
// redacted text yields the same text.
func Redact(text string) (string, bool) {
	sanitized := text
	for _, r := range redactions {
		sanitized = r.pattern.ReplaceAllString(sanitized, r.replacement)
	}
	return sanitized, sanitized != text
}
