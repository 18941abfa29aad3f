package pipeline

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips unsafe markup from transcoded fragments.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy,
// extended with the class attributes that highlighting, math and diagram
// rendering depend on.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	policy.AllowElements("mark")
	return &Sanitizer{policy: policy}
}

// Sanitize returns htmlContent with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
