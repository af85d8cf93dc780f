package checks

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizePolicyOnce sync.Once
	sanitizePolicy     *bluemonday.Policy
)

// SanitizeHTML strips markup from string values and leaves anything else
// untouched. Use it as a check adapter so checks see the text a user would
// read rather than the markup they typed.
func SanitizeHTML(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return StripHTML(s)
}

// StripHTML removes every tag from s and decodes the remaining entities.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(policy().Sanitize(s))
}

func policy() *bluemonday.Policy {
	sanitizePolicyOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()
	})
	return sanitizePolicy
}
