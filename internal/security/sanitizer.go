// Package security strips markup from user-submitted free text.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer removes every HTML element, keeping the text content.
// script and style bodies are dropped entirely. Safe for concurrent use.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean returns plain text: tags removed, entities decoded, outer space trimmed.
func (s *TextSanitizer) Clean(in string) string {
	if in == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in)))
}

// CleanPtr is Clean for optional fields; nil stays nil.
func (s *TextSanitizer) CleanPtr(in *string) *string {
	if in == nil {
		return nil
	}
	out := s.Clean(*in)
	return &out
}
