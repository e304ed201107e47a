package apierror

import (
	"regexp"
	"strings"
)

// maxDetailLen caps the body excerpt carried in Error.Details.
const maxDetailLen = 256

// credentialPattern matches bearer/token credentials that a remote error
// body or transport message could echo back.
var credentialPattern = regexp.MustCompile(`(?i)\b(bearer|token|authorization:?)\s+[^\s",}]+`)

// Redact produces a detail string safe for display and logging: control
// characters stripped, credential-shaped fragments replaced, and the
// result truncated.
func Redact(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	s := strings.Map(func(r rune) rune {
		if r < ' ' && r != '\t' {
			return ' '
		}
		return r
	}, string(body))

	s = credentialPattern.ReplaceAllString(s, "$1 [REDACTED]")
	s = strings.TrimSpace(s)

	if len(s) > maxDetailLen {
		s = s[:maxDetailLen] + "..."
	}
	return s
}
