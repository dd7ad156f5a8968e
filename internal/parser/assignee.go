package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const namePattern = `[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+`

// assigneePatterns are tried in order against the original-case text. The
// broad "por X" and "para X" forms sit after the explicit assignment phrases.
var assigneePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)asignad[oa]\s+a\s+(` + namePattern + `)`),
	regexp.MustCompile(`(?i)asignad[oa]\s+para\s+(` + namePattern + `)`),
	regexp.MustCompile(`(?i)asign(?:ar|ado|ada)\s+a\s+(` + namePattern + `)`),
	regexp.MustCompile(`(?i)responsable:?\s+(` + namePattern + `)`),
	regexp.MustCompile(`(?i)a\s+cargo\s+de\s+(` + namePattern + `)`),
	regexp.MustCompile(`(?i)que\s+lo\s+haga\s+(` + namePattern + `)`),
	regexp.MustCompile(`(?i)por\s+(` + namePattern + `)(?:\s*,|\s*$)`),
	regexp.MustCompile(`(?i)para\s+(` + namePattern + `)(?:\s*,|\s*$)`),
	regexp.MustCompile(`(?i)assign(?:ed)?\s+to\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)@(` + namePattern + `)`),
}

// extractAssignee returns the first person name found, or "" when none is.
func extractAssignee(original string) string {
	for _, pattern := range assigneePatterns {
		m := pattern.FindStringSubmatch(original)
		if m == nil {
			continue
		}
		name := m[1]
		if isAllLower(name) {
			return Capitalize(name)
		}
		return name
	}
	return ""
}

func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// Capitalize upper-cases the first character of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}
