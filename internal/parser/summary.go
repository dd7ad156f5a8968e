package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxSummaryLength is the tracker's summary limit in characters
	MaxSummaryLength = 255

	minExtractedLength = 10
	ellipsis           = "..."
	autoCreatedNote    = "(Tarea creada automáticamente desde texto natural)"
)

var actionPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:crea|crear|hace|hacer|agrega|agregar|añade|añadir)\s+(?:una\s+)?(?:tarea|task|issue)\s+(?:para\s+)?`),
	regexp.MustCompile(`(?i)^(?:arregla|arreglar|fix|corrige|corregir)\s+(?:el|la|los|las)\s+`),
	regexp.MustCompile(`(?i)^(?:implementa|implementar|develop|desarrolla|desarrollar)\s+`),
	regexp.MustCompile(`(?i)^necesito\s+(?:que\s+)?`),
	regexp.MustCompile(`(?i)^quiero\s+(?:que\s+)?`),
}

const priorityLevel = `(?:alta|high|media|medium|baja|low|crítica|critical|urgente|urgent|highest|lowest)`

var priorityPhrases = []*regexp.Regexp{
	// "prioridad alta"
	regexp.MustCompile(`(?i),?\s*(?:prioridad|priority)\s+(?:muy\s+)?` + priorityLevel + `\b`),
	// "alta prioridad"
	regexp.MustCompile(`(?i),?\s*(?:muy\s+)?` + priorityLevel + `\s+(?:prioridad|priority)\b`),
}

var assigneePhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i),?\s*asignad[oa]\s+(?:a|para)\s+` + namePattern),
	regexp.MustCompile(`(?i),?\s*asign(?:ar|ado|ada)\s+a\s+` + namePattern),
	regexp.MustCompile(`(?i),?\s*responsable:?\s+` + namePattern),
	regexp.MustCompile(`(?i),?\s*a\s+cargo\s+de\s+` + namePattern),
	regexp.MustCompile(`(?i),?\s*que\s+lo\s+haga\s+` + namePattern),
	regexp.MustCompile(`(?i),?\s*assign(?:ed)?\s+to\s+[A-Z][a-z]+`),
	regexp.MustCompile(`(?i),?\s*@` + namePattern),
}

// trailingAssignee only strips "por X" / "para X" when the name closes a
// clause; the separator is captured and put back.
var trailingAssignee = regexp.MustCompile(`(?i),?\s*(?:para|por)\s+` + namePattern + `(\s*,|\s*$)`)

// stripMetadata removes priority and assignee phrases so they do not leak
// into titles or descriptions.
func stripMetadata(text string) string {
	for _, re := range priorityPhrases {
		text = re.ReplaceAllString(text, "")
	}
	for _, re := range assigneePhrases {
		text = re.ReplaceAllString(text, "")
	}
	return trailingAssignee.ReplaceAllString(text, "${1}")
}

func trimClause(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ","))
}

// extractSummary derives the title from normalized text
func extractSummary(normalized string) string {
	summary := normalized
	for _, re := range actionPrefixes {
		summary = re.ReplaceAllString(summary, "")
	}
	summary = trimClause(stripMetadata(summary))

	if utf8.RuneCountInString(summary) < minExtractedLength {
		summary = normalized
	}

	return truncate(Capitalize(summary), MaxSummaryLength)
}

// synthesizeDescription cleans the original text but keeps its verb and casing
func synthesizeDescription(original, summary string) string {
	description := trimClause(stripMetadata(original))

	if utf8.RuneCountInString(description) < minExtractedLength {
		description = summary
	}

	if strings.EqualFold(strings.TrimSpace(description), strings.TrimSpace(summary)) {
		return description + "\n\n" + autoCreatedNote
	}

	return description
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
