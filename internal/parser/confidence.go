package parser

import (
	"unicode/utf8"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

const (
	baseConfidence      = 0.5
	workTypeBonus       = 0.2
	priorityBonus       = 0.15
	summaryLengthBonus  = 0.15
	shortInputPenalty   = 0.2
	shortInputThreshold = 20
	maxReasonableTitle  = 100
)

// confidence is a display heuristic, not a correctness measure.
func (p *Parser) confidence(normalized string, workType models.WorkType, priority models.Priority, summary string) float64 {
	score := baseConfidence

	if workType != p.opts.DefaultWorkType {
		score += workTypeBonus
	}
	if priority != p.opts.DefaultPriority {
		score += priorityBonus
	}
	if n := utf8.RuneCountInString(summary); n >= minExtractedLength && n <= maxReasonableTitle {
		score += summaryLengthBonus
	}
	if utf8.RuneCountInString(normalized) < shortInputThreshold {
		score -= shortInputPenalty
	}

	return min(1.0, max(0.0, score))
}
