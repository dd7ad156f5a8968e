// Package parser turns a free-form Spanish (or partly English) sentence into a
// structured work-item intent using fixed keyword tables and regular
// expressions. There is no statistical model: the same text always yields the
// same intent.
package parser

import (
	"fmt"
	"strings"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

// Options holds the defaults the classifiers fall back to
type Options struct {
	DefaultWorkType models.WorkType
	DefaultPriority models.Priority
}

// DefaultOptions returns Task / Medium defaults
func DefaultOptions() Options {
	return Options{
		DefaultWorkType: models.WorkTypeTask,
		DefaultPriority: models.PriorityMedium,
	}
}

// Parser is the rule-based intent extractor. It holds no mutable state and
// is safe for concurrent use.
type Parser struct {
	opts Options
}

// New creates a parser. Zero-valued options fall back to DefaultOptions.
func New(opts Options) (*Parser, error) {
	defaults := DefaultOptions()
	if opts.DefaultWorkType == "" {
		opts.DefaultWorkType = defaults.DefaultWorkType
	}
	if opts.DefaultPriority == "" {
		opts.DefaultPriority = defaults.DefaultPriority
	}

	if !opts.DefaultWorkType.Valid() {
		return nil, fmt.Errorf("unknown default work type %q", opts.DefaultWorkType)
	}
	if !opts.DefaultPriority.Valid() {
		return nil, fmt.Errorf("unknown default priority %q", opts.DefaultPriority)
	}

	return &Parser{opts: opts}, nil
}

// Parse extracts an intent from text. It fails only when text is blank.
func (p *Parser) Parse(text string) (*models.Intent, error) {
	normalized, err := Normalize(text)
	if err != nil {
		return nil, err
	}

	workType := p.classifyWorkType(normalized)
	priority := p.classifyPriority(normalized)
	summary := extractSummary(normalized)

	return &models.Intent{
		Summary:      summary,
		Description:  synthesizeDescription(text, summary),
		WorkType:     workType,
		Priority:     priority,
		AssigneeName: extractAssignee(text),
		Labels:       extractLabels(normalized),
		Confidence:   p.confidence(normalized, workType, priority, summary),
	}, nil
}

// Normalize lowercases text and collapses whitespace runs. Any Unicode space,
// including the non-breaking space of pasted text, counts as whitespace.
func Normalize(text string) (string, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if normalized == "" {
		return "", models.ErrEmptyInput
	}
	return normalized, nil
}
