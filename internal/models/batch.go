package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// ContentRequest is a single natural-language content item
type ContentRequest struct {
	Text        string   `json:"text"`
	ProjectKey  string   `json:"project_key,omitempty"`
	Description string   `json:"description,omitempty"`
	AssigneeID  string   `json:"assignee,omitempty"`
	PhaseIDs    []string `json:"subtasks,omitempty"`
}

// BatchItem is one entry of a batch request
type BatchItem struct {
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	AssigneeID  string   `json:"assignee,omitempty"`
	PhaseIDs    []string `json:"subtasks,omitempty"`
}

// BatchRequest is the JSON input for batch creation
type BatchRequest struct {
	ProjectKey string      `json:"project_key"`
	Tasks      []BatchItem `json:"tasks"`
}

// BatchLimits bounds the shape of a batch request
type BatchLimits struct {
	MaxItems             int
	MaxTextLength        int
	MaxDescriptionLength int
}

// Validate checks the request shape only. Item contents are checked by
// BatchItem.Validate when each item runs, so one bad item fails on its own and
// the rest of the batch still runs.
func (b BatchRequest) Validate(limits BatchLimits) error {
	if len(b.Tasks) == 0 {
		return criterio.NewFieldErrors("tasks", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder

	if b.ProjectKey == "" {
		errs = errs.Append("project_key", fmt.Errorf("project key is required"))
	}

	if limits.MaxItems > 0 && len(b.Tasks) > limits.MaxItems {
		errs = errs.Append("tasks", fmt.Errorf("at most %d items allowed, got %d", limits.MaxItems, len(b.Tasks)))
	}

	return errs.ToError()
}

// Validate checks one item against the length limits and the phase catalog.
// Empty text is left to the parser.
func (i BatchItem) Validate(limits BatchLimits) error {
	var errs criterio.FieldErrorsBuilder

	if limits.MaxTextLength > 0 && utf8.RuneCountInString(i.Text) > limits.MaxTextLength {
		errs = errs.Append("text", fmt.Errorf("longer than %d characters", limits.MaxTextLength))
	}

	if limits.MaxDescriptionLength > 0 && utf8.RuneCountInString(i.Description) > limits.MaxDescriptionLength {
		errs = errs.Append("description", fmt.Errorf("longer than %d characters", limits.MaxDescriptionLength))
	}

	for _, id := range i.PhaseIDs {
		if !IsKnownPhase(id) {
			errs = errs.Append("subtasks", fmt.Errorf("unknown phase %q", id))
		}
	}

	return errs.ToError()
}

// Item outcome statuses
const (
	StatusCreated = "created" // parent and every child created
	StatusPartial = "partial" // parent created, at least one child failed
	StatusFailed  = "failed"  // nothing usable was created
	StatusSkipped = "skipped" // not attempted because the batch was cancelled
)

// ItemResult is the outcome for one batch item
type ItemResult struct {
	Index         int            `json:"index"`
	Status        string         `json:"status"`
	ParentKey     string         `json:"main_task_key,omitempty"`
	ParentURL     string         `json:"main_task_url,omitempty"`
	ContentType   ContentType    `json:"content_type,omitempty"`
	Children      []ChildResult  `json:"subtasks,omitempty"`
	ChildFailures []ChildFailure `json:"subtask_failures,omitempty"`
	TotalCount    int            `json:"total_tasks,omitempty"`
	Error         string         `json:"error,omitempty"`
	ErrorKind     ErrorKind      `json:"error_kind,omitempty"`
	OriginalText  string         `json:"original_text"`
}

// Succeeded reports whether the parent item exists in the tracker
func (r ItemResult) Succeeded() bool {
	return r.Status == StatusCreated || r.Status == StatusPartial
}

// BatchResult aggregates the outcome of a batch
type BatchResult struct {
	BatchID           string       `json:"batch_id"`
	ProjectKey        string       `json:"project_key"`
	StartedAt         time.Time    `json:"started_at"`
	FinishedAt        time.Time    `json:"finished_at"`
	Requested         int          `json:"total_requested"`
	Created           int          `json:"total_created"`
	Partial           int          `json:"total_partial"`
	Failed            int          `json:"total_failed"`
	Skipped           int          `json:"total_skipped"`
	TrackerItemsTotal int          `json:"total_tasks_created"`
	Results           []ItemResult `json:"results"`
}

// Success reports whether every item was fully created
func (b *BatchResult) Success() bool {
	return b.Created == b.Requested
}

// Add appends an item result and updates the aggregate counters
func (b *BatchResult) Add(r ItemResult) {
	b.Results = append(b.Results, r)
	switch r.Status {
	case StatusCreated:
		b.Created++
	case StatusPartial:
		b.Partial++
	case StatusFailed:
		b.Failed++
	case StatusSkipped:
		b.Skipped++
	}
	if r.Succeeded() {
		b.TrackerItemsTotal += r.TotalCount
	}
}

// Item returns the request as a batch entry
func (r ContentRequest) Item() BatchItem {
	return BatchItem{
		Text:        r.Text,
		Description: r.Description,
		AssigneeID:  r.AssigneeID,
		PhaseIDs:    r.PhaseIDs,
	}
}
