package models

// ContentType is the kind of Instagram content a workflow produces
type ContentType string

const (
	ContentReel     ContentType = "Reel"
	ContentStory    ContentType = "Historia"
	ContentCarousel ContentType = "Carrusel"
)

// Icon returns the emoji used in parent titles for the content type
func (c ContentType) Icon() string {
	switch c {
	case ContentCarousel:
		return "🎠"
	case ContentStory:
		return "📸"
	default:
		return "🎬"
	}
}

// Label returns the tag added to every item of the workflow
func (c ContentType) Label() string {
	switch c {
	case ContentCarousel:
		return "carrusel"
	case ContentStory:
		return "historia"
	default:
		return "reel"
	}
}

// Issue types used for workflow items
const (
	IssueTypeParent  = "Task"
	IssueTypeSubtask = "Subtask"
)

// Phase is one stage of the production checklist
type Phase struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Icon          string   `json:"emoji" yaml:"emoji"`
	BodyTemplate  string   `json:"description" yaml:"description"`
	DefaultLabels []string `json:"labels" yaml:"labels"`
}

// IssueDescriptor is a creation request for one tracker item.
// ParentKey is empty for the parent and filled once the parent exists.
type IssueDescriptor struct {
	Title     string   `json:"summary"`
	Body      string   `json:"description"`
	IssueType string   `json:"issue_type"`
	Priority  Priority `json:"priority,omitempty"`
	Labels    []string `json:"labels"`
	Assignee  string   `json:"assignee,omitempty"`
	ParentKey string   `json:"parent_key,omitempty"`
}

// ChildDescriptor is a subtask creation request bound to a phase
type ChildDescriptor struct {
	Phase Phase `json:"phase"`
	IssueDescriptor
}

// PlanInput carries everything the plan builder needs for one content item
type PlanInput struct {
	Title       string
	Description string
	ContentType ContentType
	Priority    Priority
	Labels      []string
	AssigneeID  string
	PhaseIDs    []string
}

// WorkflowPlan is the parent plus ordered children derived from an intent
type WorkflowPlan struct {
	ContentType ContentType       `json:"content_type"`
	Parent      IssueDescriptor   `json:"parent"`
	Children    []ChildDescriptor `json:"children"`
}

// TotalItems returns the number of tracker items the plan creates
func (p *WorkflowPlan) TotalItems() int {
	return 1 + len(p.Children)
}

// ChildResult describes a subtask created for a phase
type ChildResult struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Phase   string `json:"phase"`
	Icon    string `json:"emoji"`
	URL     string `json:"url"`
}

// ChildFailure records a subtask that could not be created
type ChildFailure struct {
	PhaseID string `json:"phase_id"`
	Phase   string `json:"phase"`
	Error   string `json:"error"`
}

// WorkflowResult is what the tracker confirmed for one submitted plan
type WorkflowResult struct {
	ParentKey     string         `json:"main_task_key"`
	ParentURL     string         `json:"main_task_url"`
	ParentSummary string         `json:"main_task_summary"`
	ContentType   ContentType    `json:"content_type"`
	Priority      Priority       `json:"priority"`
	Labels        []string       `json:"labels"`
	Children      []ChildResult  `json:"subtasks"`
	ChildFailures []ChildFailure `json:"subtask_failures,omitempty"`
	TotalCount    int            `json:"total_tasks"`
}

// Partial reports whether some children failed after the parent was created
func (r *WorkflowResult) Partial() bool {
	return len(r.ChildFailures) > 0
}

// SubtaskStatus is one subtask line of a workflow status report
type SubtaskStatus struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
	Done    bool   `json:"is_done"`
}

// WorkflowProgress aggregates subtask completion
type WorkflowProgress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	InProgress int     `json:"in_progress"`
	Percentage float64 `json:"percentage"`
}

// WorkflowStatus reports the state of a previously created workflow
type WorkflowStatus struct {
	ParentKey     string           `json:"main_task_key"`
	ParentSummary string           `json:"main_task_summary"`
	ParentStatus  string           `json:"main_task_status"`
	Subtasks      []SubtaskStatus  `json:"subtasks"`
	Progress      WorkflowProgress `json:"progress"`
}

// Preview is a parsed intent and the plan it would submit
type Preview struct {
	Intent *Intent       `json:"intent"`
	Plan   *WorkflowPlan `json:"plan"`
}
