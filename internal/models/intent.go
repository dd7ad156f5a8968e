package models

// WorkType classifies a work item
type WorkType string

const (
	WorkTypeTask  WorkType = "Task"
	WorkTypeBug   WorkType = "Bug"
	WorkTypeStory WorkType = "Story"
	WorkTypeEpic  WorkType = "Epic"
)

// WorkTypes lists every valid work type
var WorkTypes = []WorkType{WorkTypeTask, WorkTypeBug, WorkTypeStory, WorkTypeEpic}

// Valid reports whether t is one of the known work types
func (t WorkType) Valid() bool {
	for _, known := range WorkTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Priority is a tracker priority name
type Priority string

const (
	PriorityHighest Priority = "Highest"
	PriorityHigh    Priority = "High"
	PriorityMedium  Priority = "Medium"
	PriorityLow     Priority = "Low"
	PriorityLowest  Priority = "Lowest"
)

// Priorities lists every valid priority, highest first
var Priorities = []Priority{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Intent is the structured result of parsing one free-text description.
// Values are returned by the parser and never modified afterwards.
type Intent struct {
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	WorkType     WorkType `json:"issue_type"`
	Priority     Priority `json:"priority"`
	AssigneeName string   `json:"assignee,omitempty"`
	Labels       []string `json:"labels"`
	Confidence   float64  `json:"confidence"`
}

// HasAssignee reports whether a person name was found in the text
func (i *Intent) HasAssignee() bool {
	return i.AssigneeName != ""
}
