package models

// JiraIssue represents a JIRA issue creation request
type JiraIssue struct {
	Fields JiraFields `json:"fields"`
}

// JiraFields represents JIRA issue fields
type JiraFields struct {
	Project     JiraProject   `json:"project"`
	Summary     string        `json:"summary"`
	Description *ADFDocument  `json:"description,omitempty"`
	IssueType   JiraIssueType `json:"issuetype"`
	Priority    *JiraPriority `json:"priority,omitempty"`
	Labels      []string      `json:"labels,omitempty"`
	Assignee    *JiraAccount  `json:"assignee,omitempty"`
	Parent      *JiraParent   `json:"parent,omitempty"`
}

// JiraProject represents a JIRA project
type JiraProject struct {
	Key string `json:"key"`
}

// JiraIssueType represents a JIRA issue type
type JiraIssueType struct {
	Name string `json:"name"`
}

// JiraPriority represents a JIRA priority
type JiraPriority struct {
	Name string `json:"name"`
}

// JiraAccount references a user by account ID
type JiraAccount struct {
	ID string `json:"id"`
}

// JiraParent represents a JIRA parent issue
type JiraParent struct {
	Key string `json:"key"`
}

// JiraResponse represents a JIRA API response
type JiraResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// JiraProjectInfo represents JIRA project information
type JiraProjectInfo struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IssueTypes  []JiraIssueTypeInfo `json:"issueTypes,omitempty"`
}

// JiraIssueTypeInfo represents JIRA issue type information
type JiraIssueTypeInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

// HasSubtaskType reports whether the project accepts subtasks
func (p *JiraProjectInfo) HasSubtaskType() bool {
	for _, t := range p.IssueTypes {
		if t.Subtask {
			return true
		}
	}
	return false
}

// JiraUser is an entry returned by the user search endpoints
type JiraUser struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active"`
}

// JiraIssueRecord is the subset of GET /issue/{key} the workflow status needs
type JiraIssueRecord struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary  string           `json:"summary"`
		Status   JiraStatus       `json:"status"`
		Subtasks []JiraSubtaskRef `json:"subtasks"`
	} `json:"fields"`
}

// JiraSubtaskRef is a subtask embedded in a parent issue record
type JiraSubtaskRef struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary string     `json:"summary"`
		Status  JiraStatus `json:"status"`
	} `json:"fields"`
}

// JiraStatus represents an issue status
type JiraStatus struct {
	Name string `json:"name"`
}

// ADFDocument is an Atlassian Document Format document
type ADFDocument struct {
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Content []ADFNode `json:"content"`
}

// ADFNode is a block or inline ADF node
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// JiraMyself is the authenticated account returned by /myself
type JiraMyself struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Identity is a tracker account resolved from a free-text name
type Identity struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
}
