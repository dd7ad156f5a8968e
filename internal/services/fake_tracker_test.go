package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stiago2/jira-ai-agent/internal/models"
	"github.com/stiago2/jira-ai-agent/internal/parser"
)

// fakeTracker records created issues and hands out sequential keys
type fakeTracker struct {
	mu sync.Mutex

	next     int
	created  []*models.JiraIssue
	searches []string

	users     map[string][]models.JiraUser
	searchErr error
	myselfErr error
	issues    map[string]*models.JiraIssueRecord

	// failOn may reject an issue before it is created
	failOn func(issue *models.JiraIssue) error
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		users:  map[string][]models.JiraUser{},
		issues: map[string]*models.JiraIssueRecord{},
	}
}

func (f *fakeTracker) GetMyself(ctx context.Context) (*models.JiraMyself, error) {
	if f.myselfErr != nil {
		return nil, f.myselfErr
	}
	return &models.JiraMyself{AccountID: "me", DisplayName: "Bot"}, nil
}

func (f *fakeTracker) ListProjects(ctx context.Context) ([]models.JiraProjectInfo, error) {
	return []models.JiraProjectInfo{{Key: "KAN", Name: "Contenido"}}, nil
}

func (f *fakeTracker) GetProjectInfo(ctx context.Context, projectKey string) (*models.JiraProjectInfo, error) {
	return &models.JiraProjectInfo{Key: projectKey, Name: "Contenido"}, nil
}

func (f *fakeTracker) CreateIssue(ctx context.Context, issue *models.JiraIssue) (*models.JiraResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failOn != nil {
		if err := f.failOn(issue); err != nil {
			return nil, err
		}
	}

	f.next++
	f.created = append(f.created, issue)

	return &models.JiraResponse{
		ID:  fmt.Sprint(10000 + f.next),
		Key: fmt.Sprintf("%s-%d", issue.Fields.Project.Key, f.next),
	}, nil
}

func (f *fakeTracker) GetIssue(ctx context.Context, key string) (*models.JiraIssueRecord, error) {
	record, ok := f.issues[key]
	if !ok {
		return nil, &models.TrackerError{StatusCode: http.StatusNotFound, Message: "Issue does not exist"}
	}
	return record, nil
}

func (f *fakeTracker) SearchUsers(ctx context.Context, query, projectKey string) ([]models.JiraUser, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()

	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.users[query], nil
}

func (f *fakeTracker) BrowseURL(key string) string {
	return "https://acme.atlassian.net/browse/" + key
}

func (f *fakeTracker) parents() []*models.JiraIssue {
	var out []*models.JiraIssue
	for _, issue := range f.created {
		if issue.Fields.Parent == nil {
			out = append(out, issue)
		}
	}
	return out
}

// adfText flattens an ADF body back into blank-line separated paragraphs
func adfText(doc *models.ADFDocument) string {
	if doc == nil {
		return ""
	}
	var paragraphs []string
	for _, block := range doc.Content {
		for _, inline := range block.Content {
			paragraphs = append(paragraphs, inline.Text)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func failSummaryContaining(fragment string, err error) func(*models.JiraIssue) error {
	return func(issue *models.JiraIssue) error {
		if strings.Contains(issue.Fields.Summary, fragment) {
			return err
		}
		return nil
	}
}

func newTestServices(tracker *fakeTracker) (*JiraService, *WorkflowService, *Orchestrator) {
	logger := zerolog.Nop()

	p, err := parser.New(parser.DefaultOptions())
	if err != nil {
		panic(err)
	}

	jira := NewJiraService(tracker, logger)
	workflow := NewWorkflowService(jira, logger)
	orchestrator := NewOrchestrator(p, jira, workflow, OrchestratorConfig{
		DefaultProjectKey: "KAN",
		Limits: models.BatchLimits{
			MaxItems:             50,
			MaxTextLength:        1000,
			MaxDescriptionLength: 5000,
		},
	}, logger)

	return jira, workflow, orchestrator
}
