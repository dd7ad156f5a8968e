package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stiago2/jira-ai-agent/internal/models"
	"github.com/stiago2/jira-ai-agent/internal/repositories"
)

// Tracker is the issue tracker client the services depend on.
// *repositories.JiraRepository implements it.
type Tracker interface {
	GetMyself(ctx context.Context) (*models.JiraMyself, error)
	ListProjects(ctx context.Context) ([]models.JiraProjectInfo, error)
	GetProjectInfo(ctx context.Context, projectKey string) (*models.JiraProjectInfo, error)
	CreateIssue(ctx context.Context, issue *models.JiraIssue) (*models.JiraResponse, error)
	GetIssue(ctx context.Context, key string) (*models.JiraIssueRecord, error)
	SearchUsers(ctx context.Context, query, projectKey string) ([]models.JiraUser, error)
	BrowseURL(key string) string
}

var _ Tracker = (*repositories.JiraRepository)(nil)

// JiraService handles JIRA business logic
type JiraService struct {
	repo   Tracker
	logger zerolog.Logger
}

// NewJiraService creates a new JIRA service
func NewJiraService(repo Tracker, logger zerolog.Logger) *JiraService {
	return &JiraService{
		repo:   repo,
		logger: logger,
	}
}

// TestConnection checks the credentials and access to the target project
func (s *JiraService) TestConnection(ctx context.Context, projectKey string) (*models.JiraMyself, error) {
	me, err := s.repo.GetMyself(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	s.logger.Debug().
		Str("account_id", me.AccountID).
		Str("display_name", me.DisplayName).
		Msg("authenticated against tracker")

	project, err := s.repo.GetProjectInfo(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to access project %s: %w", projectKey, err)
	}

	if len(project.IssueTypes) > 0 && !project.HasSubtaskType() {
		s.logger.Warn().
			Str("project", projectKey).
			Msg("project has no subtask issue type, phase subtasks will fail")
	}

	return me, nil
}

// ListProjects returns the projects the account can access
func (s *JiraService) ListProjects(ctx context.Context) ([]models.JiraProjectInfo, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ResolveAccountID looks up a tracker account for a free-text name.
// It returns (nil, nil) when nobody matches and (nil, err) when the lookup
// itself failed.
func (s *JiraService) ResolveAccountID(ctx context.Context, name, projectKey string) (*models.Identity, error) {
	users, err := s.repo.SearchUsers(ctx, name, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to search users for %q: %w", name, err)
	}

	if len(users) == 0 {
		return nil, nil
	}

	return &models.Identity{
		AccountID:   users[0].AccountID,
		DisplayName: users[0].DisplayName,
	}, nil
}

// ListAssignableUsers returns the active users that can own issues in a project
func (s *JiraService) ListAssignableUsers(ctx context.Context, projectKey string) ([]models.JiraUser, error) {
	users, err := s.repo.SearchUsers(ctx, "", projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list users of project %s: %w", projectKey, err)
	}

	active := make([]models.JiraUser, 0, len(users))
	for _, u := range users {
		if u.Active {
			active = append(active, u)
		}
	}

	return active, nil
}

// CreateIssue creates a single JIRA issue from a descriptor
func (s *JiraService) CreateIssue(ctx context.Context, projectKey string, d models.IssueDescriptor) (*models.JiraResponse, error) {
	issue := &models.JiraIssue{
		Fields: models.JiraFields{
			Project: models.JiraProject{
				Key: projectKey,
			},
			Summary:     d.Title,
			Description: repositories.NewADFDocument(d.Body),
			IssueType: models.JiraIssueType{
				Name: d.IssueType,
			},
			Labels: d.Labels,
		},
	}

	if d.Priority != "" {
		issue.Fields.Priority = &models.JiraPriority{Name: string(d.Priority)}
	}

	if d.Assignee != "" {
		issue.Fields.Assignee = &models.JiraAccount{ID: d.Assignee}
	}

	if d.ParentKey != "" {
		issue.Fields.Parent = &models.JiraParent{Key: d.ParentKey}
	}

	s.logger.Debug().
		Str("project", projectKey).
		Str("issue_type", d.IssueType).
		Str("parent", d.ParentKey).
		Str("summary", d.Title).
		Msg("creating issue")

	resp, err := s.repo.CreateIssue(ctx, issue)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetIssue fetches an issue record
func (s *JiraService) GetIssue(ctx context.Context, key string) (*models.JiraIssueRecord, error) {
	return s.repo.GetIssue(ctx, key)
}

// BrowseURL returns the web URL of an issue
func (s *JiraService) BrowseURL(key string) string {
	return s.repo.BrowseURL(key)
}
