package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/stiago2/jira-ai-agent/internal/config"
	"github.com/stiago2/jira-ai-agent/internal/models"
)

const apiPrefix = "/rest/api/3"

// JiraRepository handles JIRA API interactions
type JiraRepository struct {
	config      *config.JiraConfig
	client      *http.Client
	retryConfig retry.Config
	timeout     time.Duration
}

// NewJiraRepository creates a new JIRA repository
func NewJiraRepository(jiraConfig *config.JiraConfig) *JiraRepository {
	attempts := max(jiraConfig.RetryCount, 1)

	return &JiraRepository{
		config: jiraConfig,
		client: &http.Client{},
		retryConfig: retry.Config{
			MaxAttempts:   attempts,
			InitialDelay:  jiraConfig.RetryDelay(),
			BackoffPolicy: retry.BackoffExponential,
		},
		timeout: jiraConfig.RequestTimeout(),
	}
}

// BrowseURL returns the web URL of an issue
func (r *JiraRepository) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", r.config.BaseURL, key)
}

// GetMyself returns the authenticated account
func (r *JiraRepository) GetMyself(ctx context.Context) (*models.JiraMyself, error) {
	var me models.JiraMyself
	if err := r.do(ctx, http.MethodGet, "/myself", nil, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// ListProjects returns the projects the account can access
func (r *JiraRepository) ListProjects(ctx context.Context) ([]models.JiraProjectInfo, error) {
	var projects []models.JiraProjectInfo
	if err := r.do(ctx, http.MethodGet, "/project", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectInfo gets information about a specific project, including its
// issue types
func (r *JiraRepository) GetProjectInfo(ctx context.Context, projectKey string) (*models.JiraProjectInfo, error) {
	var project models.JiraProjectInfo
	if err := r.do(ctx, http.MethodGet, "/project/"+url.PathEscape(projectKey), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateIssue creates a new JIRA issue
func (r *JiraRepository) CreateIssue(ctx context.Context, issue *models.JiraIssue) (*models.JiraResponse, error) {
	var created models.JiraResponse
	if err := r.do(ctx, http.MethodPost, "/issue", nil, issue, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetIssue fetches an issue with its status and subtasks
func (r *JiraRepository) GetIssue(ctx context.Context, key string) (*models.JiraIssueRecord, error) {
	var record models.JiraIssueRecord
	if err := r.do(ctx, http.MethodGet, "/issue/"+url.PathEscape(key), nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SearchUsers finds accounts matching query. With a project key the search is
// limited to users assignable in that project, and an empty query lists them all.
func (r *JiraRepository) SearchUsers(ctx context.Context, query, projectKey string) ([]models.JiraUser, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	path := "/user/search"
	if projectKey != "" {
		path = "/user/assignable/search"
		params.Set("project", projectKey)
	}

	var users []models.JiraUser
	if err := r.do(ctx, http.MethodGet, path, params, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type apiResponse struct {
	status int
	body   []byte
}

// do sends one API call. Transport failures and 5xx responses go through the
// retry policy; each attempt gets its own timeout.
func (r *JiraRepository) do(ctx context.Context, method, path string, params url.Values, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return &models.UnexpectedError{Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
	}

	endpoint := r.config.BaseURL + apiPrefix + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	retryer := retry.New[*apiResponse](r.retryConfig)
	limiter := timeout.New[*apiResponse](timeout.Config{DefaultTimeout: r.timeout})

	resp, err := retryer.Do(ctx, func(ctx context.Context) (*apiResponse, error) {
		return limiter.Execute(ctx, r.timeout, func(ctx context.Context) (*apiResponse, error) {
			return r.send(ctx, method, endpoint, body)
		})
	})
	if err != nil {
		var trackerErr *models.TrackerError
		if errors.As(err, &trackerErr) {
			return trackerErr
		}
		return &models.TrackerError{Message: fmt.Sprintf("%s %s: %v", method, path, err)}
	}

	if resp.status < 200 || resp.status > 299 {
		return &models.TrackerError{StatusCode: resp.status, Message: extractErrorMessage(resp)}
	}

	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return &models.UnexpectedError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

func (r *JiraRepository) send(ctx context.Context, method, endpoint string, body []byte) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(r.config.Username, r.config.APIToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result := &apiResponse{status: resp.StatusCode, body: data}
	if resp.StatusCode >= http.StatusInternalServerError {
		return result, &models.TrackerError{StatusCode: resp.StatusCode, Message: extractErrorMessage(result)}
	}

	return result, nil
}

// extractErrorMessage reads the Jira error envelope, which carries either a
// list of messages, a field->message map, or a single message.
func extractErrorMessage(resp *apiResponse) string {
	var envelope struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
		Message       string            `json:"message"`
	}

	if err := json.Unmarshal(resp.body, &envelope); err == nil {
		switch {
		case len(envelope.ErrorMessages) > 0:
			return strings.Join(envelope.ErrorMessages, "; ")
		case len(envelope.Errors) > 0:
			fields := make([]string, 0, len(envelope.Errors))
			for field := range envelope.Errors {
				fields = append(fields, field)
			}
			sort.Strings(fields)

			parts := make([]string, 0, len(fields))
			for _, field := range fields {
				parts = append(parts, field+": "+envelope.Errors[field])
			}
			return strings.Join(parts, "; ")
		case envelope.Message != "":
			return envelope.Message
		}
	}

	if text := strings.TrimSpace(string(resp.body)); text != "" {
		return text
	}

	return http.StatusText(resp.status)
}
