package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stiago2/jira-ai-agent/internal/config"
	"github.com/stiago2/jira-ai-agent/internal/models"
	"github.com/stiago2/jira-ai-agent/internal/repositories"
)

func TestJiraService_CreateIssue(t *testing.T) {
	tracker := newFakeTracker()
	jira, _, _ := newTestServices(tracker)

	resp, err := jira.CreateIssue(context.Background(), "KAN", models.IssueDescriptor{
		Title:     "🎨 Color – Viaje",
		Body:      "primer bloque\n\nsegundo bloque",
		IssueType: models.IssueTypeSubtask,
		Labels:    []string{"reel", "color"},
		Assignee:  "acc-1",
		ParentKey: "KAN-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "KAN-1", resp.Key)

	require.Len(t, tracker.created, 1)
	fields := tracker.created[0].Fields
	assert.Equal(t, "KAN", fields.Project.Key)
	assert.Equal(t, "Subtask", fields.IssueType.Name)
	assert.Equal(t, "KAN-9", fields.Parent.Key)
	assert.Equal(t, "acc-1", fields.Assignee.ID)
	assert.Nil(t, fields.Priority)
	assert.Equal(t, []string{"reel", "color"}, fields.Labels)
	assert.Equal(t, "primer bloque\n\nsegundo bloque", adfText(fields.Description))
}

func TestJiraService_TestConnection(t *testing.T) {
	tracker := newFakeTracker()
	jira, _, _ := newTestServices(tracker)

	me, err := jira.TestConnection(context.Background(), "KAN")
	require.NoError(t, err)
	assert.Equal(t, "me", me.AccountID)

	tracker.myselfErr = &models.TrackerError{StatusCode: 401, Message: "nope"}
	_, err = jira.TestConnection(context.Background(), "KAN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.True(t, models.IsAuthError(err))
}

func TestJiraService_ResolveAccountID(t *testing.T) {
	tracker := newFakeTracker()
	tracker.users["Pedro"] = []models.JiraUser{
		{AccountID: "acc-pedro", DisplayName: "Pedro Pérez"},
		{AccountID: "acc-pedro-2", DisplayName: "Pedro Gil"},
	}
	jira, _, _ := newTestServices(tracker)

	identity, err := jira.ResolveAccountID(context.Background(), "Pedro", "KAN")
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{AccountID: "acc-pedro", DisplayName: "Pedro Pérez"}, identity)

	identity, err = jira.ResolveAccountID(context.Background(), "Nadie", "KAN")
	require.NoError(t, err)
	assert.Nil(t, identity)

	tracker.searchErr = errors.New("connection reset")
	identity, err = jira.ResolveAccountID(context.Background(), "Pedro", "KAN")
	require.Error(t, err)
	assert.Nil(t, identity)
}

func TestJiraService_ListProjects(t *testing.T) {
	jira, _, _ := newTestServices(newFakeTracker())

	projects, err := jira.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "KAN", projects[0].Key)
}

func TestJiraService_ListAssignableUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/user/assignable/search", r.URL.Path)
		assert.Equal(t, "KAN", r.URL.Query().Get("project"))
		_, _ = w.Write([]byte(`[
			{"accountId":"acc-ana","displayName":"Ana","active":true},
			{"accountId":"acc-old","displayName":"Exempleado","active":false},
			{"accountId":"acc-luis","displayName":"Luis","active":true}
		]`))
	}))
	t.Cleanup(srv.Close)

	repo := repositories.NewJiraRepository(&config.JiraConfig{BaseURL: srv.URL, Timeout: 5, RetryCount: 1})
	jira := NewJiraService(repo, zerolog.Nop())

	users, err := jira.ListAssignableUsers(context.Background(), "KAN")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "acc-ana", users[0].AccountID)
	assert.Equal(t, "acc-luis", users[1].AccountID)
}

func TestJiraService_ListAssignableUsersError(t *testing.T) {
	tracker := newFakeTracker()
	tracker.searchErr = &models.TrackerError{StatusCode: http.StatusNotFound, Message: "No project could be found with key 'NOPE'"}
	jira, _, _ := newTestServices(tracker)

	users, err := jira.ListAssignableUsers(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Nil(t, users)
	assert.True(t, models.IsNotFound(err))
	assert.Contains(t, err.Error(), "NOPE")
}
