package services

import (
	"fmt"
	"strings"

	"github.com/stiago2/jira-ai-agent/internal/config"
	"github.com/stiago2/jira-ai-agent/internal/helpers"
	"github.com/stiago2/jira-ai-agent/internal/models"
)

// ReportService renders results to the terminal and saves batch reports
type ReportService struct {
	config *config.ProcessingConfig
}

// NewReportService creates a new report service
func NewReportService(cfg *config.ProcessingConfig) *ReportService {
	return &ReportService{config: cfg}
}

// DisplayIntent displays a parsed intent
func (s *ReportService) DisplayIntent(intent *models.Intent) {
	helpers.PrintTitle("Intent")
	helpers.PrintInfo("Summary: %s", intent.Summary)
	helpers.PrintInfo("Type: %s | Priority: %s | Confidence: %.2f", intent.WorkType, intent.Priority, intent.Confidence)
	if intent.HasAssignee() {
		helpers.PrintInfo("Assignee: %s", intent.AssigneeName)
	}
	if len(intent.Labels) > 0 {
		helpers.PrintInfo("Labels: %s", strings.Join(intent.Labels, ", "))
	}
	helpers.PrintInfo("Description:")
	for _, line := range strings.Split(intent.Description, "\n") {
		helpers.PrintDetail("%s", line)
	}
	helpers.PrintSeparator()
}

// DisplayPlan displays what a workflow plan would create
func (s *ReportService) DisplayPlan(plan *models.WorkflowPlan) {
	helpers.PrintTitle("Workflow Plan: %s", plan.Parent.Title)
	helpers.PrintInfo("Content type: %s | Priority: %s", plan.ContentType, valueOr(string(plan.Parent.Priority), "-"))
	helpers.PrintInfo("Labels: %s", strings.Join(plan.Parent.Labels, ", "))
	if plan.Parent.Assignee != "" {
		helpers.PrintInfo("Assignee: %s", plan.Parent.Assignee)
	}
	helpers.PrintSeparator()

	for i, child := range plan.Children {
		helpers.PrintDetail("%d. %s", i+1, child.Title)
	}

	helpers.PrintSeparator()
	helpers.PrintInfo("Would create %d items (1 task + %d subtasks)", plan.TotalItems(), len(plan.Children))
}

// DisplayWorkflowResult displays the items created for one workflow
func (s *ReportService) DisplayWorkflowResult(result *models.WorkflowResult) {
	helpers.PrintSuccess("Created %s: %s", result.ParentKey, result.ParentSummary)
	helpers.PrintLink(result.ParentURL)

	for _, child := range result.Children {
		helpers.PrintDetail("%s %s", child.Key, child.Summary)
	}

	for _, failure := range result.ChildFailures {
		helpers.PrintWarning("Subtask %s failed: %s", failure.Phase, failure.Error)
	}

	helpers.PrintInfo("Total items created: %d", result.TotalCount)
}

// DisplayBatchResult displays every item outcome and the batch totals
func (s *ReportService) DisplayBatchResult(result *models.BatchResult) {
	helpers.PrintTitle("Batch %s", result.BatchID)
	helpers.PrintSeparator()

	for _, item := range result.Results {
		helpers.PrintProgress(item.Index+1, result.Requested, truncateText(item.OriginalText, 60))

		switch item.Status {
		case models.StatusCreated:
			helpers.PrintSuccess("%s (%d items)", item.ParentKey, item.TotalCount)
			helpers.PrintLink(item.ParentURL)
		case models.StatusPartial:
			helpers.PrintWarning("%s created, %s", item.ParentKey, item.Error)
			helpers.PrintLink(item.ParentURL)
		case models.StatusSkipped:
			helpers.PrintWarning("Skipped: %s", item.Error)
		default:
			helpers.PrintError("%s", item.Error)
		}
	}

	helpers.PrintSeparator()
	helpers.PrintInfo("Requested: %d | Created: %d | Partial: %d | Failed: %d | Skipped: %d",
		result.Requested, result.Created, result.Partial, result.Failed, result.Skipped)
	helpers.PrintInfo("Tracker items created: %d", result.TrackerItemsTotal)
}

// DisplayWorkflowStatus displays the progress of a workflow
func (s *ReportService) DisplayWorkflowStatus(status *models.WorkflowStatus) {
	helpers.PrintTitle("%s: %s", status.ParentKey, status.ParentSummary)
	helpers.PrintInfo("Status: %s", status.ParentStatus)
	helpers.PrintSeparator()

	for _, sub := range status.Subtasks {
		mark := "⬜"
		if sub.Done {
			mark = "✅"
		}
		helpers.PrintDetail("%s %s %s [%s]", mark, sub.Key, sub.Summary, sub.Status)
	}

	helpers.PrintSeparator()
	helpers.PrintInfo("Progress: %d/%d completed (%.2f%%)",
		status.Progress.Completed, status.Progress.Total, status.Progress.Percentage)
}

// DisplayPhases displays the phase catalog
func (s *ReportService) DisplayPhases(phases []models.Phase) {
	helpers.PrintTitle("Production phases")
	for i, phase := range phases {
		helpers.PrintDetail("%d. %s %s (%s)", i+1, phase.Icon, phase.Name, phase.ID)
	}
}

// DisplayProjects displays the projects visible to the account
func (s *ReportService) DisplayProjects(projects []models.JiraProjectInfo) {
	helpers.PrintTitle("Projects (%d)", len(projects))
	for _, p := range projects {
		helpers.PrintDetail("%-10s %s", p.Key, p.Name)
	}
}

// DisplayUsers displays assignable users with the account IDs that
// --assignee and the batch "assignee" field expect
func (s *ReportService) DisplayUsers(projectKey string, users []models.JiraUser) {
	helpers.PrintTitle("Assignable users in %s (%d)", projectKey, len(users))
	for _, u := range users {
		helpers.PrintDetail("%-30s %s", u.DisplayName, u.AccountID)
	}
}

// SaveBatchReport writes the batch result as JSON plus a markdown summary
// into the configured output directory.
func (s *ReportService) SaveBatchReport(result *models.BatchResult) (string, string, error) {
	if err := helpers.EnsureDir(s.config.OutputDir); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonPath := helpers.GetOutputPath(s.config.OutputDir, helpers.GenerateOutputFilename("batch-result", "json", result.StartedAt))
	if err := helpers.SaveJSON(result, jsonPath); err != nil {
		return "", "", fmt.Errorf("failed to save batch result: %w", err)
	}

	mdPath := helpers.GetOutputPath(s.config.OutputDir, helpers.GenerateOutputFilename("batch-summary", "md", result.StartedAt))
	if err := helpers.SaveText(renderBatchSummary(result), mdPath); err != nil {
		return "", "", fmt.Errorf("failed to save batch summary: %w", err)
	}

	return jsonPath, mdPath, nil
}

func renderBatchSummary(result *models.BatchResult) string {
	var summary strings.Builder

	fmt.Fprintf(&summary, "# Batch %s\n\n", result.BatchID)
	fmt.Fprintf(&summary, "**Project:** %s\n", result.ProjectKey)
	fmt.Fprintf(&summary, "**Started:** %s\n", result.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&summary, "**Requested:** %d | **Created:** %d | **Partial:** %d | **Failed:** %d | **Skipped:** %d\n",
		result.Requested, result.Created, result.Partial, result.Failed, result.Skipped)
	fmt.Fprintf(&summary, "**Tracker items:** %d\n\n", result.TrackerItemsTotal)

	for _, item := range result.Results {
		fmt.Fprintf(&summary, "## %d. %s\n\n", item.Index+1, truncateText(item.OriginalText, 80))
		fmt.Fprintf(&summary, "**Status:** %s\n\n", item.Status)

		if item.ParentKey != "" {
			fmt.Fprintf(&summary, "[%s](%s)\n\n", item.ParentKey, item.ParentURL)
		}

		for _, child := range item.Children {
			fmt.Fprintf(&summary, "- [%s](%s) %s\n", child.Key, child.URL, child.Summary)
		}
		for _, failure := range item.ChildFailures {
			fmt.Fprintf(&summary, "- ❌ %s: %s\n", failure.Phase, failure.Error)
		}
		if len(item.Children)+len(item.ChildFailures) > 0 {
			summary.WriteString("\n")
		}

		if item.Error != "" && item.Status != models.StatusPartial {
			fmt.Fprintf(&summary, "**Error:** %s\n\n", item.Error)
		}
	}

	return summary.String()
}

func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
