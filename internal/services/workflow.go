package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stiago2/jira-ai-agent/internal/models"
	"github.com/stiago2/jira-ai-agent/internal/parser"
)

// titlePrefixes are stripped from titles in this order; each one is checked
// against the result of the previous step.
var titlePrefixes = []string{
	"crear reel", "crear historia", "crear carrusel",
	"reel", "historia", "carrusel",
	"editar reel", "editar historia", "editar carrusel",
}

const workflowOverview = "🎯 WORKFLOW DE PRODUCCIÓN:\n" +
	"1. 🎬 Selección de tomas - Organización del material\n" +
	"2. ✂️ Edición - Montaje del video\n" +
	"3. 🎵 Diseño sonoro - Audio y música\n" +
	"4. 🎨 Color - Corrección y gradación de color\n" +
	"5. ✍️ Copy / Caption - Redacción de texto\n" +
	"6. 📤 Export - Exportación final\n\n" +
	"📊 SEGUIMIENTO:\n" +
	"- Cada fase tiene su propia subtarea\n" +
	"- Completa las subtareas en orden\n" +
	"- El proyecto estará listo cuando todas las subtareas estén completas\n\n" +
	"🤖 Creado automáticamente por Jira AI Agent"

var doneStatuses = map[string]bool{
	"done":      true,
	"completed": true,
	"closed":    true,
}

// CleanTitle removes redundant content-type prefixes and capitalizes the rest
func CleanTitle(title string) string {
	clean := title
	for _, prefix := range titlePrefixes {
		if len(clean) >= len(prefix) && strings.EqualFold(clean[:len(prefix)], prefix) {
			clean = strings.TrimSpace(clean[len(prefix):])
		}
	}
	return parser.Capitalize(clean)
}

// BuildPlan expands one content item into a parent descriptor and one child
// per selected phase. It makes no tracker calls.
func BuildPlan(in models.PlanInput) (*models.WorkflowPlan, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &models.ValidationError{Message: "title cannot be empty"}
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = models.ContentReel
	}

	phases, err := selectPhases(in.PhaseIDs)
	if err != nil {
		return nil, err
	}

	cleanTitle := CleanTitle(in.Title)
	labels := mergeLabels(in.Labels, contentType.Label())

	plan := &models.WorkflowPlan{
		ContentType: contentType,
		Parent: models.IssueDescriptor{
			Title:     fmt.Sprintf("%s %s IG | %s", contentType.Icon(), contentType, cleanTitle),
			Body:      parentBody(contentType, in.Title, in.Description),
			IssueType: models.IssueTypeParent,
			Priority:  in.Priority,
			Labels:    labels,
			Assignee:  in.AssigneeID,
		},
	}

	for _, phase := range phases {
		childLabels := make([]string, 0, len(labels)+len(phase.DefaultLabels))
		childLabels = append(childLabels, labels...)
		childLabels = append(childLabels, phase.DefaultLabels...)

		plan.Children = append(plan.Children, models.ChildDescriptor{
			Phase: phase,
			IssueDescriptor: models.IssueDescriptor{
				Title:     fmt.Sprintf("%s %s – %s", phase.Icon, phase.Name, cleanTitle),
				Body:      phase.BodyTemplate,
				IssueType: models.IssueTypeSubtask,
				Labels:    childLabels,
				Assignee:  in.AssigneeID,
			},
		})
	}

	return plan, nil
}

// selectPhases filters the catalog to ids, keeping catalog order. No ids
// selects every phase.
func selectPhases(ids []string) ([]models.Phase, error) {
	catalog := models.PhaseCatalog()
	if len(ids) == 0 {
		return catalog, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !models.IsKnownPhase(id) {
			return nil, &models.ValidationError{
				Message: fmt.Sprintf("unknown phase %q (valid: %s)", id, strings.Join(models.PhaseIDs(), ", ")),
			}
		}
		wanted[id] = true
	}

	selected := make([]models.Phase, 0, len(wanted))
	for _, phase := range catalog {
		if wanted[phase.ID] {
			selected = append(selected, phase)
		}
	}

	return selected, nil
}

func mergeLabels(base []string, extra ...string) []string {
	labels := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))

	for _, l := range append(append([]string{}, base...), extra...) {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		labels = append(labels, l)
	}

	return labels
}

func parentBody(contentType models.ContentType, title, description string) string {
	var body strings.Builder

	fmt.Fprintf(&body, "📹 PROYECTO: %s - %s\n\n", contentType, title)
	if description != "" {
		fmt.Fprintf(&body, "📝 DESCRIPCIÓN:\n%s\n\n", description)
	}
	body.WriteString(workflowOverview)

	return body.String()
}

// WorkflowService submits workflow plans and reports on their progress
type WorkflowService struct {
	jira   *JiraService
	logger zerolog.Logger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(jira *JiraService, logger zerolog.Logger) *WorkflowService {
	return &WorkflowService{
		jira:   jira,
		logger: logger,
	}
}

// Submit creates the parent, then each child under it in plan order. A parent
// failure fails the whole submission; child failures are collected on the
// result and the remaining children are still attempted.
func (s *WorkflowService) Submit(ctx context.Context, projectKey string, plan *models.WorkflowPlan) (*models.WorkflowResult, error) {
	parent, err := s.jira.CreateIssue(ctx, projectKey, plan.Parent)
	if err != nil {
		return nil, fmt.Errorf("failed to create main task: %w", err)
	}

	s.logger.Info().
		Str("key", parent.Key).
		Str("content_type", string(plan.ContentType)).
		Msg("created main task")

	result := &models.WorkflowResult{
		ParentKey:     parent.Key,
		ParentURL:     s.jira.BrowseURL(parent.Key),
		ParentSummary: plan.Parent.Title,
		ContentType:   plan.ContentType,
		Priority:      plan.Parent.Priority,
		Labels:        plan.Parent.Labels,
	}

	for _, child := range plan.Children {
		descriptor := child.IssueDescriptor
		descriptor.ParentKey = parent.Key

		created, err := s.jira.CreateIssue(ctx, projectKey, descriptor)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("parent", parent.Key).
				Str("phase", child.Phase.ID).
				Msg("failed to create subtask")

			result.ChildFailures = append(result.ChildFailures, models.ChildFailure{
				PhaseID: child.Phase.ID,
				Phase:   child.Phase.Name,
				Error:   err.Error(),
			})
			continue
		}

		result.Children = append(result.Children, models.ChildResult{
			Key:     created.Key,
			Summary: descriptor.Title,
			Phase:   child.Phase.Name,
			Icon:    child.Phase.Icon,
			URL:     s.jira.BrowseURL(created.Key),
		})
	}

	result.TotalCount = 1 + len(result.Children)
	return result, nil
}

// Status reads a parent issue and summarizes the completion of its subtasks
func (s *WorkflowService) Status(ctx context.Context, parentKey string) (*models.WorkflowStatus, error) {
	record, err := s.jira.GetIssue(ctx, parentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow status: %w", err)
	}

	status := &models.WorkflowStatus{
		ParentKey:     parentKey,
		ParentSummary: record.Fields.Summary,
		ParentStatus:  statusName(record.Fields.Status),
	}

	for _, sub := range record.Fields.Subtasks {
		name := statusName(sub.Fields.Status)
		done := doneStatuses[strings.ToLower(name)]
		if done {
			status.Progress.Completed++
		}

		status.Subtasks = append(status.Subtasks, models.SubtaskStatus{
			Key:     sub.Key,
			Summary: sub.Fields.Summary,
			Status:  name,
			Done:    done,
		})
	}

	status.Progress.Total = len(status.Subtasks)
	status.Progress.InProgress = status.Progress.Total - status.Progress.Completed
	if status.Progress.Total > 0 {
		pct := float64(status.Progress.Completed) / float64(status.Progress.Total) * 100
		status.Progress.Percentage = math.Round(pct*100) / 100
	}

	return status, nil
}

func statusName(s models.JiraStatus) string {
	if s.Name == "" {
		return "Unknown"
	}
	return s.Name
}
