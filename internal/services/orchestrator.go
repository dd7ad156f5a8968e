package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stiago2/jira-ai-agent/internal/models"
	"github.com/stiago2/jira-ai-agent/internal/parser"
)

// OrchestratorConfig holds the defaults applied to every request
type OrchestratorConfig struct {
	DefaultProjectKey string
	Limits            models.BatchLimits
}

// Orchestrator runs text through the parser, the plan builder and the
// tracker, one item or a whole batch at a time.
type Orchestrator struct {
	parser   *parser.Parser
	jira     *JiraService
	workflow *WorkflowService
	config   OrchestratorConfig
	logger   zerolog.Logger
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(p *parser.Parser, jira *JiraService, workflow *WorkflowService, cfg OrchestratorConfig, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		parser:   p,
		jira:     jira,
		workflow: workflow,
		config:   cfg,
		logger:   logger,
	}
}

// Preview parses text and builds its plan without calling the tracker.
// Assignee names found in the text are reported on the intent but not
// resolved.
func (o *Orchestrator) Preview(req models.ContentRequest) (*models.Preview, error) {
	if err := o.validateItem(o.projectKey(req.ProjectKey), req.Item()); err != nil {
		return nil, err
	}

	intent, plan, err := o.buildPlan(context.Background(), o.logger, "", req.Item(), false)
	if err != nil {
		return nil, typed(err)
	}

	return &models.Preview{Intent: intent, Plan: plan}, nil
}

// CreateFromText creates the workflow for a single item. Errors are returned
// typed so callers can branch on models.Classify.
func (o *Orchestrator) CreateFromText(ctx context.Context, req models.ContentRequest) (*models.WorkflowResult, error) {
	project := o.projectKey(req.ProjectKey)
	item := req.Item()

	if err := o.validateItem(project, item); err != nil {
		return nil, err
	}

	_, plan, err := o.buildPlan(ctx, o.logger, project, item, true)
	if err != nil {
		return nil, typed(err)
	}

	result, err := o.workflow.Submit(ctx, project, plan)
	if err != nil {
		return nil, typed(err)
	}

	return result, nil
}

// ProcessBatch creates one workflow per item, strictly in order. A failing
// item, including one with an unknown phase or an oversized text, is recorded
// and the batch moves on. The returned error is reserved for the request shape
// and the connection preflight.
func (o *Orchestrator) ProcessBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResult, error) {
	req.ProjectKey = o.projectKey(req.ProjectKey)

	if err := req.Validate(o.config.Limits); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}

	if _, err := o.jira.TestConnection(ctx, req.ProjectKey); err != nil {
		return nil, typed(err)
	}

	result := &models.BatchResult{
		BatchID:    uuid.NewString(),
		ProjectKey: req.ProjectKey,
		StartedAt:  time.Now(),
		Requested:  len(req.Tasks),
	}

	logger := o.logger.With().
		Str("batch_id", result.BatchID).
		Str("project", req.ProjectKey).
		Logger()

	logger.Info().Int("items", len(req.Tasks)).Msg("batch started")

	for i, item := range req.Tasks {
		if err := ctx.Err(); err != nil {
			result.Add(models.ItemResult{
				Index:        i,
				Status:       models.StatusSkipped,
				Error:        err.Error(),
				OriginalText: item.Text,
			})
			continue
		}

		result.Add(o.processItem(ctx, logger.With().Int("index", i).Logger(), req.ProjectKey, i, item))
	}

	result.FinishedAt = time.Now()

	logger.Info().
		Int("requested", result.Requested).
		Int("created", result.Created).
		Int("partial", result.Partial).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Int("tracker_items", result.TrackerItemsTotal).
		Dur("elapsed", result.FinishedAt.Sub(result.StartedAt)).
		Msg("batch finished")

	return result, nil
}

func (o *Orchestrator) processItem(ctx context.Context, logger zerolog.Logger, project string, index int, item models.BatchItem) (res models.ItemResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failedItem(logger, index, item.Text, &models.UnexpectedError{Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	if err := o.validateItem(project, item); err != nil {
		return failedItem(logger, index, item.Text, err)
	}

	_, plan, err := o.buildPlan(ctx, logger, project, item, true)
	if err != nil {
		return failedItem(logger, index, item.Text, err)
	}

	workflow, err := o.workflow.Submit(ctx, project, plan)
	if err != nil {
		return failedItem(logger, index, item.Text, err)
	}

	res = models.ItemResult{
		Index:         index,
		Status:        models.StatusCreated,
		ParentKey:     workflow.ParentKey,
		ParentURL:     workflow.ParentURL,
		ContentType:   workflow.ContentType,
		Children:      workflow.Children,
		ChildFailures: workflow.ChildFailures,
		TotalCount:    workflow.TotalCount,
		OriginalText:  item.Text,
	}

	if workflow.Partial() {
		res.Status = models.StatusPartial
		res.Error = fmt.Sprintf("%d of %d subtasks failed", len(workflow.ChildFailures), len(plan.Children))
		logger.Warn().Str("key", workflow.ParentKey).Msg(res.Error)
	}

	return res
}

func failedItem(logger zerolog.Logger, index int, text string, err error) models.ItemResult {
	err = typed(err)
	kind := models.Classify(err)

	logger.Warn().Err(err).Str("kind", string(kind)).Msg("item failed")

	return models.ItemResult{
		Index:        index,
		Status:       models.StatusFailed,
		Error:        err.Error(),
		ErrorKind:    kind,
		OriginalText: text,
	}
}

// buildPlan parses one item and turns it into a plan. With resolve set, a
// name found in the text is looked up in the tracker when no explicit
// assignee was given.
func (o *Orchestrator) buildPlan(ctx context.Context, logger zerolog.Logger, project string, item models.BatchItem, resolve bool) (*models.Intent, *models.WorkflowPlan, error) {
	intent, err := o.parser.Parse(item.Text)
	if err != nil {
		return nil, nil, err
	}

	assignee := item.AssigneeID
	if assignee == "" && resolve {
		assignee = o.resolveAssignee(ctx, logger, project, intent.AssigneeName)
	}

	description := item.Description
	if description == "" {
		description = intent.Description
	}

	plan, err := BuildPlan(models.PlanInput{
		Title:       intent.Summary,
		Description: description,
		ContentType: parser.DetectContentType(item.Text),
		Priority:    intent.Priority,
		Labels:      intent.Labels,
		AssigneeID:  assignee,
		PhaseIDs:    item.PhaseIDs,
	})
	if err != nil {
		return nil, nil, err
	}

	return intent, plan, nil
}

// resolveAssignee never fails: a name nobody matches, or a failed lookup,
// leaves the item unassigned.
func (o *Orchestrator) resolveAssignee(ctx context.Context, logger zerolog.Logger, project, name string) string {
	if name == "" {
		return ""
	}

	identity, err := o.jira.ResolveAccountID(ctx, name, project)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("assignee", name).Msg("user lookup failed, continuing unassigned")
		return ""
	case identity == nil:
		logger.Warn().Str("assignee", name).Msg("user not found, continuing unassigned")
		return ""
	}

	logger.Debug().
		Str("assignee", name).
		Str("account_id", identity.AccountID).
		Msg("resolved assignee")

	return identity.AccountID
}

func (o *Orchestrator) validateItem(project string, item models.BatchItem) error {
	if project == "" {
		return &models.ValidationError{Message: "project key is required"}
	}
	if err := item.Validate(o.config.Limits); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}
	return nil
}

func (o *Orchestrator) projectKey(key string) string {
	if key != "" {
		return key
	}
	return o.config.DefaultProjectKey
}

// typed wraps errors outside the taxonomy so callers always get a known kind
func typed(err error) error {
	if models.Classify(err) != models.KindUnexpected {
		return err
	}
	var unexpected *models.UnexpectedError
	if errors.As(err, &unexpected) {
		return err
	}
	return &models.UnexpectedError{Err: err}
}
