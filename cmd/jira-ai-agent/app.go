package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stiago2/jira-ai-agent/internal/config"
	"github.com/stiago2/jira-ai-agent/internal/helpers"
	"github.com/stiago2/jira-ai-agent/internal/models"
	"github.com/stiago2/jira-ai-agent/internal/parser"
	"github.com/stiago2/jira-ai-agent/internal/repositories"
	"github.com/stiago2/jira-ai-agent/internal/services"
)

// app holds the services shared by the commands
type app struct {
	config *config.Config
	logger zerolog.Logger
	close  func()

	parser       *parser.Parser
	jira         *services.JiraService
	workflow     *services.WorkflowService
	orchestrator *services.Orchestrator
	reports      *services.ReportService
}

// newApp loads the configuration and wires the services. Tracker
// credentials are only required when needTracker is set.
func newApp(needTracker bool) (*app, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if needTracker {
		if err := cfg.Jira.Validate(); err != nil {
			return nil, &models.ValidationError{Message: fmt.Sprintf("invalid jira config: %v", err)}
		}
	}

	logger, closer, err := helpers.NewLogger(cfg.Processing.LogLevel, cfg.Processing.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	p, err := parser.New(parser.Options{
		DefaultWorkType: models.WorkType(cfg.Parser.DefaultWorkType),
		DefaultPriority: models.Priority(cfg.Parser.DefaultPriority),
	})
	if err != nil {
		closer()
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	repo := repositories.NewJiraRepository(&cfg.Jira)
	jira := services.NewJiraService(repo, logger.With().Str("component", "jira").Logger())
	workflow := services.NewWorkflowService(jira, logger.With().Str("component", "workflow").Logger())
	orchestrator := services.NewOrchestrator(p, jira, workflow, services.OrchestratorConfig{
		DefaultProjectKey: cfg.Jira.ProjectKey,
		Limits:            cfg.Batch.Limits(),
	}, logger.With().Str("component", "orchestrator").Logger())

	return &app{
		config:       cfg,
		logger:       logger,
		close:        closer,
		parser:       p,
		jira:         jira,
		workflow:     workflow,
		orchestrator: orchestrator,
		reports:      services.NewReportService(&cfg.Processing),
	}, nil
}
