package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stiago2/jira-ai-agent/internal/config"
	"github.com/stiago2/jira-ai-agent/internal/helpers"
	"github.com/stiago2/jira-ai-agent/internal/models"
)

var (
	configFile string
	noColor    bool
	jsonOutput bool
	dryRun     bool
	assumeYes  bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "jira-ai-agent",
		Short: "Jira AI Agent - turn Spanish requests into Jira content workflows",
		Long: `Jira AI Agent reads short Spanish requests such as
"Crear reel sobre viaje a cartagena, prioridad alta, asignado a María"
and creates a Jira task with one subtask per production phase.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || !helpers.IsTerminal() {
				helpers.DisableColor()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Init command
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)

	// Parse command
	var parseCmd = &cobra.Command{
		Use:   "parse <text>",
		Short: "Show the intent extracted from a request",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the intent as JSON")
	rootCmd.AddCommand(parseCmd)

	// Create command
	var createCmd = &cobra.Command{
		Use:   "create <text>",
		Short: "Create a content workflow from a request",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCreate,
	}
	createCmd.Flags().String("description", "", "Description to use instead of the generated one")
	createCmd.Flags().StringSlice("subtasks", nil, "Phases to create (default all): "+strings.Join(models.PhaseIDs(), ","))
	createCmd.Flags().String("assignee", "", "Account ID to assign, skips the user lookup")
	createCmd.Flags().StringP("project", "p", "", "Project key (default from config)")
	createCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Show what would be created without creating it")
	createCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	createCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(createCmd)

	// Batch command
	var batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Create workflows for every item of a JSON batch",
		Long: `Reads {"project_key": "KAN", "tasks": [{"text": "..."}]} from --file or stdin
and creates one workflow per item. A failing item does not stop the batch.`,
		Args: cobra.NoArgs,
		RunE: runBatch,
	}
	batchCmd.Flags().StringP("file", "f", "", "Path to the batch JSON file (reads stdin if not provided)")
	batchCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Show what would be created without creating it")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	batchCmd.Flags().Bool("strict", false, "Exit non-zero when any item was not created")
	rootCmd.AddCommand(batchCmd)

	// Status command
	var statusCmd = &cobra.Command{
		Use:   "status <parent-key>",
		Short: "Show the progress of a workflow",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatus,
	}
	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the status as JSON")
	rootCmd.AddCommand(statusCmd)

	// Phases command
	var phasesCmd = &cobra.Command{
		Use:   "phases",
		Short: "List the production phases",
		Args:  cobra.NoArgs,
		RunE:  runPhases,
	}
	phasesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the phases as JSON")
	rootCmd.AddCommand(phasesCmd)

	// Projects command
	var projectsCmd = &cobra.Command{
		Use:   "projects",
		Short: "List the Jira projects the account can access",
		Args:  cobra.NoArgs,
		RunE:  runProjects,
	}
	rootCmd.AddCommand(projectsCmd)

	// Users command
	var usersCmd = &cobra.Command{
		Use:   "users [project]",
		Short: "List the active users that can be assigned in a project",
		Long: `Lists account IDs for use with create --assignee and the batch
"assignee" field. The project defaults to the configured project_key.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUsers,
	}
	usersCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the users as JSON")
	rootCmd.AddCommand(usersCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		helpers.PrintError("%s", exitMessage(err))
		stop()
		os.Exit(1)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	helpers.PrintTitle("Initializing Jira AI Agent Configuration")

	if !force && helpers.FileExists(configFile) {
		helpers.PrintWarning("Configuration file already exists at %s", configFile)
		if !helpers.IsInteractive() || !confirm(os.Stdin, "Do you want to overwrite it? (y/N): ") {
			helpers.PrintInfo("Configuration initialization cancelled")
			return nil
		}
		force = true
	}

	if err := config.WriteSample(configFile, force); err != nil {
		return err
	}

	helpers.PrintSuccess("Configuration written to %s", configFile)
	helpers.PrintInfo("Set %s and %s or edit the file before creating issues", config.EnvEmail, config.EnvAPIToken)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	intent, err := a.parser.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput {
		return helpers.WriteJSON(os.Stdout, intent)
	}

	a.reports.DisplayIntent(intent)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	subtasks, _ := cmd.Flags().GetStringSlice("subtasks")
	assignee, _ := cmd.Flags().GetString("assignee")
	project, _ := cmd.Flags().GetString("project")

	a, err := newApp(!dryRun)
	if err != nil {
		return err
	}
	defer a.close()

	req := models.ContentRequest{
		Text:        strings.Join(args, " "),
		ProjectKey:  project,
		Description: description,
		AssigneeID:  assignee,
		PhaseIDs:    subtasks,
	}

	preview, err := a.orchestrator.Preview(req)
	if err != nil {
		return err
	}

	if dryRun {
		if jsonOutput {
			return helpers.WriteJSON(os.Stdout, preview)
		}
		a.reports.DisplayIntent(preview.Intent)
		a.reports.DisplayPlan(preview.Plan)
		helpers.PrintInfo("Dry run mode - no JIRA issues will be created")
		return nil
	}

	if !jsonOutput {
		a.reports.DisplayPlan(preview.Plan)
	}

	if !assumeYes && helpers.IsInteractive() && !confirmCreation() {
		helpers.PrintInfo("Operation cancelled by user")
		return nil
	}

	result, err := a.orchestrator.CreateFromText(cmd.Context(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return helpers.WriteJSON(os.Stdout, result)
	}

	a.reports.DisplayWorkflowResult(result)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	strict, _ := cmd.Flags().GetBool("strict")

	req, err := helpers.ReadJSONInput[models.BatchRequest](file)
	if err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	a, err := newApp(!dryRun)
	if err != nil {
		return err
	}
	defer a.close()

	if dryRun {
		return previewBatch(a, req)
	}

	if !jsonOutput {
		helpers.PrintTitle("Processing %d items", len(req.Tasks))
	}

	result, err := a.orchestrator.ProcessBatch(cmd.Context(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := helpers.WriteJSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		a.reports.DisplayBatchResult(result)
	}

	if a.config.Processing.SaveReports {
		jsonPath, mdPath, err := a.reports.SaveBatchReport(result)
		if err != nil {
			helpers.PrintWarning("Failed to save batch report: %v", err)
		} else if !jsonOutput {
			helpers.PrintSuccess("Saved batch report to: %s", jsonPath)
			helpers.PrintSuccess("Saved summary to: %s", mdPath)
		}
	}

	return batchOutcome(result, strict)
}

// batchOutcome reports item failures as an error only in strict mode; otherwise
// the counts in the result are the outcome.
func batchOutcome(result *models.BatchResult, strict bool) error {
	notCreated := result.Failed + result.Skipped
	if notCreated == 0 {
		return nil
	}

	if !strict {
		if !jsonOutput {
			helpers.PrintWarning("%d of %d items were not created", notCreated, result.Requested)
		}
		return nil
	}

	return fmt.Errorf("%d of %d items were not created", notCreated, result.Requested)
}

func previewBatch(a *app, req models.BatchRequest) error {
	var previews []*models.Preview

	for i, item := range req.Tasks {
		preview, err := a.orchestrator.Preview(models.ContentRequest{
			Text:        item.Text,
			ProjectKey:  req.ProjectKey,
			Description: item.Description,
			AssigneeID:  item.AssigneeID,
			PhaseIDs:    item.PhaseIDs,
		})
		if err != nil {
			if jsonOutput {
				previews = append(previews, nil)
				continue
			}
			helpers.PrintProgress(i+1, len(req.Tasks), item.Text)
			helpers.PrintError("%v", err)
			continue
		}

		if jsonOutput {
			previews = append(previews, preview)
			continue
		}

		helpers.PrintProgress(i+1, len(req.Tasks), item.Text)
		a.reports.DisplayPlan(preview.Plan)
	}

	if jsonOutput {
		return helpers.WriteJSON(os.Stdout, previews)
	}

	helpers.PrintInfo("Dry run mode - no JIRA issues will be created")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	status, err := a.workflow.Status(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return helpers.WriteJSON(os.Stdout, status)
	}

	a.reports.DisplayWorkflowStatus(status)
	return nil
}

func runPhases(cmd *cobra.Command, args []string) error {
	phases := models.PhaseCatalog()

	if jsonOutput {
		return helpers.WriteJSON(os.Stdout, phases)
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	a.reports.DisplayPhases(phases)
	return nil
}

func runProjects(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	projects, err := a.jira.ListProjects(cmd.Context())
	if err != nil {
		return err
	}

	a.reports.DisplayProjects(projects)
	return nil
}

func runUsers(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	project := a.config.Jira.ProjectKey
	if len(args) == 1 {
		project = args[0]
	}

	users, err := a.jira.ListAssignableUsers(cmd.Context(), project)
	if err != nil {
		return err
	}

	if jsonOutput {
		return helpers.WriteJSON(os.Stdout, users)
	}

	a.reports.DisplayUsers(project, users)
	return nil
}

// exitMessage turns an error into the line shown before exiting
func exitMessage(err error) string {
	switch models.Classify(err) {
	case models.KindValidation:
		return fmt.Sprintf("Invalid input: %v", err)
	case models.KindTrackerAuth:
		return fmt.Sprintf("Jira rejected the credentials, check username and api_token: %v", err)
	case models.KindTrackerGeneric:
		if models.IsNotFound(err) {
			return fmt.Sprintf("Not found in Jira: %v", err)
		}
		return fmt.Sprintf("Jira request failed: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func confirmCreation() bool {
	return confirm(os.Stdin, "Do you want to create these issues in JIRA? (y/N): ")
}

func confirm(in io.Reader, prompt string) bool {
	reader := bufio.NewReader(in)
	fmt.Print(prompt)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes" || response == "s" || response == "si" || response == "sí"
}
