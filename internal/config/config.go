package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

// Config represents the application configuration
type Config struct {
	Jira       JiraConfig       `yaml:"jira"`
	Parser     ParserConfig     `yaml:"parser"`
	Batch      BatchConfig      `yaml:"batch"`
	Processing ProcessingConfig `yaml:"processing"`
}

// JiraConfig represents JIRA API configuration
type JiraConfig struct {
	BaseURL           string `yaml:"base_url"`
	Username          string `yaml:"username"`
	APIToken          string `yaml:"api_token"`
	ProjectKey        string `yaml:"project_key"`
	Timeout           int    `yaml:"timeout_seconds"`
	RetryCount        int    `yaml:"retry_count"`
	RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
}

// ParserConfig holds the classifier defaults
type ParserConfig struct {
	DefaultWorkType string `yaml:"default_work_type"`
	DefaultPriority string `yaml:"default_priority"`
}

// BatchConfig bounds batch requests
type BatchConfig struct {
	MaxItems             int `yaml:"max_items"`
	MaxTextLength        int `yaml:"max_text_length"`
	MaxDescriptionLength int `yaml:"max_description_length"`
}

// ProcessingConfig represents processing configuration
type ProcessingConfig struct {
	OutputDir   string `yaml:"output_dir"`
	SaveReports bool   `yaml:"save_reports"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

// Environment variables that override file values
const (
	EnvBaseURL    = "JIRA_BASE_URL"
	EnvEmail      = "JIRA_EMAIL"
	EnvAPIToken   = "JIRA_API_TOKEN"
	EnvProjectKey = "JIRA_PROJECT_KEY"
)

// Default returns a configuration with every optional value filled in
func Default() *Config {
	return &Config{
		Jira: JiraConfig{
			ProjectKey:        "KAN",
			Timeout:           30,
			RetryCount:        1,
			RetryDelaySeconds: 2,
		},
		Parser: ParserConfig{
			DefaultWorkType: string(models.WorkTypeTask),
			DefaultPriority: string(models.PriorityMedium),
		},
		Batch: BatchConfig{
			MaxItems:             50,
			MaxTextLength:        1000,
			MaxDescriptionLength: 5000,
		},
		Processing: ProcessingConfig{
			OutputDir: "./output",
			LogLevel:  "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file is not an
// error: defaults and environment variables are used instead.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// env-only setup
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv(os.Getenv)
	config.fillDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseURL); v != "" {
		c.Jira.BaseURL = v
	}
	if v := getenv(EnvEmail); v != "" {
		c.Jira.Username = v
	}
	if v := getenv(EnvAPIToken); v != "" {
		c.Jira.APIToken = v
	}
	if v := getenv(EnvProjectKey); v != "" {
		c.Jira.ProjectKey = v
	}
	c.Jira.BaseURL = strings.TrimRight(c.Jira.BaseURL, "/")
}

// fillDefaults restores defaults for numeric fields a partial file zeroed out
func (c *Config) fillDefaults() {
	d := Default()

	if c.Jira.Timeout <= 0 {
		c.Jira.Timeout = d.Jira.Timeout
	}
	if c.Jira.RetryCount <= 0 {
		c.Jira.RetryCount = d.Jira.RetryCount
	}
	if c.Jira.RetryDelaySeconds < 0 {
		c.Jira.RetryDelaySeconds = 0
	}
	if c.Parser.DefaultWorkType == "" {
		c.Parser.DefaultWorkType = d.Parser.DefaultWorkType
	}
	if c.Parser.DefaultPriority == "" {
		c.Parser.DefaultPriority = d.Parser.DefaultPriority
	}
	if c.Batch.MaxItems <= 0 {
		c.Batch.MaxItems = d.Batch.MaxItems
	}
	if c.Batch.MaxTextLength <= 0 {
		c.Batch.MaxTextLength = d.Batch.MaxTextLength
	}
	if c.Batch.MaxDescriptionLength <= 0 {
		c.Batch.MaxDescriptionLength = d.Batch.MaxDescriptionLength
	}
	if c.Processing.OutputDir == "" {
		c.Processing.OutputDir = d.Processing.OutputDir
	}
	if c.Processing.LogLevel == "" {
		c.Processing.LogLevel = d.Processing.LogLevel
	}
}

// Validate validates the settings every command needs. Tracker credentials
// are checked separately by JiraConfig.Validate.
func (c *Config) Validate() error {
	if !models.WorkType(c.Parser.DefaultWorkType).Valid() {
		return fmt.Errorf("unknown default work type %q", c.Parser.DefaultWorkType)
	}

	if !models.Priority(c.Parser.DefaultPriority).Valid() {
		return fmt.Errorf("unknown default priority %q", c.Parser.DefaultPriority)
	}

	if _, err := zerolog.ParseLevel(c.Processing.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Processing.LogLevel, err)
	}

	return nil
}

// Validate checks that the tracker can be reached with these settings
func (j *JiraConfig) Validate() error {
	if j.BaseURL == "" {
		return fmt.Errorf("JIRA base URL is required")
	}

	if j.Username == "" {
		return fmt.Errorf("JIRA username is required")
	}

	if j.APIToken == "" {
		return fmt.Errorf("JIRA API token is required")
	}

	return nil
}

// RequestTimeout is the per-request deadline for tracker calls
func (j *JiraConfig) RequestTimeout() time.Duration {
	return time.Duration(j.Timeout) * time.Second
}

// RetryDelay is the initial backoff between tracker attempts
func (j *JiraConfig) RetryDelay() time.Duration {
	return time.Duration(j.RetryDelaySeconds) * time.Second
}

// Limits converts the batch section into request limits
func (b BatchConfig) Limits() models.BatchLimits {
	return models.BatchLimits{
		MaxItems:             b.MaxItems,
		MaxTextLength:        b.MaxTextLength,
		MaxDescriptionLength: b.MaxDescriptionLength,
	}
}

const sampleConfig = `jira:
  base_url: "https://your-company.atlassian.net"
  username: "you@example.com"
  api_token: "your-api-token"
  project_key: "KAN"
  timeout_seconds: 30
  retry_count: 1
  retry_delay_seconds: 2

parser:
  default_work_type: "Task"
  default_priority: "Medium"

batch:
  max_items: 50
  max_text_length: 1000
  max_description_length: 5000

processing:
  output_dir: "./output"
  save_reports: true
  log_level: "info"
  log_file: ""
`

// WriteSample writes an example configuration file. It refuses to replace an
// existing file unless force is set.
func WriteSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
