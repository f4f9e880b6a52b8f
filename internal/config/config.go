// Package config provides centralized configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported AI providers.
const (
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
)

// DefaultJQL selects the current user's open tickets.
const DefaultJQL = `assignee = currentUser() AND status in ("To Do", "In Progress", "On Hold") ORDER BY priority DESC`

// DefaultInstruction is the prompt used when ai.instruction is not configured.
const DefaultInstruction = `You are helping a software engineer prepare for their daily standup.
Using the data below, write a short summary with three parts: what was done
on the previous workday, what is planned for today, and any blockers.
Refer to tickets by their identifiers and keep it concise.`

// Config holds all configuration parameters for the application.
type Config struct {
	Jira        JiraConfig        `mapstructure:"jira"`
	GitHub      GitHubConfig      `mapstructure:"github"`
	Git         GitConfig         `mapstructure:"git"`
	Timewarrior TimewarriorConfig `mapstructure:"timewarrior"`
	Paths       PathsConfig       `mapstructure:"paths"`
	AI          AIConfig          `mapstructure:"ai"`
	Secrets     SecretsConfig     `mapstructure:"secrets"`
	Log         LogConfig         `mapstructure:"log"`
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	Domain     string `mapstructure:"domain"`
	Email      string `mapstructure:"email"`
	APIKey     string `mapstructure:"api_key"`
	JQL        string `mapstructure:"jql"`
	MaxResults int    `mapstructure:"max_results"`
}

// GitHubConfig holds GitHub specific configuration.
// Either Token or the three App fields authenticate the client; the token
// wins when both are set.
type GitHubConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Token          string `mapstructure:"token"`
	AppID          int64  `mapstructure:"app_id"`
	InstallationID int64  `mapstructure:"installation_id"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
	Domain         string `mapstructure:"domain"`
	Username       string `mapstructure:"username"`
	Org            string `mapstructure:"org"`
	Days           int    `mapstructure:"days"`
}

// AppConfigured reports whether GitHub App credentials are complete.
func (c GitHubConfig) AppConfigured() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != ""
}

// GitConfig selects the local repositories and the author whose commits are read.
type GitConfig struct {
	Author      string   `mapstructure:"author"`
	Directories []string `mapstructure:"directories"`
	Since       string   `mapstructure:"since"`
}

// TimewarriorConfig controls the time-tracking summary.
type TimewarriorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Range   string `mapstructure:"range"`
}

// PathsConfig holds the notes and output locations.
type PathsConfig struct {
	NotesDirectory  string `mapstructure:"notes_directory"`
	OutputDirectory string `mapstructure:"output_directory"`
}

// AIConfig selects the generative model.
type AIConfig struct {
	Provider    string `mapstructure:"provider"`
	Model       string `mapstructure:"model"`
	ProjectID   string `mapstructure:"project_id"`
	Location    string `mapstructure:"location"`
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Instruction string `mapstructure:"instruction"`
}

// SecretsConfig points at the directory holding secrets.env.
type SecretsConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

var envBindings = map[string]string{
	"jira.domain":             "JIRA_DOMAIN",
	"jira.email":              "JIRA_EMAIL",
	"jira.api_key":            "JIRA_API_KEY",
	"jira.jql":                "JIRA_JQL",
	"github.enabled":          "GITHUB_ENABLED",
	"github.token":            "GITHUB_TOKEN",
	"github.app_id":           "GITHUB_APP_ID",
	"github.installation_id":  "GITHUB_INSTALLATION_ID",
	"github.private_key_path": "GITHUB_PRIVATE_KEY_PATH",
	"github.domain":           "GITHUB_DOMAIN",
	"github.username":         "GITHUB_USERNAME",
	"github.org":              "GITHUB_ORG",
	"git.author":              "GIT_AUTHOR",
	"paths.notes_directory":   "NOTES_DIRECTORY",
	"paths.output_directory":  "OUTPUT_DIRECTORY",
	"ai.provider":             "AI_PROVIDER",
	"ai.model":                "AI_MODEL",
	"ai.project_id":           "GOOGLE_CLOUD_PROJECT",
	"ai.location":             "GOOGLE_CLOUD_LOCATION",
	"ai.api_key":              "OPENAI_API_KEY",
	"ai.base_url":             "OPENAI_BASE_URL",
	"secrets.dir":             "SECRETS_DIR",
	"log.level":               "LOG_LEVEL",
	"log.file":                "LOG_FILE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("jira.jql", DefaultJQL)
	v.SetDefault("jira.max_results", 50)
	v.SetDefault("github.domain", "github.com")
	v.SetDefault("github.days", 2)
	v.SetDefault("git.directories", []string{})
	v.SetDefault("git.since", "yesterday")
	v.SetDefault("timewarrior.enabled", true)
	v.SetDefault("timewarrior.range", ":yesterday")
	v.SetDefault("ai.provider", ProviderVertex)
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.location", "us-central1")
	v.SetDefault("ai.instruction", DefaultInstruction)
	v.SetDefault("secrets.dir", "./secrets")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads the configuration file at path, or searches for
// config.{yaml,ini,...} in the working directory and $HOME/.standup when
// path is empty, then applies secrets.env and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".standup"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := loadSecrets(v); err != nil {
		return nil, err
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadSecrets exports the variables of <secrets.dir>/secrets.env into the
// process environment. Variables that are already set win.
func loadSecrets(v *viper.Viper) error {
	dir := os.Getenv("SECRETS_DIR")
	if dir == "" {
		dir = v.GetString("secrets.dir")
	}
	file := filepath.Join(dir, "secrets.env")

	if _, err := os.Stat(file); err != nil {
		return nil
	}
	if err := godotenv.Load(file); err != nil {
		return fmt.Errorf("failed to load secrets from %s: %w", file, err)
	}
	return nil
}

// validateConfig rejects values that cannot work no matter which sources are available.
func validateConfig(config *Config) error {
	var problems []string

	switch strings.ToLower(config.AI.Provider) {
	case ProviderVertex, ProviderOpenAI:
	default:
		problems = append(problems, fmt.Sprintf("ai.provider must be %q or %q, got %q", ProviderVertex, ProviderOpenAI, config.AI.Provider))
	}
	if config.GitHub.Days < 1 {
		problems = append(problems, "github.days must be at least 1")
	}
	if config.Jira.MaxResults < 0 {
		problems = append(problems, "jira.max_results must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config JiraConfig) error {
	var missingVars []string

	if config.Domain == "" {
		missingVars = append(missingVars, "JIRA_DOMAIN")
	}
	if config.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.APIKey == "" {
		missingVars = append(missingVars, "JIRA_API_KEY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// GitHubEnabled reports whether the GitHub activity source should be used.
func (c *Config) GitHubEnabled() bool {
	return c.GitHub.Enabled && c.GitHub.Username != "" &&
		(c.GitHub.Token != "" || c.GitHub.AppConfigured())
}
