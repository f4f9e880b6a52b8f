package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the loader reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SECRETS_DIR", t.TempDir())

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultJQL, config.Jira.JQL)
	assert.Equal(t, 50, config.Jira.MaxResults)
	assert.Equal(t, "github.com", config.GitHub.Domain)
	assert.Equal(t, 2, config.GitHub.Days)
	assert.Equal(t, "yesterday", config.Git.Since)
	assert.Empty(t, config.Git.Directories)
	assert.True(t, config.Timewarrior.Enabled)
	assert.Equal(t, ":yesterday", config.Timewarrior.Range)
	assert.Equal(t, ProviderVertex, config.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.AI.Model)
	assert.Equal(t, DefaultInstruction, config.AI.Instruction)
	assert.Equal(t, "info", config.Log.Level)
	assert.False(t, config.GitHubEnabled())
}

func TestLoadConfigFromYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_DIR", t.TempDir())
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
jira:
  domain: example.atlassian.net
  email: dev@example.com
git:
  author: Dev Eloper
  directories:
    - /src/api
    - /src/web
  since: 2 days ago
paths:
  notes_directory: /notes
  output_directory: /out
ai:
  provider: openai
  model: gpt-4o-mini
github:
  enabled: true
  token: ghp_test
  username: dev
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "example.atlassian.net", config.Jira.Domain)
	assert.Equal(t, "dev@example.com", config.Jira.Email)
	assert.Equal(t, "Dev Eloper", config.Git.Author)
	assert.Equal(t, []string{"/src/api", "/src/web"}, config.Git.Directories)
	assert.Equal(t, "2 days ago", config.Git.Since)
	assert.Equal(t, "/notes", config.Paths.NotesDirectory)
	assert.Equal(t, "/out", config.Paths.OutputDirectory)
	assert.Equal(t, ProviderOpenAI, config.AI.Provider)
	assert.Equal(t, "gpt-4o-mini", config.AI.Model)
	assert.True(t, config.GitHubEnabled())
}

func TestLoadConfigFromINI(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_DIR", t.TempDir())
	path := writeFile(t, t.TempDir(), "config.ini", `
[jira]
domain = example.atlassian.net
email = dev@example.com

[paths]
notes_directory = /notes
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "example.atlassian.net", config.Jira.Domain)
	assert.Equal(t, "/notes", config.Paths.NotesDirectory)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_DIR", t.TempDir())
	path := writeFile(t, t.TempDir(), "config.yaml", "jira:\n  domain: from-file.atlassian.net\n")

	t.Setenv("JIRA_DOMAIN", "from-env.atlassian.net")
	t.Setenv("JIRA_API_KEY", "env-key")
	t.Setenv("GIT_AUTHOR", "Env Author")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.atlassian.net", config.Jira.Domain)
	assert.Equal(t, "env-key", config.Jira.APIKey)
	assert.Equal(t, "Env Author", config.Git.Author)
}

func TestLoadConfigSecretsFile(t *testing.T) {
	clearEnv(t)
	secrets := t.TempDir()
	writeFile(t, secrets, "secrets.env", "# local secrets\nJIRA_API_KEY=from-secrets\nOPENAI_API_KEY=sk-secret\n")
	t.Setenv("SECRETS_DIR", secrets)

	config, err := LoadConfig(writeFile(t, t.TempDir(), "config.yaml", "ai:\n  provider: openai\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-secrets", config.Jira.APIKey)
	assert.Equal(t, "sk-secret", config.AI.APIKey)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Unknown AI provider",
			content: "ai:\n  provider: carrier-pigeon\n",
		},
		{
			name:    "Non-positive GitHub day window",
			content: "github:\n  days: 0\n",
		},
		{
			name:    "Negative max results",
			content: "jira:\n  max_results: -1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SECRETS_DIR", t.TempDir())

			config, err := LoadConfig(writeFile(t, t.TempDir(), "config.yaml", tt.content))
			assert.Error(t, err)
			assert.Nil(t, config)
		})
	}

	t.Run("Missing explicit file", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidateJiraConfig(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		email   string
		apiKey  string
		wantErr bool
	}{
		{
			name:    "All fields present",
			domain:  "jira.example.com",
			email:   "test-user@example.com",
			apiKey:  "test-token",
			wantErr: false,
		},
		{
			name:    "Missing domain",
			domain:  "",
			email:   "test-user@example.com",
			apiKey:  "test-token",
			wantErr: true,
		},
		{
			name:    "Missing email",
			domain:  "jira.example.com",
			email:   "",
			apiKey:  "test-token",
			wantErr: true,
		},
		{
			name:    "Missing API key",
			domain:  "jira.example.com",
			email:   "test-user@example.com",
			apiKey:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJiraConfig(JiraConfig{
				Domain: tt.domain,
				Email:  tt.email,
				APIKey: tt.apiKey,
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGitHubEnabled(t *testing.T) {
	app := GitHubConfig{Enabled: true, Username: "octocat", AppID: 7, InstallationID: 42, PrivateKeyPath: "/keys/app.pem"}

	testCases := []struct {
		name     string
		github   GitHubConfig
		expected bool
	}{
		{"token", GitHubConfig{Enabled: true, Username: "octocat", Token: "ghp_x"}, true},
		{"github app", app, true},
		{"github app without key", GitHubConfig{Enabled: true, Username: "octocat", AppID: 7, InstallationID: 42}, false},
		{"no credentials", GitHubConfig{Enabled: true, Username: "octocat"}, false},
		{"no username", GitHubConfig{Enabled: true, Token: "ghp_x"}, false},
		{"disabled", GitHubConfig{Username: "octocat", Token: "ghp_x"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := &Config{GitHub: tc.github}
			assert.Equal(t, tc.expected, config.GitHubEnabled())
		})
	}
}

func TestLoadConfigGitHubAppFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRETS_DIR", t.TempDir())
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "github:\n  enabled: true\n  username: octocat\n")

	t.Setenv("GITHUB_APP_ID", "7")
	t.Setenv("GITHUB_INSTALLATION_ID", "42")
	t.Setenv("GITHUB_PRIVATE_KEY_PATH", "/keys/app.pem")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), config.GitHub.AppID)
	assert.Equal(t, int64(42), config.GitHub.InstallationID)
	assert.Equal(t, "/keys/app.pem", config.GitHub.PrivateKeyPath)
	assert.True(t, config.GitHubEnabled())
}
