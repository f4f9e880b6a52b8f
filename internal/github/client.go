// Package github provides functionality for reading a user's recent activity
// from the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
	days   int
	now    func() time.Time
}

// apiURL returns the REST endpoint for a GitHub domain, defaulting to github.com.
func apiURL(domain string) string {
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// NewClient creates a GitHub API client authenticated with the configured
// token, or as a GitHub App installation when no token is set.
// GitHub Enterprise is used when the domain is not github.com.
func NewClient(cfg config.GitHubConfig) (*Client, error) {
	endpoint := apiURL(cfg.Domain)

	ts, err := tokenSource(cfg, endpoint, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	tc := oauth2.NewClient(context.Background(), ts)

	return newClient(tc, endpoint, cfg.Days)
}

func tokenSource(cfg config.GitHubConfig, endpoint string, httpClient *http.Client) (oauth2.TokenSource, error) {
	switch {
	case cfg.Token != "":
		logging.Debug("github configuration",
			"domain", cfg.Domain,
			"api_url", endpoint,
			"token", logging.MaskSensitive(cfg.Token))
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}), nil
	case cfg.AppConfigured():
		logging.Debug("github configuration",
			"domain", cfg.Domain,
			"api_url", endpoint,
			"app_id", cfg.AppID,
			"installation_id", cfg.InstallationID)
		return newAppTokenSource(cfg, endpoint, httpClient)
	default:
		return nil, fmt.Errorf("github token or app credentials not found in configuration")
	}
}

func newClient(httpClient *http.Client, endpoint string, days int) (*Client, error) {
	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}

	client := github.NewClient(httpClient)
	client.BaseURL = parsedURL
	client.UploadURL = parsedURL

	if days < 1 {
		days = 2
	}
	return &Client{client: client, days: days, now: time.Now}, nil
}

// UserEvents lists the events performed by username, restricted to org when set.
func (c *Client) UserEvents(ctx context.Context, username, org string) ([]models.GitHubEvent, error) {
	if username == "" {
		return nil, fmt.Errorf("github username is required")
	}

	opts := &github.ListOptions{PerPage: 100}

	var (
		events []*github.Event
		err    error
	)
	if org != "" {
		events, _, err = c.client.Activity.ListUserEventsForOrganization(ctx, org, username, opts)
	} else {
		events, _, err = c.client.Activity.ListEventsPerformedByUser(ctx, username, false, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch github events for %s: %w", username, err)
	}

	result := make([]models.GitHubEvent, 0, len(events))
	for _, e := range events {
		result = append(result, models.GitHubEvent{
			Type:      e.GetType(),
			Repo:      e.GetRepo().GetName(),
			CreatedAt: e.GetCreatedAt(),
		})
	}

	logging.Debug("fetched github events", "username", username, "count", len(result))
	return result, nil
}

// FilterRecent keeps the events from the last days calendar days, today included.
func FilterRecent(events []models.GitHubEvent, days int, now time.Time) []models.GitHubEvent {
	y, m, d := now.UTC().Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	var recent []models.GitHubEvent
	for _, e := range events {
		if e.CreatedAt.IsZero() {
			continue
		}
		if !e.CreatedAt.UTC().Before(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent
}

// FormatEvents renders events as a bulleted list.
func FormatEvents(events []models.GitHubEvent) string {
	if len(events) == 0 {
		return "No GitHub events found for the recent days."
	}

	var b strings.Builder
	b.WriteString("Recent GitHub Events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- %s on %s at %s\n", e.Type, e.Repo, e.CreatedAt.UTC().Format(time.RFC3339))
	}
	return b.String()
}

// RecentActivity fetches, filters and formats the user's recent events.
func (c *Client) RecentActivity(ctx context.Context, username, org string) (string, error) {
	events, err := c.UserEvents(ctx, username, org)
	if err != nil {
		return "", err
	}
	return FormatEvents(FilterRecent(events, c.days, c.now())), nil
}
