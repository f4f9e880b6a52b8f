// Package jira fetches the current user's tickets from JIRA.
package jira

import (
	"context"
	"fmt"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/pkg/models"
)

// Client handles interactions with the JIRA API.
type Client struct {
	client     *jira.Client
	jql        string
	maxResults int
}

// NewClient creates a JIRA client authenticated with the user's email and API key.
// The domain may be a bare host ("company.atlassian.net") or a full URL.
func NewClient(cfg config.JiraConfig) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	baseURL := cfg.Domain
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Email,
		Password: cfg.APIKey,
	}

	client, err := jira.NewClient(tp.Client(), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("jira configuration",
		"base_url", baseURL,
		"email", cfg.Email,
		"api_key", logging.MaskSensitive(cfg.APIKey))

	return &Client{
		client:     client,
		jql:        cfg.JQL,
		maxResults: cfg.MaxResults,
	}, nil
}

// ActiveTickets runs the configured JQL and returns the matching tickets.
func (c *Client) ActiveTickets(ctx context.Context) ([]models.Ticket, error) {
	if c.client == nil {
		return nil, fmt.Errorf("JIRA client not initialized")
	}

	opts := &jira.SearchOptions{
		MaxResults: c.maxResults,
		Fields:     []string{"summary", "status"},
	}

	issues, resp, err := c.client.Issue.SearchWithContext(ctx, c.jql, opts)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to search JIRA issues: %w (status: %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to search JIRA issues: %w", err)
	}

	tickets := make([]models.Ticket, 0, len(issues))
	for _, issue := range issues {
		ticket := models.Ticket{Key: issue.Key}
		if issue.Fields != nil {
			ticket.Summary = issue.Fields.Summary
			if issue.Fields.Status != nil {
				ticket.Status = issue.Fields.Status.Name
			}
		}
		tickets = append(tickets, ticket)
	}

	logging.Debug("fetched jira tickets", "count", len(tickets))
	return tickets, nil
}

// FormatTickets renders tickets as a bulleted list for the flat document.
func FormatTickets(tickets []models.Ticket) string {
	if len(tickets) == 0 {
		return "No tickets found."
	}

	var b strings.Builder
	b.WriteString("Take into account these tickets:\n")
	for _, t := range tickets {
		fmt.Fprintf(&b, "- %s (%s): %s\n",
			valueOr(t.Key, "Unknown"),
			valueOr(t.Status, "No status available"),
			valueOr(t.Summary, "No summary available"))
	}
	return b.String()
}

func valueOr(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
