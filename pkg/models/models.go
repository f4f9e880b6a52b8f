// Package models defines data structures shared across the application.
package models

import (
	"time"
)

// Ticket is an issue-tracker record assigned to the current user.
type Ticket struct {
	// Key is the tracker identifier exactly as the tracker returned it (e.g., "INFRA-1234")
	Key string

	// Status is the workflow status name, empty when the tracker did not supply one
	Status string

	// Summary is the ticket title, empty when the tracker did not supply one
	Summary string
}

// ContextExcerpt is a bounded window of text surrounding an identifier mention.
type ContextExcerpt struct {
	// Source names where the excerpt came from (e.g., "notes")
	Source string `yaml:"source"`

	// Excerpt is the surrounding text, with "..." marking clipped sides
	Excerpt string `yaml:"excerpt"`
}

// CorrelatedEntry merges everything known about one identifier across
// notes, tracker records, commit history and time tracking.
type CorrelatedEntry struct {
	ID               string           `yaml:"id"`
	MentionedInNotes bool             `yaml:"mentioned_in_notes"`
	JiraStatus       string           `yaml:"jira_status,omitempty"`
	JiraSummary      string           `yaml:"jira_summary,omitempty"`
	GitCommits       []string         `yaml:"git_commits,omitempty"`
	TimeTracked      bool             `yaml:"time_tracked"`
	TimeDuration     string           `yaml:"time_duration,omitempty"`
	Contexts         []ContextExcerpt `yaml:"contexts,omitempty"`
}

// Active reports whether the entry has any activity evidence: a commit,
// tracked time or a mention in the notes.
func (e *CorrelatedEntry) Active() bool {
	return len(e.GitCommits) > 0 || e.TimeTracked || e.MentionedInNotes
}

// DateRange is the reporting window, from the previous workday to today.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// SameDay reports whether Start and End fall on the same calendar date.
func (r DateRange) SameDay() bool {
	return r.Start.Format("2006-01-02") == r.End.Format("2006-01-02")
}

// String renders the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}

// GitHubEvent is a single public activity event for a GitHub user.
type GitHubEvent struct {
	// Type is the GitHub event type (e.g., "PushEvent")
	Type string

	// Repo is the full repository name (e.g., "owner/repo")
	Repo string

	// CreatedAt is when the event happened
	CreatedAt time.Time
}
