package cmd

import (
	"github.com/danielolaszy/standup/internal/aggregate"
	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/github"
	"github.com/danielolaszy/standup/internal/gitlog"
	"github.com/danielolaszy/standup/internal/jira"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/internal/notes"
	"github.com/danielolaszy/standup/internal/timew"
)

// buildSources wires the collaborators that the configuration allows.
// Collaborators that cannot be created stay nil so the aggregator renders
// their placeholder instead.
func buildSources(cfg *config.Config) aggregate.Sources {
	src := aggregate.Sources{
		Notes: notes.Reader{Dir: cfg.Paths.NotesDirectory},
		History: gitlog.Collector{
			Author:      cfg.Git.Author,
			Directories: cfg.Git.Directories,
			Since:       cfg.Git.Since,
		},
	}

	if err := config.ValidateJiraConfig(cfg.Jira); err != nil {
		logging.Debug("jira disabled", "reason", err)
	} else if client, err := jira.NewClient(cfg.Jira); err != nil {
		logging.Warn("failed to initialize jira client", "error", err)
	} else {
		src.Tickets = client
	}

	if cfg.Timewarrior.Enabled {
		src.Time = timew.Tracker{Range: cfg.Timewarrior.Range}
	}

	if cfg.GitHubEnabled() {
		client, err := github.NewClient(cfg.GitHub)
		if err != nil {
			logging.Warn("failed to initialize github client", "error", err)
		} else {
			src.Events = client
		}
	}

	return src
}

// newAggregator builds an aggregator over every configured source.
func newAggregator(cfg *config.Config) *aggregate.Aggregator {
	opts := aggregate.Options{}
	if cfg.GitHubEnabled() {
		opts.GitHubUsername = cfg.GitHub.Username
		opts.GitHubOrg = cfg.GitHub.Org
	}
	return aggregate.New(buildSources(cfg), opts)
}
