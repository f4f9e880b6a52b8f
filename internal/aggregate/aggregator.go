// Package aggregate collects the standup sources and assembles them into a
// single document, either as a flat concatenation or as a structured,
// ticket-correlated view.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielolaszy/standup/internal/gitlog"
	"github.com/danielolaszy/standup/internal/jira"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/internal/notes"
	"github.com/danielolaszy/standup/internal/preprocess"
	"github.com/danielolaszy/standup/pkg/models"
)

// Placeholders substituted for sources that could not be read.
const (
	NoNotes            = "No notes found for the selected dates."
	NotesUnavailable   = "Notes unavailable."
	NoTrackerClient    = "Jira client not configured."
	NoGitDirectories   = "No Git directories configured."
	GitUnavailable     = "Git history unavailable."
	NoTimeTracking     = "No timewarrior summary available."
	NoGitHubClient     = "GitHub client not configured."
	trackerErrorFormat = "Error fetching Jira tickets: %v"
	eventsErrorFormat  = "Error fetching GitHub events: %v"
)

// NotesSource reads the work notes for a date range.
type NotesSource interface {
	Read(dr models.DateRange) (string, error)
}

// TicketSource lists the tracker tickets assigned to the current user.
type TicketSource interface {
	ActiveTickets(ctx context.Context) ([]models.Ticket, error)
}

// HistorySource returns formatted commit history.
type HistorySource interface {
	History(ctx context.Context) (string, error)
}

// TimeSource returns a free-text time-tracking summary.
type TimeSource interface {
	Summary(ctx context.Context) (string, error)
}

// EventSource returns formatted external activity for a user.
type EventSource interface {
	RecentActivity(ctx context.Context, username, org string) (string, error)
}

// Sources groups the collaborators. Any of them may be nil.
type Sources struct {
	Notes   NotesSource
	Tickets TicketSource
	History HistorySource
	Time    TimeSource
	Events  EventSource
}

// Options tunes an Aggregator.
type Options struct {
	// GitHubUsername enables the external activity section in flat mode.
	GitHubUsername string
	GitHubOrg      string

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

// Aggregator drives the collaborators and the preprocess package.
type Aggregator struct {
	src  Sources
	opts Options
}

// New creates an Aggregator.
func New(src Sources, opts Options) *Aggregator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{src: src, opts: opts}
}

// PreviousWorkday returns the Friday before a Monday, otherwise the day before.
func PreviousWorkday(day time.Time) time.Time {
	if day.Weekday() == time.Monday {
		return day.AddDate(0, 0, -3)
	}
	return day.AddDate(0, 0, -1)
}

// DateRange returns the window from the previous workday to today.
func (a *Aggregator) DateRange() models.DateRange {
	today := a.opts.Now()
	return models.DateRange{Start: PreviousWorkday(today), End: today}
}

// Flat concatenates every source, blank-line separated, with unavailable
// sources replaced by their placeholder.
func (a *Aggregator) Flat(ctx context.Context) string {
	return a.FlatFor(ctx, a.DateRange())
}

// FlatFor is Flat over a fixed date range.
func (a *Aggregator) FlatFor(ctx context.Context, dr models.DateRange) string {

	parts := []string{
		text(a.notes(dr)),
		text(a.formattedTickets(ctx)),
		text(a.history(ctx)),
		text(a.timeTracking(ctx)),
	}
	if a.opts.GitHubUsername != "" {
		parts = append(parts, text(a.events(ctx)))
	}

	for i, p := range parts {
		parts[i] = strings.TrimRight(p, "\n")
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Correlate gathers the sources and correlates them by ticket identifier.
func (a *Aggregator) Correlate(ctx context.Context) (preprocess.Correlation, models.DateRange) {
	in := a.gather(ctx, a.DateRange())
	return preprocess.Correlate(content(in.notes), in.tickets.Value, content(in.history), content(in.time)), in.dr
}

// Structured correlates the sources, renders the structured document and
// appends the git and time-tracking data as supplemental sections.
func (a *Aggregator) Structured(ctx context.Context) string {
	return a.StructuredFor(ctx, a.DateRange())
}

// StructuredFor is Structured over a fixed date range.
func (a *Aggregator) StructuredFor(ctx context.Context, dr models.DateRange) string {
	in := a.gather(ctx, dr)
	notesText := content(in.notes)

	c := preprocess.Correlate(notesText, in.tickets.Value, content(in.history), content(in.time))
	logging.Info("correlated tickets", "count", len(c))

	var b strings.Builder
	b.WriteString(preprocess.Structure(c, notesText, in.dr))

	b.WriteString("\n\n" + preprocess.HeaderAdditionalData + "\n")
	b.WriteString("\nGIT ACTIVITY:\n")
	if in.history.Available() {
		b.WriteString(preprocess.DeduplicateLines(in.history.Value))
	} else {
		b.WriteString(in.history.Placeholder)
	}
	b.WriteString("\n\nTIME TRACKING:\n")
	b.WriteString(text(in.time))

	return b.String()
}

type inputs struct {
	dr      models.DateRange
	notes   Section[string]
	tickets Section[[]models.Ticket]
	history Section[string]
	time    Section[string]
}

func (a *Aggregator) gather(ctx context.Context, dr models.DateRange) inputs {
	return inputs{
		dr:      dr,
		notes:   a.notes(dr),
		tickets: a.tickets(ctx),
		history: a.history(ctx),
		time:    a.timeTracking(ctx),
	}
}

func (a *Aggregator) notes(dr models.DateRange) Section[string] {
	if a.src.Notes == nil {
		return unavailable[string]("notes", NoNotes, nil)
	}
	body, err := a.src.Notes.Read(dr)
	if errors.Is(err, notes.ErrNoNotes) {
		return unavailable[string]("notes", NoNotes, nil)
	}
	if err != nil {
		return unavailable[string]("notes", NotesUnavailable, err)
	}
	return available(body)
}

func (a *Aggregator) tickets(ctx context.Context) Section[[]models.Ticket] {
	if a.src.Tickets == nil {
		return unavailable[[]models.Ticket]("jira", NoTrackerClient, nil)
	}
	tickets, err := a.src.Tickets.ActiveTickets(ctx)
	if err != nil {
		return unavailable[[]models.Ticket]("jira", fmt.Sprintf(trackerErrorFormat, err), err)
	}
	logging.Debug("fetched tickets", "count", len(tickets))
	return available(tickets)
}

func (a *Aggregator) formattedTickets(ctx context.Context) Section[string] {
	s := a.tickets(ctx)
	if !s.Available() {
		return Section[string]{Placeholder: s.Placeholder, Err: s.Err}
	}
	return available(jira.FormatTickets(s.Value))
}

func (a *Aggregator) history(ctx context.Context) Section[string] {
	if a.src.History == nil {
		return unavailable[string]("git", NoGitDirectories, nil)
	}
	history, err := a.src.History.History(ctx)
	if errors.Is(err, gitlog.ErrNoDirectories) {
		return unavailable[string]("git", NoGitDirectories, nil)
	}
	if err != nil {
		return unavailable[string]("git", GitUnavailable, err)
	}
	return available(history)
}

func (a *Aggregator) timeTracking(ctx context.Context) Section[string] {
	if a.src.Time == nil {
		return unavailable[string]("timewarrior", NoTimeTracking, nil)
	}
	summary, err := a.src.Time.Summary(ctx)
	if err != nil {
		return unavailable[string]("timewarrior", NoTimeTracking, err)
	}
	return available(summary)
}

func (a *Aggregator) events(ctx context.Context) Section[string] {
	if a.src.Events == nil {
		return unavailable[string]("github", NoGitHubClient, nil)
	}
	events, err := a.src.Events.RecentActivity(ctx, a.opts.GitHubUsername, a.opts.GitHubOrg)
	if err != nil {
		return unavailable[string]("github", fmt.Sprintf(eventsErrorFormat, err), err)
	}
	return available(events)
}
