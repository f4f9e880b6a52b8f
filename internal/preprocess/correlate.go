package preprocess

import (
	"regexp"
	"sort"
	"strings"

	"github.com/danielolaszy/standup/pkg/models"
)

// SourceNotes tags context excerpts taken from the work notes.
const SourceNotes = "notes"

var durationPattern = regexp.MustCompile(`(\d+:\d+:\d+|\d+:\d+)`)

// Correlation maps an identifier to everything known about it.
type Correlation map[string]*models.CorrelatedEntry

func (c Correlation) entry(id string) *models.CorrelatedEntry {
	e, ok := c[id]
	if !ok {
		e = &models.CorrelatedEntry{ID: id}
		c[id] = e
	}
	return e
}

// Partition splits the correlation into active and mentioned-only entries,
// each sorted by identifier.
func (c Correlation) Partition() (active, mentioned []*models.CorrelatedEntry) {
	for _, id := range c.sortedIDs() {
		e := c[id]
		if e.Active() {
			active = append(active, e)
		} else {
			mentioned = append(mentioned, e)
		}
	}
	return active, mentioned
}

// Entries returns all entries sorted by identifier.
func (c Correlation) Entries() []*models.CorrelatedEntry {
	entries := make([]*models.CorrelatedEntry, 0, len(c))
	for _, id := range c.sortedIDs() {
		entries = append(entries, c[id])
	}
	return entries
}

// Correlate builds one entry per identifier found in the notes, the tracker
// records, the commit log and the time-tracking text. Tracker keys are used
// verbatim; every other source goes through ExtractIdentifiers.
func Correlate(notes string, tickets []models.Ticket, commitLog, timeTracking string) Correlation {
	c := make(Correlation)

	for id := range ExtractIdentifiers(notes) {
		e := c.entry(id)
		e.MentionedInNotes = true
		if ctx := ExtractContext(notes, id, DefaultContextWindow); ctx != "" {
			e.Contexts = append(e.Contexts, models.ContextExcerpt{Source: SourceNotes, Excerpt: ctx})
		}
	}

	for _, t := range tickets {
		if t.Key == "" {
			continue
		}
		e := c.entry(t.Key)
		e.JiraStatus = t.Status
		e.JiraSummary = t.Summary
	}

	commitLines := strings.Split(commitLog, "\n")
	for id := range ExtractIdentifiers(commitLog) {
		e := c.entry(id)
		for _, line := range commitLines {
			if !containsFold(line, id) {
				continue
			}
			commit := strings.TrimSpace(line)
			if commit != "" && !contains(e.GitCommits, commit) {
				e.GitCommits = append(e.GitCommits, commit)
			}
		}
	}

	for id := range ExtractIdentifiers(timeTracking) {
		e := c.entry(id)
		e.TimeTracked = true
		if d := findDuration(timeTracking, id); d != "" && e.TimeDuration == "" {
			e.TimeDuration = d
		}
	}

	return c
}

// findDuration returns the first clock duration on a line containing id,
// matched case-sensitively, or on one of its neighbours.
func findDuration(text, id string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, id) {
			continue
		}
		for j := max(0, i-1); j < min(len(lines), i+2); j++ {
			if m := durationPattern.FindString(lines[j]); m != "" {
				return m
			}
		}
	}
	return ""
}

func (c Correlation) sortedIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
