package preprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danielolaszy/standup/pkg/models"
)

// Section headers of the structured document.
const (
	HeaderTimeframe      = "=== TIMEFRAME ==="
	HeaderTicketWork     = "=== TICKET WORK ==="
	HeaderWorkNotes      = "=== WORK NOTES ==="
	HeaderAdditionalData = "=== ADDITIONAL DATA ==="

	LabelActive    = "ACTIVELY WORKED ON:"
	LabelMentioned = "ALSO TRACKING:"
)

const (
	maxCommitsShown = 2
	commitWidth     = 100
	contextWidth    = 150
	summaryWidth    = 50
)

var (
	notesTimestamp = regexp.MustCompile(`(\d{1,2}:\d{2})\s*(?:am|pm|AM|PM)?\s*-\s*`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
	spaceRuns      = regexp.MustCompile(` {2,}`)
)

// Structure renders the correlation and the work notes as a document with
// TIMEFRAME, TICKET WORK (omitted when there are no entries) and WORK NOTES
// sections.
func Structure(c Correlation, notes string, dr models.DateRange) string {
	var lines []string

	lines = append(lines, HeaderTimeframe)
	lines = append(lines, "Period: "+dr.String())
	if !dr.SameDay() {
		lines = append(lines, "Yesterday: "+dr.Start.Format("Monday, January 02"))
		lines = append(lines, "Today: "+dr.End.Format("Monday, January 02"))
	}
	lines = append(lines, "")

	if len(c) > 0 {
		lines = append(lines, HeaderTicketWork)
		lines = append(lines, TicketWork(c)...)
	}
	lines = append(lines, "")

	lines = append(lines, HeaderWorkNotes)
	lines = append(lines, CleanNotes(notes))

	return strings.Join(lines, "\n")
}

// TicketWork renders the body of the TICKET WORK section: active entries
// first, then the mentioned-only ones.
func TicketWork(c Correlation) []string {
	var lines []string
	active, mentioned := c.Partition()

	if len(active) > 0 {
		lines = append(lines, LabelActive)
		for _, e := range active {
			lines = append(lines, activeBlock(e)...)
		}
	}

	if len(mentioned) > 0 {
		lines = append(lines, "\n"+LabelMentioned)
		for _, e := range mentioned {
			lines = append(lines, mentionedLine(e))
		}
	}
	return lines
}

func activeBlock(e *models.CorrelatedEntry) []string {
	lines := []string{"\n• " + e.ID}
	if e.JiraSummary != "" {
		lines = append(lines, "  Summary: "+e.JiraSummary)
	}
	if e.JiraStatus != "" {
		lines = append(lines, "  Status: "+e.JiraStatus)
	}
	if e.TimeDuration != "" {
		lines = append(lines, "  Time spent: "+e.TimeDuration)
	}
	if len(e.GitCommits) > 0 {
		lines = append(lines, fmt.Sprintf("  Commits: %d commit(s)", len(e.GitCommits)))
		for i, commit := range e.GitCommits {
			if i == maxCommitsShown {
				break
			}
			lines = append(lines, "    - "+truncate(commit, commitWidth))
		}
	}
	if len(e.Contexts) > 0 {
		lines = append(lines, "  Context: "+truncate(e.Contexts[0].Excerpt, contextWidth))
	}
	return lines
}

func mentionedLine(e *models.CorrelatedEntry) string {
	line := "• " + e.ID
	if e.JiraStatus != "" {
		line += " (" + e.JiraStatus + ")"
	}
	if e.JiraSummary != "" {
		line += ": " + truncate(e.JiraSummary, summaryWidth)
	}
	return line
}

// CleanNotes strips "9:00am - " style timestamps, squeezes repeated spaces
// and drops blank lines.
func CleanNotes(notes string) string {
	notes = notesTimestamp.ReplaceAllString(notes, "")
	notes = blankRuns.ReplaceAllString(notes, "\n\n")
	notes = spaceRuns.ReplaceAllString(notes, " ")

	var cleaned []string
	for _, line := range strings.Split(notes, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
