// Package summary persists generated standup summaries.
package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/pkg/models"
)

// FileName is the file summaries are appended to inside the output directory.
const FileName = "summaries.txt"

// Store appends summaries to a text file, one line per run.
type Store struct {
	Dir string
}

// Path returns the summaries file location.
func (s Store) Path() string {
	return filepath.Join(s.Dir, FileName)
}

// Append writes "<start> to <end>: <text>" to the summaries file, creating
// the output directory when needed.
func (s Store) Append(dr models.DateRange, text string) error {
	if s.Dir == "" {
		return fmt.Errorf("output directory not configured")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.OpenFile(s.Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summaries file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s: %s\n", dr, strings.TrimSpace(text)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	logging.Info("Summary saved", "path", s.Path())
	return nil
}
