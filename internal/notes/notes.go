// Package notes reads the daily work notes kept as YEAR/MONTH/DAY.txt files.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/pkg/models"
)

// ErrNoNotes is returned when no note file exists for the requested days.
var ErrNoNotes = errors.New("no notes found")

// Path returns the note file for day under dir.
func Path(dir string, day time.Time) string {
	return filepath.Join(dir, day.Format("2006"), day.Format("01"), day.Format("02")+".txt")
}

// Reader reads notes from a base directory.
type Reader struct {
	Dir string
}

// Read returns today's notes followed by the previous workday's, each under
// a "Notes for YYYY-MM-DD:" heading.
func (r Reader) Read(dr models.DateRange) (string, error) {
	if r.Dir == "" {
		return "", ErrNoNotes
	}

	var b strings.Builder
	for _, day := range []time.Time{dr.End, dr.Start} {
		path := Path(r.Dir, day)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("no notes for day", "path", path)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read notes %s: %w", path, err)
		}
		fmt.Fprintf(&b, "Notes for %s:\n%s\n\n", day.Format("2006-01-02"), data)
	}

	if b.Len() == 0 {
		return "", ErrNoNotes
	}
	return b.String(), nil
}
