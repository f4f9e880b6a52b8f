// Package timew reads time-tracking summaries from Timewarrior.
package timew

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Tracker fetches a `timew summary` for a range such as ":yesterday".
type Tracker struct {
	Range string

	// Run defaults to ExecRunner.
	Run Runner
}

// Summary returns the Timewarrior summary under a heading.
func (t Tracker) Summary(ctx context.Context) (string, error) {
	run := t.Run
	if run == nil {
		run = ExecRunner
	}
	rng := t.Range
	if rng == "" {
		rng = ":yesterday"
	}

	out, err := run(ctx, "timew", "summary", rng)
	if err != nil {
		return "", fmt.Errorf("failed to run timew summary %s: %w", rng, err)
	}
	return "Timewarrior Summary for yesterday:\n" + strings.TrimSpace(string(out)), nil
}
