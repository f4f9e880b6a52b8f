// Package gitlog collects commit history from local repositories by
// shelling out to git.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/danielolaszy/standup/internal/logging"
)

// ErrNoDirectories is returned when no repositories are configured.
var ErrNoDirectories = errors.New("no git directories configured")

// LogFormat is the pretty format each commit line is rendered with.
const LogFormat = "%h %ad | %s [%d] (%an)"

// Runner runs a command in dir and returns its standard output.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Collector reads commits by one author from a set of repositories.
type Collector struct {
	Author      string
	Directories []string
	Since       string

	// Run defaults to ExecRunner.
	Run Runner
}

// History returns the commits of every repository as one text block:
//
//	Include this Git history:
//
//	Folder: /path/to/repo
//	- a1b2c3d 2024-01-01 | subject [ (HEAD -> main)] (Author)
//
// Directories that do not exist or where git fails are skipped.
func (c Collector) History(ctx context.Context) (string, error) {
	if len(c.Directories) == 0 {
		return "", ErrNoDirectories
	}

	run := c.Run
	if run == nil {
		run = ExecRunner
	}
	since := c.Since
	if since == "" {
		since = "yesterday"
	}

	args := []string{
		"log", "--all", "--reverse",
		"--author=" + c.Author,
		"--since=" + since,
		"--pretty=format:" + LogFormat,
		"--date=short",
	}

	var b strings.Builder
	b.WriteString("Include this Git history:\n")
	for _, dir := range c.Directories {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logging.Debug("skipping git directory", "directory", dir)
			continue
		}

		out, err := run(ctx, dir, "git", args...)
		if err != nil {
			logging.Debug("git log failed", "directory", dir, "error", err)
			continue
		}

		commits := strings.TrimSpace(string(out))
		if commits == "" {
			continue
		}
		fmt.Fprintf(&b, "\nFolder: %s\n", dir)
		for _, commit := range strings.Split(commits, "\n") {
			fmt.Fprintf(&b, "- %s\n", commit)
		}
	}

	return b.String(), nil
}
