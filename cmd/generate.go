package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/danielolaszy/standup/internal/aggregate"
	"github.com/danielolaszy/standup/internal/ai"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/internal/summary"
	"github.com/spf13/cobra"
)

// generateCmd aggregates the sources and asks the configured model for a summary.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a standup summary",
	Long: `Generate a standup summary for the period since the previous workday.

All configured sources are aggregated into one document, which is sent to the
configured AI provider together with the standup instruction. The reply is
printed and appended to summaries.txt in the output directory.

By default the document is structured: tickets are correlated across notes,
Jira, Git and Timewarrior. Use --flat to send the raw sources instead.

Example:
  standup generate
  standup generate --flat --no-save
  standup generate --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flat, err := cmd.Flags().GetBool("flat")
		if err != nil {
			return err
		}
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}
		noSave, err := cmd.Flags().GetBool("no-save")
		if err != nil {
			return err
		}

		opts := generateOptions{
			flat:        flat,
			dryRun:      dryRun,
			save:        !noSave,
			instruction: cfg.AI.Instruction,
		}
		newSummarizer := func(ctx context.Context) (ai.Summarizer, error) {
			return ai.New(ctx, cfg.AI)
		}
		store := summary.Store{Dir: cfg.Paths.OutputDirectory}

		return runGenerate(cmd.Context(), cmd.OutOrStdout(), newAggregator(cfg), newSummarizer, store, opts)
	},
}

type generateOptions struct {
	flat        bool
	dryRun      bool
	save        bool
	instruction string
}

func runGenerate(
	ctx context.Context,
	out io.Writer,
	agg *aggregate.Aggregator,
	newSummarizer func(context.Context) (ai.Summarizer, error),
	store summary.Store,
	opts generateOptions,
) error {
	logging.Info("starting standup generation", "flat", opts.flat, "dry_run", opts.dryRun)

	dr := agg.DateRange()
	doc := buildDocument(ctx, agg, dr, opts.flat)
	if strings.TrimSpace(doc) == "" {
		return fmt.Errorf("no data found to generate summary")
	}

	if opts.dryRun {
		fmt.Fprintln(out, doc)
		return nil
	}

	summarizer, err := newSummarizer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize ai provider: %w", err)
	}

	text, err := summarizer.Summarize(ctx, opts.instruction, doc)
	if err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}
	logging.Info("successfully generated standup summary", "characters", len(text))

	fmt.Fprintf(out, "Generated Summary:\n%s\n", text)

	if !opts.save {
		return nil
	}
	if err := store.Append(dr, text); err != nil {
		return fmt.Errorf("summary generated but failed to save: %w", err)
	}
	return nil
}

func init() {
	generateCmd.Flags().Bool("flat", false, "send the raw sources instead of the correlated document")
	generateCmd.Flags().Bool("dry-run", false, "print the document without calling the AI provider")
	generateCmd.Flags().Bool("no-save", false, "do not append the summary to summaries.txt")
}
