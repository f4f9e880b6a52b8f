package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/danielolaszy/standup/internal/aggregate"
	"github.com/danielolaszy/standup/internal/preprocess"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatText = "text"
)

// correlateCmd dumps the per-ticket correlation for inspection.
var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Show how tickets were correlated across sources",
	Long: `Show every ticket identifier found in notes, Jira, Git and Timewarrior,
sorted by identifier, with the evidence collected for it.

Formats:
  yaml  one entry per ticket with all collected fields (default)
  text  the TICKET WORK block of the structured document`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		return runCorrelate(cmd.Context(), cmd.OutOrStdout(), newAggregator(cfg), format)
	},
}

func runCorrelate(ctx context.Context, out io.Writer, agg *aggregate.Aggregator, format string) error {
	c, dr := agg.Correlate(ctx)

	switch strings.ToLower(format) {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(c.Entries()); err != nil {
			return fmt.Errorf("failed to encode correlation: %w", err)
		}
		return enc.Close()
	case formatText:
		fmt.Fprintf(out, "Period: %s\n", dr)
		lines := preprocess.TicketWork(c)
		if len(lines) == 0 {
			fmt.Fprintln(out, "No tickets found.")
			return nil
		}
		fmt.Fprintln(out, strings.Join(lines, "\n"))
		return nil
	default:
		return fmt.Errorf("unknown format %q: use %s or %s", format, formatYAML, formatText)
	}
}

func init() {
	correlateCmd.Flags().StringP("format", "f", formatYAML, "output format (yaml|text)")
}
