package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/danielolaszy/standup/internal/aggregate"
	"github.com/spf13/cobra"
)

// previewCmd prints the document that generate would send to the model.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the data that would be sent to the AI provider",
	Long: `Show the aggregated document that generate would send to the AI provider,
followed by its size in characters. Nothing is sent and nothing is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flat, err := cmd.Flags().GetBool("flat")
		if err != nil {
			return err
		}
		return runPreview(cmd.Context(), cmd.OutOrStdout(), newAggregator(cfg), flat)
	},
}

var rule = strings.Repeat("=", 80)

func runPreview(ctx context.Context, out io.Writer, agg *aggregate.Aggregator, flat bool) error {
	title := "STRUCTURED DATA"
	if flat {
		title = "FLAT DATA"
	}
	doc := buildDocument(ctx, agg, agg.DateRange(), flat)

	fmt.Fprintf(out, "%s\n%s\n%s\n", rule, title, rule)
	fmt.Fprintln(out, doc)
	fmt.Fprintf(out, "\n%s\nTotal characters: %d\n%s\n", rule, len(doc), rule)
	return nil
}

func init() {
	previewCmd.Flags().Bool("flat", false, "show the raw sources instead of the correlated document")
}
