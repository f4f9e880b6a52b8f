package cmd

import (
	"context"

	"github.com/danielolaszy/standup/internal/aggregate"
	"github.com/danielolaszy/standup/internal/logging"
	"github.com/danielolaszy/standup/pkg/models"
)

// buildDocument renders the aggregated input for the summarizer over dr.
func buildDocument(ctx context.Context, agg *aggregate.Aggregator, dr models.DateRange, flat bool) string {
	mode := "structured"
	var doc string
	if flat {
		mode = "flat"
		doc = agg.FlatFor(ctx, dr)
	} else {
		doc = agg.StructuredFor(ctx, dr)
	}
	logging.Info("aggregated standup data", "mode", mode, "period", dr.String(), "characters", len(doc))
	return doc
}
