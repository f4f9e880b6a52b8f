package timew

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	var gotArgs []string
	tr := Tracker{
		Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			assert.Equal(t, "timew", name)
			gotArgs = args
			return []byte("\nW1 2024-01-01 Mon INFRA-1 9:00:00 10:30:00 1:30:00\n\n"), nil
		},
	}

	got, err := tr.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Timewarrior Summary for yesterday:\nW1 2024-01-01 Mon INFRA-1 9:00:00 10:30:00 1:30:00", got)
	assert.Equal(t, []string{"summary", ":yesterday"}, gotArgs)
}

func TestSummaryFailure(t *testing.T) {
	tr := Tracker{
		Range: ":week",
		Run: func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("executable file not found")
		},
	}

	_, err := tr.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":week")
}
