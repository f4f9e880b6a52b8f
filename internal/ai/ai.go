// Package ai asks a generative model to turn the aggregated document into
// a standup summary.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielolaszy/standup/internal/config"
)

var (
	// ErrEmptyResponse is returned when the model replies with no text.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrUnknownProvider is returned for an unsupported ai.provider value.
	ErrUnknownProvider = errors.New("unknown ai provider")
)

// Summarizer generates a summary of content following instruction.
type Summarizer interface {
	Summarize(ctx context.Context, instruction, content string) (string, error)
}

// BuildPrompt joins the instruction and the document into one prompt.
func BuildPrompt(instruction, content string) string {
	return instruction + "\n\n" + content
}

// New returns the Summarizer for the configured provider.
func New(ctx context.Context, cfg config.AIConfig) (Summarizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderVertex:
		return NewVertex(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func clean(reply string) (string, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyResponse
	}
	return reply, nil
}
