package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/googleai/vertex"

	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/logging"
)

// Vertex summarises with a Gemini model on Google Cloud Vertex AI.
type Vertex struct {
	llm llms.Model
}

// NewVertex creates a Vertex AI summarizer using application default credentials.
func NewVertex(ctx context.Context, cfg config.AIConfig) (*Vertex, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("vertex ai requires a project id (GOOGLE_CLOUD_PROJECT)")
	}

	logging.Debug("vertex configuration",
		"project", cfg.ProjectID,
		"location", cfg.Location,
		"model", cfg.Model)

	llm, err := vertex.New(ctx,
		googleai.WithCloudProject(cfg.ProjectID),
		googleai.WithCloudLocation(cfg.Location),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vertex ai: %w", err)
	}
	return &Vertex{llm: llm}, nil
}

// Summarize sends the prompt to the model.
func (v *Vertex) Summarize(ctx context.Context, instruction, content string) (string, error) {
	reply, err := llms.GenerateFromSinglePrompt(ctx, v.llm, BuildPrompt(instruction, content))
	if err != nil {
		return "", fmt.Errorf("vertex ai generate: %w", err)
	}
	return clean(reply)
}
