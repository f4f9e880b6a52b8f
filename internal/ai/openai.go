package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/logging"
)

// OpenAI summarises through an OpenAI-compatible chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI summarizer. BaseURL is optional.
func NewOpenAI(cfg config.AIConfig, opts ...option.RequestOption) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	logging.Debug("openai configuration",
		"model", cfg.Model,
		"base_url", cfg.BaseURL,
		"api_key", logging.MaskSensitive(cfg.APIKey))

	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  cfg.Model,
	}, nil
}

// Summarize sends the prompt as a single user message.
func (o *OpenAI) Summarize(ctx context.Context, instruction, content string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(instruction, content)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return clean(completion.Choices[0].Message.Content)
}
