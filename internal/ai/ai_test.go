package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v2/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/danielolaszy/standup/internal/config"
)

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "Summarize.\n\n=== TIMEFRAME ===", BuildPrompt("Summarize.", "=== TIMEFRAME ==="))
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Provider: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewVertexRequiresProject(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Provider: config.ProviderVertex})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func chatServer(t *testing.T, reply string, gotPrompt *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body.Model)
		if len(body.Messages) > 0 {
			*gotPrompt = body.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   "gpt-test",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAISummarize(t *testing.T) {
	var prompt string
	server := chatServer(t, "  Yesterday: fixed INFRA-1.\n", &prompt)

	s, err := NewOpenAI(config.AIConfig{APIKey: "sk-test", BaseURL: server.URL + "/", Model: "gpt-test"}, option.WithMaxRetries(0))
	require.NoError(t, err)

	got, err := s.Summarize(context.Background(), "Write a standup.", "doc")
	require.NoError(t, err)
	assert.Equal(t, "Yesterday: fixed INFRA-1.", got)
	assert.Equal(t, "Write a standup.\n\ndoc", prompt)
}

func TestOpenAIEmptyReply(t *testing.T) {
	var prompt string
	server := chatServer(t, "   ", &prompt)

	s, err := NewOpenAI(config.AIConfig{APIKey: "sk-test", BaseURL: server.URL + "/", Model: "gpt-test"}, option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "Write a standup.", "doc")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s, err := NewOpenAI(config.AIConfig{APIKey: "sk-bad", BaseURL: server.URL + "/", Model: "gpt-test"}, option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "Write a standup.", "doc")
	assert.Error(t, err)
}

// fakeModel answers every prompt with a fixed reply.
type fakeModel struct {
	reply  string
	prompt string
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, p := range m.Parts {
			if tp, ok := p.(llms.TextContent); ok {
				f.prompt = tp.Text
			}
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestVertexSummarize(t *testing.T) {
	model := &fakeModel{reply: "\nToday: review OPS-2\n"}
	v := &Vertex{llm: model}

	got, err := v.Summarize(context.Background(), "Instr", "doc")
	require.NoError(t, err)
	assert.Equal(t, "Today: review OPS-2", got)
	assert.Equal(t, "Instr\n\ndoc", model.prompt)

	model.reply = ""
	_, err = v.Summarize(context.Background(), "Instr", "doc")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
