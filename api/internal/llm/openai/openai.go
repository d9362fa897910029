package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"kids-lecture/api/internal/llm"
)

type Engine struct {
	APIKey string
	Model  string
	client *goopenai.Client
}

func New(apiKey, model string) *Engine {
	return NewWithBaseURL(apiKey, "", model)
}

// NewWithBaseURL points the engine at an OpenAI-compatible gateway; empty baseURL keeps the default.
func NewWithBaseURL(apiKey, baseURL, model string) *Engine {
	apiKey = strings.TrimSpace(apiKey)
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Engine{
		APIKey: apiKey,
		Model:  strings.TrimSpace(model),
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("openai: OPENAI_API_KEY is empty: %w", llm.ErrMissingAPIKey)
	}
	resp, err := e.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return llm.StripCodeFences(resp.Choices[0].Message.Content), nil
}
