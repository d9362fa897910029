package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"kids-lecture/api/internal/llm"
)

const maxTokens = 4096

type Engine struct {
	APIKey string
	Model  string
	client anthropic.Client
}

func New(apiKey, model string, opts ...option.RequestOption) *Engine {
	apiKey = strings.TrimSpace(apiKey)
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Engine{
		APIKey: apiKey,
		Model:  strings.TrimSpace(model),
		client: anthropic.NewClient(opts...),
	}
}

func (e *Engine) Name() string     { return "anthropic" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("anthropic: ANTHROPIC_API_KEY is empty: %w", llm.ErrMissingAPIKey)
	}
	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic chat: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("anthropic chat: empty response")
	}
	return llm.StripCodeFences(b.String()), nil
}
