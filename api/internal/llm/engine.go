package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingAPIKey is returned by an engine whose credential was not configured.
var ErrMissingAPIKey = errors.New("llm: api key is not configured")

// Engine turns a single prompt into the model's raw text output.
type Engine interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, prompt string) (string, error)
}

type Engines struct {
	Gemini    Engine
	OpenAI    Engine
	Anthropic Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "", "gemini", "google":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	case "claude", "anthropic":
		eng = e.Anthropic
	default:
		return nil, errors.New("unknown llm_name; use 'gemini', 'gpt' or 'anthropic'")
	}
	if eng == nil {
		return nil, errors.New("llm engine " + llmName + " is not configured")
	}
	return eng, nil
}

// StripCodeFences removes a markdown fence some models wrap around HTML output.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range []string{"```html", "```HTML", "```"} {
		if strings.HasPrefix(s, p) {
			s = strings.TrimPrefix(s, p)
			break
		}
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
