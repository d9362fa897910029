package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedEngine string

func (n namedEngine) Name() string     { return string(n) }
func (n namedEngine) GetModel() string { return "m" }
func (n namedEngine) Generate(context.Context, string) (string, error) {
	return "", nil
}

func TestEngines_GetEngine(t *testing.T) {
	e := &Engines{Gemini: namedEngine("gemini"), OpenAI: namedEngine("gpt")}

	for name, want := range map[string]string{
		"":       "gemini",
		"Gemini": "gemini",
		"google": "gemini",
		" gpt ":  "gpt",
		"OPENAI": "gpt",
	} {
		eng, err := e.GetEngine(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, eng.Name(), name)
	}

	_, err := e.GetEngine("claude")
	assert.ErrorContains(t, err, "not configured")

	_, err = e.GetEngine("llama")
	assert.ErrorContains(t, err, "unknown llm_name")
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"<h1>A</h1>":               "<h1>A</h1>",
		"```html\n<h1>A</h1>\n```": "<h1>A</h1>",
		"  ```\n<p>x</p>\n```  ":   "<p>x</p>",
		"```HTML<div>y</div>```":   "<div>y</div>",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripCodeFences(in), in)
	}
}
