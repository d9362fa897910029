package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"

	"kids-lecture/api/internal/llm"
)

func TestGenerate_MissingKey(t *testing.T) {
	e := New("  ", "gemini-1.5-pro")
	_, err := e.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestSetModel(t *testing.T) {
	e := New("k", "gemini-1.5-pro")
	e.SetModel("  ")
	assert.Equal(t, "gemini-1.5-pro", e.GetModel())
	e.SetModel("gemini-2.0-flash")
	assert.Equal(t, "gemini-2.0-flash", e.GetModel())
	assert.Equal(t, "gemini", e.Name())
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("<h1>Hi</h1>"), genai.Text("<p>there</p>")}}},
		},
	}
	assert.Equal(t, "<h1>Hi</h1><p>there</p>", firstText(resp))
}
