package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nutrisur/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const mimeTypeJSON = "application/json"

var errEmptyCandidates = errors.New("gemini returned no candidates")

type gemini struct {
	client *genai.Client
	model  string
}

func newGemini(ctx context.Context, cfg *config.Config) (provider, error) {
	geminiConfig := cfg.External.LLM.Gemini
	if geminiConfig.APIKey == "" {
		return nil, ErrDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(geminiConfig.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &gemini{
		client: client,
		model:  geminiConfig.Model,
	}, nil
}

func (g *gemini) generate(ctx context.Context, system, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = mimeTypeJSON
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyCandidates
	}

	var sb strings.Builder

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}
