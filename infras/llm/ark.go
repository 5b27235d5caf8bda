package llm

import (
	"context"
	"fmt"

	"nutrisur/config"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/schema"
)

type arkProvider struct {
	model *ark.ChatModel
}

func newArk(ctx context.Context, cfg *config.Config) (provider, error) {
	arkConfig := cfg.External.LLM.Ark
	if arkConfig.APIKey == "" || arkConfig.Model == "" {
		return nil, ErrDisabled
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL: arkConfig.BaseURL,
		Region:  arkConfig.Region,
		APIKey:  arkConfig.APIKey,
		Model:   arkConfig.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ark chat model: %w", err)
	}

	return &arkProvider{model: chatModel}, nil
}

func (a *arkProvider) generate(ctx context.Context, system, prompt string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(prompt),
	}

	out, err := a.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("ark generate error: %w", err)
	}

	return out.Content, nil
}
