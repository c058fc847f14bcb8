package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/pkg/logger"
)

var ErrNoCredential = errors.New("LLM API key not configured")

// NewChatModel builds the chat model for the configured provider. A missing
// API key is not an error here: the returned model fails every call instead.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		logger.Named("agents").Warnw("no API key for provider, model calls will fail", "provider", cfg.LLMProvider)
		return unavailableModel{provider: cfg.LLMProvider}, nil
	}

	switch cfg.LLMProvider {
	case config.ProviderDeepSeek:
		cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      apiKey,
			BaseURL:     cfg.LLMBaseURL,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create DeepSeek model: %w", err)
		}
		return cm, nil
	case config.ProviderOpenAI, config.ProviderQwen:
		maxTokens := cfg.MaxTokens
		temperature := cfg.Temperature
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     cfg.LLMBaseURL,
			APIKey:      apiKey,
			Model:       cfg.LLMModel,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s model: %w", cfg.LLMProvider, err)
		}
		return cm, nil
	}
	return nil, fmt.Errorf("%w: unsupported LLM provider %q", config.ErrInvalidConfig, cfg.LLMProvider)
}

type unavailableModel struct {
	provider string
}

func (m unavailableModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return nil, fmt.Errorf("%w for provider %s", ErrNoCredential, m.provider)
}

func (m unavailableModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("%w for provider %s", ErrNoCredential, m.provider)
}

func (m unavailableModel) WithTools([]*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}
