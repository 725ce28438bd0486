package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/sandevgo/haven/pkg/retry"
)

const ProviderFunction = "function"

// NewChatProvider creates the chat-completion backend named by cfg.
func NewChatProvider(cfg core.LLMConfig) (core.ChatProvider, error) {
	switch cfg.GetProvider() {
	case "openai":
		return NewOpenAI(cfg.GetAPIKey(), cfg.GetModel()), nil
	case "anthropic":
		return NewAnthropic(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetAPIKey(), cfg.GetModel()), nil
	case "ollama":
		return NewOllama(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	case "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("custom llm provider requires a base url")
		}
		return NewCustomOpenAI(cfg.GetBaseURL(), cfg.GetAPIKey(), cfg.GetModel()), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}

// NewClient creates the LLMClient used by the memory orchestrator.
func NewClient(ctx context.Context, cfg core.LLMConfig, retrier *retry.Retrier) (core.LLMClient, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm client")

	if cfg.GetProvider() == ProviderFunction {
		if cfg.GetFunctionURL() == "" {
			return nil, fmt.Errorf("function llm provider requires a function url")
		}
		return NewFunctionClient(cfg.GetFunctionURL(), cfg.GetFunctionToken(), retrier), nil
	}

	provider, err := NewChatProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewChatAnalyst(provider, retrier), nil
}
