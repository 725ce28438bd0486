package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/sandevgo/haven/pkg/retry"
)

type LLMConfig struct {
	Provider string `env:"HAVEN_LLM_PROVIDER" envDefault:"function"`
	Model    string `env:"HAVEN_LLM_MODEL" envDefault:"google/gemma-3-27b-it:free"`
	BaseURL  string `env:"HAVEN_LLM_BASE_URL"`
	APIKey   string `env:"HAVEN_LLM_API_KEY"`

	FunctionURL   string `env:"HAVEN_FUNCTION_URL"`
	FunctionToken string `env:"HAVEN_FUNCTION_TOKEN"`

	MaxRetries int `env:"HAVEN_LLM_MAX_RETRIES" envDefault:"3"`
}

func LoadLLMConfig() (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c, err := LoadLLMConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func (c LLMConfig) GetProvider() string      { return c.Provider }
func (c LLMConfig) GetModel() string         { return c.Model }
func (c LLMConfig) GetBaseURL() string       { return c.BaseURL }
func (c LLMConfig) GetAPIKey() string        { return c.APIKey }
func (c LLMConfig) GetFunctionURL() string   { return c.FunctionURL }
func (c LLMConfig) GetFunctionToken() string { return c.FunctionToken }

func (c LLMConfig) Retrier() *retry.Retrier {
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = max(c.MaxRetries, 0)
	return retry.NewRetrier(cfg)
}
