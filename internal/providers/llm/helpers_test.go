package llm

import (
	"time"

	"github.com/sandevgo/haven/pkg/retry"
)

func fastRetrier(retries int) *retry.Retrier {
	return retry.NewRetrier(&retry.Config{
		MaxRetries:    retries,
		BackoffFactor: 1,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
	})
}

type stubConfig struct {
	provider, model, baseURL, apiKey, functionURL, functionToken string
}

func (c stubConfig) GetProvider() string      { return c.provider }
func (c stubConfig) GetModel() string         { return c.model }
func (c stubConfig) GetBaseURL() string       { return c.baseURL }
func (c stubConfig) GetAPIKey() string        { return c.apiKey }
func (c stubConfig) GetFunctionURL() string   { return c.functionURL }
func (c stubConfig) GetFunctionToken() string { return c.functionToken }
