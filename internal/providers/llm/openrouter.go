package llm

import "github.com/sandevgo/haven/internal/core"

const openRouterBaseURL = "https://openrouter.ai/api"

func NewOpenRouter(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    openRouterBaseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.HavenRepositoryURL,
			"X-Title":      core.HavenName,
		},
	})
}
