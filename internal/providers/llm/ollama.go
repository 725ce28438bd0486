package llm

const ollamaBaseURL = "http://localhost:11434"

// NewOllama talks to the OpenAI-compatible endpoint of a local Ollama server.
func NewOllama(baseURL, apiKey, model string) *OpenAICompatible {
	if baseURL == "" {
		baseURL = ollamaBaseURL
	}
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}
