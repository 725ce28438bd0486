package core

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed         = errors.New("llm request failed")
	ErrMalformedResponse = errors.New("malformed llm response")
	ErrUnknownTask       = errors.New("unknown llm task")
)

type Task string

const (
	TaskExtractInsights      Task = "extract_insights"
	TaskGenerateSummary      Task = "generate_summary"
	TaskConsolidateSummaries Task = "consolidate_summaries"
)

type LLMMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type LLMRequest struct {
	Task      Task         `json:"task"`
	Messages  []LLMMessage `json:"messages,omitempty"`
	Summaries []string     `json:"summaries,omitempty"`
}

// RawInsight is an insight as returned by the analysis step, before validation.
type RawInsight struct {
	Category   string   `json:"category"`
	Content    string   `json:"content"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type LLMResponse struct {
	Insights            []RawInsight `json:"insights,omitempty"`
	Summary             string       `json:"summary,omitempty"`
	ConsolidatedSummary string       `json:"consolidated_summary,omitempty"`
}

// LLMClient runs one analysis task. A nil error means the response carries the
// field required by the task.
type LLMClient interface {
	Do(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// ChatProvider is a plain chat-completion backend.
type ChatProvider interface {
	Chat(ctx context.Context, history []LLMMessage) (LLMMessage, error)
}
