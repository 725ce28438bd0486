package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/pkg/conv"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/sandevgo/haven/pkg/retry"
)

// ChatAnalyst runs the analysis tasks locally against a chat-completion provider.
type ChatAnalyst struct {
	provider core.ChatProvider
	retrier  *retry.Retrier
}

func NewChatAnalyst(provider core.ChatProvider, retrier *retry.Retrier) *ChatAnalyst {
	if retrier == nil {
		retrier = retry.NewDefaultRetrier()
	}
	return &ChatAnalyst{provider: provider, retrier: retrier}
}

func (a *ChatAnalyst) Do(ctx context.Context, req core.LLMRequest) (core.LLMResponse, error) {
	var prompt string
	switch req.Task {
	case core.TaskExtractInsights:
		prompt = buildExtractionPrompt(formatConversation(req.Messages))
	case core.TaskGenerateSummary:
		prompt = buildSummaryPrompt(formatConversation(req.Messages))
	case core.TaskConsolidateSummaries:
		prompt = buildConsolidationPrompt(req.Summaries)
	default:
		return core.LLMResponse{}, fmt.Errorf("%w: %s", core.ErrUnknownTask, req.Task)
	}

	history := []core.LLMMessage{
		{Role: core.RoleSystem, Content: analystSystemPrompt},
		{Role: core.RoleUser, Content: prompt},
	}

	var out core.LLMResponse
	err := a.retrier.Do(ctx, func() error {
		reply, err := a.provider.Chat(ctx, history)
		if err != nil {
			log.FromCtx(ctx).Debug().Err(err).Str("task", string(req.Task)).Msg("chat provider call failed")
			return classify(err)
		}
		out, err = parseReply(req.Task, reply.Content)
		return classify(err)
	})
	if err != nil {
		return core.LLMResponse{}, fmt.Errorf("%w: %w", core.ErrLLMFailed, err)
	}
	return out, nil
}

func parseReply(task core.Task, content string) (core.LLMResponse, error) {
	switch task {
	case core.TaskExtractInsights:
		insights, err := parseExtractionResponse(content)
		if err != nil {
			return core.LLMResponse{}, err
		}
		return core.LLMResponse{Insights: insights}, nil
	case core.TaskGenerateSummary:
		text, err := plainText(content)
		return core.LLMResponse{Summary: text}, err
	default:
		text, err := plainText(content)
		return core.LLMResponse{ConsolidatedSummary: text}, err
	}
}

func plainText(content string) (string, error) {
	text := conv.MarkdownToPlainText(content)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", core.ErrMalformedResponse)
	}
	return text, nil
}

func parseExtractionResponse(content string) ([]core.RawInsight, error) {
	jsonStr := extractJSONArray(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("%w: no JSON array found in response", core.ErrMalformedResponse)
	}

	var insights []core.RawInsight
	if err := json.Unmarshal([]byte(jsonStr), &insights); err != nil {
		return nil, fmt.Errorf("%w: unmarshal insights: %v", core.ErrMalformedResponse, err)
	}
	if insights == nil {
		insights = []core.RawInsight{}
	}
	return insights, nil
}

func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(content[start:], "]")
	if end == -1 {
		return ""
	}

	return content[start : start+end+1]
}
