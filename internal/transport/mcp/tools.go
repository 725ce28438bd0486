package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/haven/internal/core"
)

const noConsolidation = "no consolidation performed"

var messageItems = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": "string"},
		"role":    map[string]any{"type": "string", "enum": []string{core.RoleUser, core.RoleSystem}},
		"content": map[string]any{"type": "string"},
	},
	"required": []string{"role", "content"},
}

var (
	memoryContextTool = mcp.NewTool("get_memory_context",
		mcp.WithDescription("Return the long-term memory block to place in the companion's system prompt: patterns by category, recent session summaries and consolidated themes."),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	extractInsightsTool = mcp.NewTool("extract_insights",
		mcp.WithDescription("Report the full chat history after a turn. Extraction runs only when enough new meaningful user messages have arrived; returns the insights stored by this call."),
		mcp.WithArray("messages",
			mcp.Required(),
			mcp.Description("Chat history in chronological order. Role 'user' for the user, 'system' for companion replies."),
			mcp.Items(messageItems),
		),
	)

	endSessionTool = mcp.NewTool("end_session",
		mcp.WithDescription("Summarize a finished session and store the summary. Older sessions are folded into a consolidated summary when enough have accumulated."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Identifier of the finished session; reused as the summary id."),
		),
		mcp.WithArray("messages",
			mcp.Required(),
			mcp.Description("Messages of the finished session in chronological order."),
			mcp.Items(messageItems),
		),
	)

	consolidateTool = mcp.NewTool("consolidate_summaries",
		mcp.WithDescription("Fold the oldest session summaries into one consolidated summary when the threshold is reached."),
	)

	pruneTool = mcp.NewTool("prune_memory",
		mcp.WithDescription("Drop expired insights and summaries beyond the retention limit."),
		mcp.WithDestructiveHintAnnotation(true),
	)
)

type historyArgs struct {
	SessionID string         `json:"session_id"`
	Messages  []core.Message `json:"messages"`
}

func bindHistory(request mcp.CallToolRequest) (historyArgs, error) {
	var args historyArgs
	if err := request.BindArguments(&args); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

func (s *Server) handleMemoryContext(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.memory.BuildMemoryContext(ctx)), nil
}

func (s *Server) handleExtractInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := bindHistory(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.memory.ExtractInsights(ctx, args.Messages))
}

func (s *Server) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args, err := bindHistory(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.memory.EndSession(ctx, sessionID, args.Messages))
}

func (s *Server) handleConsolidate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := s.memory.ConsolidateSummaries(ctx)
	if summary == nil {
		return mcp.NewToolResultText(noConsolidation), nil
	}
	return jsonResult(summary)
}

func (s *Server) handlePrune(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.memory.Prune(ctx))
}
