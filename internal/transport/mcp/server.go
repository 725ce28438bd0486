// Package mcp exposes the memory orchestrator as MCP tools over stdio, so the
// chat front end can fetch context and report finished turns and sessions.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/internal/service/memory"
	"github.com/sandevgo/haven/pkg/log"
)

// Memory is the slice of the orchestrator the tools need.
type Memory interface {
	BuildMemoryContext(ctx context.Context) string
	ExtractInsights(ctx context.Context, messages []core.Message) memory.ExtractionResult
	EndSession(ctx context.Context, sessionID string, messages []core.Message) memory.SessionEndResult
	ConsolidateSummaries(ctx context.Context) *core.Summary
	Prune(ctx context.Context) memory.PruneResult
}

type Server struct {
	memory    Memory
	mcpServer *server.MCPServer
	in        io.Reader
	out       io.Writer
	onClose   func()
}

type Option func(*Server)

// OnClose registers fn to run once the client closes the stream.
func OnClose(fn func()) Option {
	return func(s *Server) { s.onClose = fn }
}

// WithIO replaces stdin/stdout, mainly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

func NewServer(mem Memory, opts ...Option) (*Server, error) {
	if mem == nil {
		return nil, errors.New("memory orchestrator is required")
	}

	s := &Server{
		memory: mem,
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		core.HavenName,
		core.HavenVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTool(memoryContextTool, s.handleMemoryContext)
	s.mcpServer.AddTool(extractInsightsTool, s.handleExtractInsights)
	s.mcpServer.AddTool(endSessionTool, s.handleEndSession)
	s.mcpServer.AddTool(consolidateTool, s.handleConsolidate)
	s.mcpServer.AddTool(pruneTool, s.handlePrune)

	return s, nil
}

// MCPServer returns the underlying server for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) Start(ctx context.Context) error {
	logger := log.Component(ctx, "mcp")
	logger.Info().Msg("serving memory tools on stdio")

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.NewStdLogger(logger))

	err := stdio.Listen(ctx, s.in, s.out)
	if s.onClose != nil && ctx.Err() == nil {
		logger.Info().Msg("mcp client disconnected")
		s.onClose()
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
