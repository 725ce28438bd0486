package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/haven/internal/config"
	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/internal/providers/llm"
	"github.com/sandevgo/haven/internal/service/memory"
	"github.com/sandevgo/haven/internal/storage"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    *config.AppConfig
	orch   *memory.Orchestrator
	closer func() error
}

func newApp(ctx context.Context) (*app, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("init env: %w", err)
	}

	// 1. Configuration
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}
	memCfg, err := config.LoadMemoryConfig()
	if err != nil {
		return nil, fmt.Errorf("parse memory config: %w", err)
	}
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, fmt.Errorf("parse llm config: %w", err)
	}

	// 2. Storage
	store, closeStore, err := storage.Open(ctx, appCfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	// 3. LLM client
	client, err := llm.NewClient(ctx, llmCfg, llmCfg.Retrier())
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	// 4. Orchestrator
	orch, err := memory.NewOrchestrator(ctx, memCfg.ToMemory(), store, client)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &app{cfg: appCfg, orch: orch, closer: closeStore}, nil
}

func (a *app) Close() error {
	return a.closer()
}

// runWithApp sets up logging and the orchestrator around a one-shot command.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, flushLog := setupLogger(cmd.Context())
	defer flushLog()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to close storage")
		}
	}()

	return fn(ctx, a)
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

// readMessages decodes a JSON array of chat messages from path, or stdin for "-".
func readMessages(cmd *cobra.Command, path string) ([]core.Message, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var messages []core.Message
	if err := json.NewDecoder(r).Decode(&messages); err != nil {
		return nil, fmt.Errorf("decode messages from %s: %w", path, err)
	}
	return messages, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
