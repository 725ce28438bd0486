package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/haven/internal/config"
	"github.com/sandevgo/haven/internal/service/ui"
	"github.com/sandevgo/haven/pkg/env"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initFlags config.LLMConfig
	initStore string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the runtime directory and its .env file",
	Long: `Writes the current configuration (environment plus flags) to .env in the
runtime directory so later commands pick it up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		appCfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}
		memCfg, err := config.LoadMemoryConfig()
		if err != nil {
			return err
		}
		llmCfg, err := config.LoadLLMConfig()
		if err != nil {
			return err
		}
		applyInitFlags(cmd, appCfg, llmCfg)

		envPath := appCfg.GetEnvPath()
		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf(".env file already exists at %s (use --force to overwrite)", envPath)
		}

		if err := os.MkdirAll(appCfg.GetRuntimePath(), 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		content, err := env.MarshalEnv(appCfg, llmCfg, memCfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return err
		}

		logger.Debug().Str("path", envPath).Msg("wrote .env file")
		fmt.Fprintln(cmd.OutOrStdout(), ui.UsageStyle.Render("initialized runtime directory at "+appCfg.GetRuntimePath()))
		return nil
	},
}

func applyInitFlags(cmd *cobra.Command, appCfg *config.AppConfig, llmCfg *config.LLMConfig) {
	flags := cmd.Flags()
	if flags.Changed("store") {
		appCfg.Store = initStore
	}
	if flags.Changed("provider") {
		llmCfg.Provider = initFlags.Provider
	}
	if flags.Changed("model") {
		llmCfg.Model = initFlags.Model
	}
	if flags.Changed("base-url") {
		llmCfg.BaseURL = initFlags.BaseURL
	}
	if flags.Changed("api-key") {
		llmCfg.APIKey = initFlags.APIKey
	}
	if flags.Changed("function-url") {
		llmCfg.FunctionURL = initFlags.FunctionURL
	}
	if flags.Changed("function-token") {
		llmCfg.FunctionToken = initFlags.FunctionToken
	}
}

func init() {
	f := initCmd.Flags()
	f.BoolVar(&initForce, "force", false, "overwrite an existing .env file")
	f.StringVar(&initStore, "store", "", "store driver: sqlite, postgres or memory")
	f.StringVar(&initFlags.Provider, "provider", "", "llm provider: function, openai, openrouter, ollama, anthropic or custom")
	f.StringVar(&initFlags.Model, "model", "", "model name for chat providers")
	f.StringVar(&initFlags.BaseURL, "base-url", "", "base url for ollama or custom providers")
	f.StringVar(&initFlags.APIKey, "api-key", "", "api key for chat providers")
	f.StringVar(&initFlags.FunctionURL, "function-url", "", "url of the hosted analysis function")
	f.StringVar(&initFlags.FunctionToken, "function-token", "", "bearer token for the analysis function")

	rootCmd.AddCommand(initCmd)
}
