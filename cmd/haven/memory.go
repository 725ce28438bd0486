package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/haven/internal/service/ui"
	"github.com/sandevgo/haven/pkg/tokens"
	"github.com/spf13/cobra"
)

var (
	messagesFile string
	sessionID    string
	endSession   bool
	rawContext   bool
	confirmReset bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run insight extraction over a chat history",
	Long: `Reads a JSON array of messages ({id, role, content}) and extracts insights
when enough new meaningful user messages have arrived since the last run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := readMessages(cmd, messagesFile)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			return printJSON(cmd, a.orch.ExtractInsights(ctx, messages))
		})
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a finished session",
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := readMessages(cmd, messagesFile)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			if endSession {
				return printJSON(cmd, a.orch.EndSession(ctx, sessionID, messages))
			}
			return printJSON(cmd, a.orch.GenerateSessionSummary(ctx, sessionID, messages))
		})
	},
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Fold the oldest session summaries into a consolidated summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			summary := a.orch.ConsolidateSummaries(ctx)
			if summary == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.DescStyle.Render("no consolidation performed"))
				return nil
			}
			return printJSON(cmd, summary)
		})
	},
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the memory context injected into the chat prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			text := a.orch.BuildMemoryContext(ctx)
			if rawContext {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.BoxStyle.Render(text))
			fmt.Fprintln(cmd.OutOrStdout(), ui.DescStyle.Render(fmt.Sprintf("~%d tokens", tokens.Count(text))))
			return nil
		})
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop expired insights and summaries beyond the retention limit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			return printJSON(cmd, a.orch.Prune(ctx))
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every insight, summary and the extraction baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return errors.New("reset deletes all stored memory; pass --yes to confirm")
		}
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.orch.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.UsageStyle.Render("memory cleared for user "+a.cfg.GetUserID()))
			return nil
		})
	},
}

func init() {
	extractCmd.Flags().StringVarP(&messagesFile, "file", "f", "-", "JSON file with the chat history, - for stdin")

	summarizeCmd.Flags().StringVarP(&messagesFile, "file", "f", "-", "JSON file with the session messages, - for stdin")
	summarizeCmd.Flags().StringVarP(&sessionID, "session", "s", "", "session id, reused as the summary id")
	summarizeCmd.Flags().BoolVar(&endSession, "end", false, "also consolidate when the threshold is reached")

	contextCmd.Flags().BoolVar(&rawContext, "raw", false, "print the plain context without styling")

	resetCmd.Flags().BoolVarP(&confirmReset, "yes", "y", false, "confirm deletion")

	rootCmd.AddCommand(extractCmd, summarizeCmd, consolidateCmd, contextCmd, pruneCmd, resetCmd)
}
