package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/haven/internal/service/memory"
	"github.com/sandevgo/haven/internal/transport/mcp"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/sandevgo/haven/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the memory tools over MCP stdio",
	Long: `Starts the MCP server on stdin/stdout together with the scheduled memory
maintenance. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		// a closed stdio stream ends the process like a signal would
		ctx, disconnect := context.WithCancel(ctx)
		defer disconnect()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting haven")

		services, err := NewServices(ctx, disconnect)
		if err != nil {
			return err
		}

		if err := srv.Run(ctx, services); err != nil {
			return err
		}
		logger.Info().Msg("haven has been shut down gracefully")
		return nil
	},
}

func NewServices(ctx context.Context, onDisconnect func()) ([]srv.Service, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	services := []srv.Service{srv.NewCleanup(a.Close)}

	maintenance, err := memory.NewMaintenance(a.orch, a.cfg.GetMaintenanceSchedule())
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	services = append(services, maintenance)

	server, err := mcp.NewServer(a.orch, mcp.OnClose(onDisconnect))
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	services = append(services, server)

	return services, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
