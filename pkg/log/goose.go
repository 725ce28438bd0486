package log

import (
	"context"

	"github.com/rs/zerolog"
)

// MigrationLogger routes goose output through zerolog.
type MigrationLogger struct {
	logger zerolog.Logger
}

func (g *MigrationLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *MigrationLogger) Printf(format string, v ...interface{}) {
	g.logger.Debug().Msgf(format, v...)
}

func NewMigrationLoggerFromCtx(ctx context.Context) *MigrationLogger {
	return &MigrationLogger{
		logger: Component(ctx, "migrations"),
	}
}
