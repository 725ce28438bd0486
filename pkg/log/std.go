package log

import (
	stdlog "log"

	"github.com/rs/zerolog"
)

// NewStdLogger adapts a zerolog logger for libraries that expect *log.Logger.
func NewStdLogger(l zerolog.Logger) *stdlog.Logger {
	return stdlog.New(l.With().Str("source", "stdlog").Logger(), "", 0)
}
