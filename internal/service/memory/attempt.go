package memory

import (
	"context"

	"github.com/sandevgo/haven/pkg/log"
)

// attempt runs fn and substitutes fallback when it fails. Every storage and LLM
// failure inside the orchestrator is absorbed here, so the chat flow never sees them.
func attempt[T any](ctx context.Context, op string, fallback T, fn func() (T, error)) (T, bool) {
	v, err := fn()
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("op", op).Msg("memory operation degraded")
		return fallback, false
	}
	return v, true
}

// attemptDo is attempt for operations without a result.
func attemptDo(ctx context.Context, op string, fn func() error) bool {
	_, ok := attempt(ctx, op, struct{}{}, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return ok
}
