package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/pkg/log"
)

// ConsolidateSummaries folds the oldest session summaries into one consolidated
// summary. It returns nil and leaves the store untouched when there are too few
// sessions or the model call fails.
func (o *Orchestrator) ConsolidateSummaries(ctx context.Context) *core.Summary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.consolidateSummaries(ctx)
}

func (o *Orchestrator) consolidateSummaries(ctx context.Context) *core.Summary {
	logger := log.Component(ctx, "memory")

	sessions, ok := attempt(ctx, "load_sessions", []core.Summary(nil), func() ([]core.Summary, error) {
		return o.summaries.GetSessionSummaries(ctx)
	})
	threshold := o.cfg.ConsolidationThreshold
	if !ok || len(sessions) < threshold {
		return nil
	}

	// newest first, so the oldest sessions are the tail
	inputs := sessions[len(sessions)-threshold:]

	text, ok := attempt(ctx, "consolidate_summaries", "", func() (string, error) {
		resp, err := o.llm.Do(ctx, core.LLMRequest{
			Task:      core.TaskConsolidateSummaries,
			Summaries: lo.Map(inputs, func(s core.Summary, _ int) string { return s.Text }),
		})
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(resp.ConsolidatedSummary)
		if text == "" {
			return "", fmt.Errorf("%w: empty consolidated summary", core.ErrMalformedResponse)
		}
		return text, nil
	})
	if !ok {
		return nil
	}

	consolidated := core.Summary{
		ID:           o.newID(),
		Text:         text,
		Date:         o.now(),
		Type:         core.SummaryTypeConsolidated,
		SessionIDs:   lo.Map(inputs, func(s core.Summary, _ int) string { return s.ID }),
		MessageCount: lo.SumBy(inputs, func(s core.Summary) int { return s.MessageCount }),
	}

	if !attemptDo(ctx, "replace_sessions", func() error {
		return o.summaries.ReplaceWithConsolidated(ctx, consolidated)
	}) {
		return nil
	}

	logger.Info().
		Str("id", consolidated.ID).
		Int("sessions", len(inputs)).
		Int("messages", consolidated.MessageCount).
		Msg("session summaries consolidated")

	return &consolidated
}
