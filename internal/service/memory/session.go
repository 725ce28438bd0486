package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/pkg/log"
)

const emptySessionSummary = "Brief check-in session without substantive conversation."

func fallbackSessionSummary(userMessages int) string {
	return fmt.Sprintf("Session with %d user messages. A detailed summary could not be generated.", userMessages)
}

type SessionSummaryResult struct {
	Summary           core.Summary `json:"summary"`
	ShouldConsolidate bool         `json:"shouldConsolidate"`
}

// GenerateSessionSummary summarizes a finished session and stores it. A session
// without any text returns a generic summary that is not stored.
func (o *Orchestrator) GenerateSessionSummary(ctx context.Context, sessionID string, messages []core.Message) SessionSummaryResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generateSessionSummary(ctx, sessionID, messages)
}

func (o *Orchestrator) generateSessionSummary(ctx context.Context, sessionID string, messages []core.Message) SessionSummaryResult {
	logger := log.Component(ctx, "memory")
	window := conversationWindow(messages, o.cfg.SummaryWindow)

	id := sessionID
	if id == "" {
		id = o.newID()
	}
	summary := core.Summary{
		ID:           id,
		Date:         o.now(),
		Type:         core.SummaryTypeSession,
		MessageCount: len(messages),
	}

	if len(window) == 0 {
		summary.Text = emptySessionSummary
		return SessionSummaryResult{Summary: summary}
	}

	text, ok := attempt(ctx, "generate_summary", "", func() (string, error) {
		resp, err := o.llm.Do(ctx, core.LLMRequest{
			Task:     core.TaskGenerateSummary,
			Messages: toLLMMessages(window),
		})
		if err != nil {
			return "", err
		}
		text := strings.TrimSpace(resp.Summary)
		if text == "" {
			return "", fmt.Errorf("%w: empty summary", core.ErrMalformedResponse)
		}
		return text, nil
	})
	if !ok {
		text = fallbackSessionSummary(len(userMessages(messages)))
	}
	summary.Text = text

	attemptDo(ctx, "save_summary", func() error {
		return o.summaries.Save(ctx, summary)
	})

	sessions, _ := attempt(ctx, "count_sessions", []core.Summary{}, func() ([]core.Summary, error) {
		return o.summaries.GetSessionSummaries(ctx)
	})
	shouldConsolidate := len(sessions) >= o.cfg.ConsolidationThreshold

	logger.Info().
		Str("session", id).
		Bool("fallback", !ok).
		Int("sessions", len(sessions)).
		Bool("consolidate", shouldConsolidate).
		Msg("session summarized")

	return SessionSummaryResult{Summary: summary, ShouldConsolidate: shouldConsolidate}
}

type SessionEndResult struct {
	Summary      core.Summary  `json:"summary"`
	Consolidated *core.Summary `json:"consolidated,omitempty"`
}

// EndSession summarizes the session and, when auto-consolidation is enabled and the
// threshold is reached, folds the oldest session summaries right away.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string, messages []core.Message) SessionEndResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	res := o.generateSessionSummary(ctx, sessionID, messages)
	out := SessionEndResult{Summary: res.Summary}
	if res.ShouldConsolidate && o.cfg.AutoConsolidate {
		out.Consolidated = o.consolidateSummaries(ctx)
	}
	return out
}
