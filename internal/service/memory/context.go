package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
)

const (
	confidenceWeight = 0.7
	recencyWeight    = 0.3
)

const contextPreamble = `LONG-TERM MEMORY ABOUT THIS USER
The notes below are durable patterns observed across previous conversations.
Treat them as stable background about who the user is, not as a description of how they feel right now.
Refer to them gently and only when relevant.`

const noPatterns = "(no patterns identified yet)"

// GetMemoryContext gathers what the next conversation should know: the best
// ranked insights, the latest session summaries and the newest consolidated summary.
func (o *Orchestrator) GetMemoryContext(ctx context.Context) core.MemoryContext {
	o.mu.Lock()
	defer o.mu.Unlock()

	insights, _ := attempt(ctx, "load_insights", []core.Insight{}, func() ([]core.Insight, error) {
		return o.insights.GetAll(ctx)
	})
	summaries, _ := attempt(ctx, "load_summaries", []core.Summary{}, func() ([]core.Summary, error) {
		return o.summaries.GetAll(ctx)
	})

	ranked := rankInsights(insights, o.now(), o.cfg.MaxInsightAge)
	if len(ranked) > o.cfg.MaxContextInsights {
		ranked = ranked[:o.cfg.MaxContextInsights]
	}

	recent := summaries
	if len(recent) > o.cfg.MaxContextSummaries {
		recent = recent[:o.cfg.MaxContextSummaries]
	}
	sessions := lo.Filter(recent, func(s core.Summary, _ int) bool {
		return s.Type == core.SummaryTypeSession
	})

	out := core.MemoryContext{Insights: ranked, Summaries: sessions}
	if consolidated, found := lo.Find(summaries, func(s core.Summary) bool {
		return s.Type == core.SummaryTypeConsolidated
	}); found {
		out.Consolidated = &consolidated
	}
	return out
}

// BuildMemoryContext is FormatMemoryForContext(GetMemoryContext(ctx)).
func (o *Orchestrator) BuildMemoryContext(ctx context.Context) string {
	return FormatMemoryForContext(o.GetMemoryContext(ctx))
}

// insightScore weighs confidence against freshness; recency falls linearly to 0 at maxAge.
func insightScore(in core.Insight, now time.Time, maxAge time.Duration) float64 {
	recency := 1.0
	if maxAge > 0 {
		recency = 1 - float64(now.Sub(in.Date))/float64(maxAge)
	}
	recency = min(max(recency, 0), 1)
	return in.Confidence*confidenceWeight + recency*recencyWeight
}

func rankInsights(insights []core.Insight, now time.Time, maxAge time.Duration) []core.Insight {
	ranked := make([]core.Insight, len(insights))
	copy(ranked, insights)
	sort.SliceStable(ranked, func(i, j int) bool {
		return insightScore(ranked[i], now, maxAge) > insightScore(ranked[j], now, maxAge)
	})
	return ranked
}

// FormatMemoryForContext renders the memory context as plain text for the chat
// prompt. Every category gets a line, in fixed order, even when it is empty.
func FormatMemoryForContext(mc core.MemoryContext) string {
	byCategory := lo.GroupBy(mc.Insights, func(in core.Insight) core.Category {
		return in.Category
	})

	var b strings.Builder
	b.WriteString(contextPreamble)
	b.WriteString("\n\nPatterns by Category:\n")
	for _, category := range core.Categories() {
		items := byCategory[category]
		line := noPatterns
		if len(items) > 0 {
			line = strings.Join(lo.Map(items, func(in core.Insight, _ int) string {
				return in.Content
			}), "; ")
		}
		fmt.Fprintf(&b, "- %s: %s\n", category.Label(), line)
	}

	b.WriteString("\nRecent Sessions:\n")
	if len(mc.Summaries) == 0 {
		b.WriteString("(no previous sessions)\n")
	}
	for i, s := range mc.Summaries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Text)
	}

	if mc.Consolidated != nil {
		b.WriteString("\nConsolidated Themes:\n")
		b.WriteString(mc.Consolidated.Text)
		b.WriteByte('\n')
	}

	return b.String()
}
