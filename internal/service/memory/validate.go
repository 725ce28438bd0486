package memory

import (
	"strings"
	"time"

	"github.com/sandevgo/haven/internal/core"
)

// buildInsight turns a raw model insight into a stored one. The second result is
// false when the insight is too vague or uncertain to keep.
func (o *Orchestrator) buildInsight(raw core.RawInsight, now time.Time, sourceIDs []string) (core.Insight, bool) {
	category := core.Category(strings.TrimSpace(raw.Category))
	if !category.Valid() {
		return core.Insight{}, false
	}

	content := strings.TrimSpace(raw.Content)
	if len(content) < o.cfg.MinInsightLength || len(strings.Fields(content)) < o.cfg.MinInsightWords {
		return core.Insight{}, false
	}

	confidence := o.cfg.DefaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	if confidence < 0 || confidence > 1 || confidence < o.cfg.MinConfidence {
		return core.Insight{}, false
	}

	ids := make([]string, len(sourceIDs))
	copy(ids, sourceIDs)

	return core.Insight{
		ID:               o.newID(),
		Category:         category,
		Content:          content,
		Date:             now,
		SourceMessageIDs: ids,
		Confidence:       confidence,
	}, true
}
