package memory

import (
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
)

// Scheduler is the local gate in front of the expensive extraction call.
type Scheduler struct {
	minMessages     int
	meaningfulRatio float64
	minWords        int
}

func NewScheduler(cfg Config) Scheduler {
	return Scheduler{
		minMessages:     cfg.MinMessageThreshold,
		meaningfulRatio: cfg.MeaningfulRatio,
		minWords:        cfg.MeaningfulMinWords,
	}
}

// ShouldExtract requires enough new user messages since the last extraction and
// enough of those new messages to carry more than a few words. The meaningful
// ratio is measured over the new user messages only, not the whole history.
// A baseline outside [0, user messages] is clamped into that range.
func (s Scheduler) ShouldExtract(messages []core.Message, meta core.ExtractionMetadata) bool {
	user := userMessages(messages)
	baseline := min(max(meta.MessageCount, 0), len(user))
	newCount := len(user) - baseline
	if newCount < s.minMessages {
		return false
	}

	fresh := user[baseline:]
	meaningful := lo.CountBy(fresh, func(m core.Message) bool {
		return len(strings.Fields(m.Content)) > s.minWords
	})
	return meaningful >= s.requiredMeaningful()
}

func (s Scheduler) requiredMeaningful() int {
	return int(math.Ceil(float64(s.minMessages) * s.meaningfulRatio))
}

func userMessages(messages []core.Message) []core.Message {
	return lo.Filter(messages, func(m core.Message, _ int) bool {
		return m.IsUser()
	})
}
