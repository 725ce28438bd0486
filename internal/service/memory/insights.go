package memory

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
)

// InsightStore keeps the insight list as one JSON document. Expired insights stay
// in storage until Prune and are filtered out of every read.
type InsightStore struct {
	store          core.PersistentStore
	maxAge         time.Duration
	dedupThreshold float64
	now            func() time.Time
}

func NewInsightStore(store core.PersistentStore, cfg Config, now func() time.Time) *InsightStore {
	if now == nil {
		now = time.Now
	}
	return &InsightStore{
		store:          store,
		maxAge:         cfg.MaxInsightAge,
		dedupThreshold: cfg.DedupThreshold,
		now:            now,
	}
}

// Save appends insight unless an active insight of the same category is too similar.
// A dropped duplicate is reported as saved=false with a nil error.
func (s *InsightStore) Save(ctx context.Context, insight core.Insight) (bool, error) {
	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	if s.isDuplicate(s.active(all), insight) {
		return false, nil
	}

	all = append(all, insight)
	if err := saveDocument(ctx, s.store, core.KeyInsights, all); err != nil {
		return false, err
	}
	return true, nil
}

func (s *InsightStore) GetAll(ctx context.Context) ([]core.Insight, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.active(all), nil
}

func (s *InsightStore) GetByCategory(ctx context.Context, category core.Category) ([]core.Insight, error) {
	active, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(active, func(in core.Insight, _ int) bool {
		return in.Category == category
	}), nil
}

// Prune rewrites storage with only the active insights and reports how many were dropped.
func (s *InsightStore) Prune(ctx context.Context) (int, error) {
	all, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	active := s.active(all)
	if err := saveDocument(ctx, s.store, core.KeyInsights, active); err != nil {
		return 0, err
	}
	return len(all) - len(active), nil
}

func (s *InsightStore) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, core.KeyInsights)
}

func (s *InsightStore) load(ctx context.Context) ([]core.Insight, error) {
	all, err := loadDocument[[]core.Insight](ctx, s.store, core.KeyInsights)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []core.Insight{}
	}
	return all, nil
}

func (s *InsightStore) active(all []core.Insight) []core.Insight {
	cutoff := s.now().Add(-s.maxAge)
	return lo.Filter(all, func(in core.Insight, _ int) bool {
		return !in.Date.Before(cutoff)
	})
}

func (s *InsightStore) isDuplicate(active []core.Insight, incoming core.Insight) bool {
	return lo.ContainsBy(active, func(existing core.Insight) bool {
		return existing.Category == incoming.Category &&
			Similarity(existing.Content, incoming.Content) > s.dedupThreshold
	})
}
