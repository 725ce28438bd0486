package memory

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
)

// SummaryStore keeps session and consolidated summaries, most recent first.
type SummaryStore struct {
	store        core.PersistentStore
	maxSummaries int
}

func NewSummaryStore(store core.PersistentStore, cfg Config) *SummaryStore {
	return &SummaryStore{
		store:        store,
		maxSummaries: cfg.MaxSummaries,
	}
}

// Save puts summary at the front. A summary with the same id is replaced.
func (s *SummaryStore) Save(ctx context.Context, summary core.Summary) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	rest := lo.Reject(all, func(existing core.Summary, _ int) bool {
		return existing.ID == summary.ID
	})
	return saveDocument(ctx, s.store, core.KeySummaries, append([]core.Summary{summary}, rest...))
}

func (s *SummaryStore) GetAll(ctx context.Context) ([]core.Summary, error) {
	return s.load(ctx)
}

func (s *SummaryStore) GetSessionSummaries(ctx context.Context) ([]core.Summary, error) {
	return s.byType(ctx, core.SummaryTypeSession)
}

func (s *SummaryStore) GetConsolidatedSummaries(ctx context.Context) ([]core.Summary, error) {
	return s.byType(ctx, core.SummaryTypeConsolidated)
}

// ReplaceWithConsolidated adds consolidated and drops the session summaries it folds
// in a single write, so readers never see one change without the other.
func (s *SummaryStore) ReplaceWithConsolidated(ctx context.Context, consolidated core.Summary) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	folded := lo.SliceToMap(consolidated.SessionIDs, func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	rest := lo.Reject(all, func(existing core.Summary, _ int) bool {
		_, gone := folded[existing.ID]
		return existing.Type == core.SummaryTypeSession && gone
	})

	return saveDocument(ctx, s.store, core.KeySummaries, append([]core.Summary{consolidated}, rest...))
}

// Prune keeps the most recent maxSummaries entries.
func (s *SummaryStore) Prune(ctx context.Context) (int, error) {
	all, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := all
	if len(kept) > s.maxSummaries {
		kept = kept[:s.maxSummaries]
	}
	if err := saveDocument(ctx, s.store, core.KeySummaries, kept); err != nil {
		return 0, err
	}
	return len(all) - len(kept), nil
}

func (s *SummaryStore) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, core.KeySummaries)
}

func (s *SummaryStore) byType(ctx context.Context, t core.SummaryType) ([]core.Summary, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(sum core.Summary, _ int) bool {
		return sum.Type == t
	}), nil
}

// load returns the stored list ordered newest first; equal dates keep insertion order.
func (s *SummaryStore) load(ctx context.Context) ([]core.Summary, error) {
	all, err := loadDocument[[]core.Summary](ctx, s.store, core.KeySummaries)
	if err != nil {
		return nil, err
	}
	if all == nil {
		return []core.Summary{}, nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	return all, nil
}
