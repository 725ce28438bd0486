package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sandevgo/haven/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryIDs(summaries []core.Summary) []string {
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSummaryStore_SaveOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(newFlakyStore(), DefaultConfig())

	for i, id := range []string{"S1", "S2", "S3"} {
		require.NoError(t, s.Save(ctx, sessionSummary(id, baseTime.Add(time.Duration(i)*time.Hour), 10)))
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S3", "S2", "S1"}, summaryIDs(all))
}

func TestSummaryStore_ReadSortsByDate(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(newFlakyStore(), DefaultConfig())

	// a late-arriving older summary still lands behind newer ones
	require.NoError(t, s.Save(ctx, sessionSummary("new", baseTime.Add(2*time.Hour), 4)))
	require.NoError(t, s.Save(ctx, sessionSummary("old", baseTime, 4)))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, summaryIDs(all))
}

func TestSummaryStore_SameIDReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(newFlakyStore(), DefaultConfig())

	require.NoError(t, s.Save(ctx, sessionSummary("S1", baseTime, 4)))
	require.NoError(t, s.Save(ctx, sessionSummary("S2", baseTime.Add(time.Hour), 4)))

	updated := sessionSummary("S1", baseTime.Add(2*time.Hour), 12)
	updated.Text = "Rewritten summary of the first session."
	require.NoError(t, s.Save(ctx, updated))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"S1", "S2"}, summaryIDs(all))
	assert.Equal(t, updated.Text, all[0].Text)
	assert.Equal(t, 12, all[0].MessageCount)
}

func TestSummaryStore_TypeFilters(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(newFlakyStore(), DefaultConfig())

	require.NoError(t, s.Save(ctx, sessionSummary("S1", baseTime, 4)))
	require.NoError(t, s.Save(ctx, core.Summary{
		ID:   "C1",
		Text: "Recurring theme of balancing work and rest.",
		Date: baseTime.Add(time.Hour),
		Type: core.SummaryTypeConsolidated,
	}))
	require.NoError(t, s.Save(ctx, sessionSummary("S2", baseTime.Add(2*time.Hour), 4)))

	sessions, err := s.GetSessionSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S2", "S1"}, summaryIDs(sessions))

	consolidated, err := s.GetConsolidatedSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, summaryIDs(consolidated))
}

func TestSummaryStore_ReplaceWithConsolidated(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(newFlakyStore(), DefaultConfig())

	for i := 1; i <= 4; i++ {
		require.NoError(t, s.Save(ctx, sessionSummary(fmt.Sprintf("S%d", i), baseTime.Add(time.Duration(i)*time.Hour), 4)))
	}

	consolidated := core.Summary{
		ID:         "C1",
		Text:       "Across several sessions the user worked on sleep routines.",
		Date:       baseTime.Add(10 * time.Hour),
		Type:       core.SummaryTypeConsolidated,
		SessionIDs: []string{"S2", "S1"},
	}
	require.NoError(t, s.ReplaceWithConsolidated(ctx, consolidated))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "S4", "S3"}, summaryIDs(all))
}

func TestSummaryStore_Prune(t *testing.T) {
	ctx := context.Background()
	s := NewSummaryStore(newFlakyStore(), DefaultConfig())

	for i := 1; i <= 55; i++ {
		require.NoError(t, s.Save(ctx, sessionSummary(fmt.Sprintf("S%d", i), baseTime.Add(time.Duration(i)*time.Minute), 2)))
	}

	removed, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, removed)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	assert.Equal(t, "S55", all[0].ID)
	assert.Equal(t, "S6", all[49].ID)

	removed, err = s.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSummaryStore_ClearAndErrors(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	s := NewSummaryStore(store, DefaultConfig())

	require.NoError(t, s.Save(ctx, sessionSummary("S1", baseTime, 4)))
	require.NoError(t, s.Clear(ctx))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	store.setFailures(true, false)
	_, err = s.GetSessionSummaries(ctx)
	assert.ErrorIs(t, err, errStorage)

	store.setFailures(false, true)
	assert.ErrorIs(t, s.Save(ctx, sessionSummary("S2", baseTime, 4)), errStorage)
}
