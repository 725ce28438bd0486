package memory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/haven/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	calls atomic.Int32
}

func (p *countingPruner) Prune(ctx context.Context) PruneResult {
	p.calls.Add(1)
	return PruneResult{Insights: 2, Summaries: 1}
}

func TestNewMaintenance_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
		expected string
	}{
		{name: "default", schedule: "", expected: DefaultMaintenanceSchedule},
		{name: "descriptor", schedule: "@hourly", expected: "@hourly"},
		{name: "five fields", schedule: "30 3 * * *", expected: "30 3 * * *"},
		{name: "garbage", schedule: "every now and then", wantErr: true},
		{name: "six fields", schedule: "0 30 3 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMaintenance(&countingPruner{}, tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.schedule)
		})
	}
}

func TestMaintenance_RunOnce(t *testing.T) {
	p := &countingPruner{}
	m, err := NewMaintenance(p, "")
	require.NoError(t, err)

	assert.Equal(t, PruneResult{Insights: 2, Summaries: 1}, m.RunOnce(context.Background()))
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestMaintenance_StartStopsOnCancel(t *testing.T) {
	m, err := NewMaintenance(&countingPruner{}, "@every 1h")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("maintenance did not stop")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
	defer stop()
	assert.NoError(t, m.Shutdown(shutdownCtx))
}

func TestMaintenance_PrunesOrchestrator(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.orch.Insights().Save(ctx, newInsight("old", core.CategoryEmotions, anxietyInsight, baseTime.Add(-45*24*time.Hour)))
	require.NoError(t, err)

	m, err := NewMaintenance(env.orch, "@daily")
	require.NoError(t, err)
	assert.Equal(t, PruneResult{Insights: 1}, m.RunOnce(ctx))
}
