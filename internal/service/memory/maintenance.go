package memory

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sandevgo/haven/pkg/log"
)

const DefaultMaintenanceSchedule = "@daily"

type pruner interface {
	Prune(ctx context.Context) PruneResult
}

// Maintenance compacts memory storage on a cron schedule.
type Maintenance struct {
	target   pruner
	schedule string
	cron     *cron.Cron
}

func NewMaintenance(target pruner, schedule string) (*Maintenance, error) {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	return &Maintenance{
		target:   target,
		schedule: schedule,
		cron:     cron.New(),
	}, nil
}

func (m *Maintenance) Start(ctx context.Context) error {
	logger := log.Component(ctx, "maintenance")
	logger.Info().Str("schedule", m.schedule).Msg("starting memory maintenance")

	if _, err := m.cron.AddFunc(m.schedule, func() { m.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule maintenance: %w", err)
	}
	m.cron.Start()

	<-ctx.Done()
	logger.Info().Msg("shutting down memory maintenance")
	return nil
}

func (m *Maintenance) Shutdown(ctx context.Context) error {
	stopped := m.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Maintenance) RunOnce(ctx context.Context) PruneResult {
	return m.target.Prune(ctx)
}
