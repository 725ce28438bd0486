package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/haven/internal/service/memory"
	"github.com/sandevgo/haven/pkg/log"
)

type MemoryConfig struct {
	MinMessageThreshold    int     `env:"HAVEN_MIN_MESSAGE_THRESHOLD" envDefault:"5"`
	MeaningfulRatio        float64 `env:"HAVEN_MEANINGFUL_RATIO" envDefault:"0.7"`
	DedupThreshold         float64 `env:"HAVEN_DEDUP_THRESHOLD" envDefault:"0.8"`
	MaxInsightAgeDays      int     `env:"HAVEN_MAX_INSIGHT_AGE_DAYS" envDefault:"30"`
	ConsolidationThreshold int     `env:"HAVEN_CONSOLIDATION_THRESHOLD" envDefault:"10"`
	MaxSummaries           int     `env:"HAVEN_MAX_SUMMARIES" envDefault:"50"`
	MaxContextInsights     int     `env:"HAVEN_MAX_CONTEXT_INSIGHTS" envDefault:"20"`
	MaxContextSummaries    int     `env:"HAVEN_MAX_CONTEXT_SUMMARIES" envDefault:"3"`
	AutoConsolidate        bool    `env:"HAVEN_AUTO_CONSOLIDATE" envDefault:"true"`
}

func LoadMemoryConfig() (*MemoryConfig, error) {
	c := &MemoryConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the thresholds once they are applied to the orchestrator defaults.
func (c MemoryConfig) Validate() error {
	return c.ToMemory().Validate()
}

func NewMemoryConfig(ctx context.Context) *MemoryConfig {
	c, err := LoadMemoryConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Memory config")
	}
	return c
}

// ToMemory overlays the tunable thresholds on the orchestrator defaults.
func (c MemoryConfig) ToMemory() memory.Config {
	m := memory.DefaultConfig()
	m.MinMessageThreshold = c.MinMessageThreshold
	m.MeaningfulRatio = c.MeaningfulRatio
	m.DedupThreshold = c.DedupThreshold
	m.MaxInsightAge = time.Duration(c.MaxInsightAgeDays) * 24 * time.Hour
	m.ConsolidationThreshold = c.ConsolidationThreshold
	m.MaxSummaries = c.MaxSummaries
	m.MaxContextInsights = c.MaxContextInsights
	m.MaxContextSummaries = c.MaxContextSummaries
	m.AutoConsolidate = c.AutoConsolidate
	return m
}
