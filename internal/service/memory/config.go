package memory

import (
	"fmt"
	"time"
)

type Config struct {
	// Extraction gate
	MinMessageThreshold int
	MeaningfulRatio     float64
	MeaningfulMinWords  int

	// Insight quality
	DedupThreshold    float64
	MaxInsightAge     time.Duration
	DefaultConfidence float64
	MinConfidence     float64
	MinInsightLength  int
	MinInsightWords   int

	// Summaries
	ConsolidationThreshold int
	MaxSummaries           int
	AutoConsolidate        bool

	// Context assembly
	MaxContextInsights  int
	MaxContextSummaries int

	// Transcript windows
	ExtractionWindow    int
	SourceMessageWindow int
	SummaryWindow       int
}

func DefaultConfig() Config {
	return Config{
		MinMessageThreshold: 5,
		MeaningfulRatio:     0.7,
		MeaningfulMinWords:  3,

		DedupThreshold:    0.8,
		MaxInsightAge:     30 * 24 * time.Hour,
		DefaultConfidence: 0.7,
		MinConfidence:     0.5,
		MinInsightLength:  20,
		MinInsightWords:   4,

		ConsolidationThreshold: 10,
		MaxSummaries:           50,
		AutoConsolidate:        true,

		MaxContextInsights:  20,
		MaxContextSummaries: 3,

		ExtractionWindow:    20,
		SourceMessageWindow: 10,
		SummaryWindow:       30,
	}
}

// Validate rejects thresholds that would make the gates or windows meaningless.
func (c Config) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"min message threshold", c.MinMessageThreshold},
		{"consolidation threshold", c.ConsolidationThreshold},
		{"max summaries", c.MaxSummaries},
		{"max context insights", c.MaxContextInsights},
		{"max context summaries", c.MaxContextSummaries},
		{"extraction window", c.ExtractionWindow},
		{"source message window", c.SourceMessageWindow},
		{"summary window", c.SummaryWindow},
	}
	for _, n := range counts {
		if n.value <= 0 {
			return fmt.Errorf("memory: %s must be positive, got %d", n.name, n.value)
		}
	}

	ratios := []struct {
		name  string
		value float64
	}{
		{"meaningful ratio", c.MeaningfulRatio},
		{"dedup threshold", c.DedupThreshold},
		{"default confidence", c.DefaultConfidence},
	}
	for _, r := range ratios {
		if r.value <= 0 || r.value > 1 {
			return fmt.Errorf("memory: %s must be in (0, 1], got %g", r.name, r.value)
		}
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("memory: min confidence must be in [0, 1], got %g", c.MinConfidence)
	}

	if c.MaxInsightAge <= 0 {
		return fmt.Errorf("memory: max insight age must be positive, got %s", c.MaxInsightAge)
	}
	if c.MeaningfulMinWords < 0 || c.MinInsightLength < 0 || c.MinInsightWords < 0 {
		return fmt.Errorf("memory: word and length minimums must not be negative")
	}
	return nil
}
