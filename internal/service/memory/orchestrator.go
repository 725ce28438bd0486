package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/pkg/log"
)

// Orchestrator decides when to extract, summarize and consolidate, and assembles
// the memory context for the chat prompt. It owns the extraction baseline for one
// user; storage and model failures degrade to empty or fallback results.
type Orchestrator struct {
	mu sync.Mutex

	cfg       Config
	store     core.PersistentStore
	llm       core.LLMClient
	insights  *InsightStore
	summaries *SummaryStore
	scheduler Scheduler

	metadata core.ExtractionMetadata

	now   func() time.Time
	newID func() string

	metadataPreset bool
}

type Option func(*Orchestrator)

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) { o.newID = fn }
}

// WithMetadata seeds the extraction baseline instead of reading it from the store.
func WithMetadata(meta core.ExtractionMetadata) Option {
	return func(o *Orchestrator) {
		o.metadata = meta
		o.metadataPreset = true
	}
}

func NewOrchestrator(ctx context.Context, cfg Config, store core.PersistentStore, llm core.LLMClient, opts ...Option) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("memory: nil persistent store")
	}
	if llm == nil {
		return nil, errors.New("memory: nil llm client")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:       cfg,
		store:     store,
		llm:       llm,
		scheduler: NewScheduler(cfg),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.insights = NewInsightStore(store, cfg, o.now)
	o.summaries = NewSummaryStore(store, cfg)

	if !o.metadataPreset {
		o.metadata, _ = attempt(ctx, "load_metadata", core.ExtractionMetadata{}, func() (core.ExtractionMetadata, error) {
			return loadMetadata(ctx, store)
		})
	}

	log.FromCtx(ctx).Debug().
		Int("baseline", o.metadata.MessageCount).
		Time("last_extraction", o.metadata.LastExtraction).
		Msg("memory orchestrator ready")

	return o, nil
}

func (o *Orchestrator) Insights() *InsightStore {
	return o.insights
}

func (o *Orchestrator) Summaries() *SummaryStore {
	return o.summaries
}

func (o *Orchestrator) Metadata() core.ExtractionMetadata {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.metadata
}

func (o *Orchestrator) ShouldExtract(messages []core.Message) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scheduler.ShouldExtract(messages, o.metadata)
}

type ExtractionResult struct {
	Insights      []core.Insight `json:"insights"`
	ShouldExtract bool           `json:"shouldExtract"`
	MessageCount  int            `json:"messageCount"`
}

// ExtractInsights runs one extraction pass when the scheduler allows it. The
// baseline moves only after the model call succeeds.
func (o *Orchestrator) ExtractInsights(ctx context.Context, messages []core.Message) ExtractionResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	logger := log.Component(ctx, "memory")
	userCount := len(userMessages(messages))

	if !o.scheduler.ShouldExtract(messages, o.metadata) {
		return ExtractionResult{Insights: []core.Insight{}, MessageCount: userCount}
	}

	window := conversationWindow(messages, o.cfg.ExtractionWindow)
	logger.Debug().
		Int("window", len(window)).
		Int("transcript_bytes", len(formatTranscript(window))).
		Msg("requesting insight extraction")

	resp, ok := attempt(ctx, "extract_insights", core.LLMResponse{}, func() (core.LLMResponse, error) {
		return o.llm.Do(ctx, core.LLMRequest{
			Task:     core.TaskExtractInsights,
			Messages: toLLMMessages(window),
		})
	})
	if !ok {
		return ExtractionResult{Insights: []core.Insight{}, MessageCount: o.metadata.MessageCount}
	}

	now := o.now()
	sourceIDs := lastMessageIDs(messages, o.cfg.SourceMessageWindow)
	created := make([]core.Insight, 0, len(resp.Insights))
	writeFailed := false

	for _, raw := range resp.Insights {
		insight, valid := o.buildInsight(raw, now, sourceIDs)
		if !valid {
			logger.Debug().Str("category", raw.Category).Msg("insight rejected by validation")
			continue
		}

		saved, ok := attempt(ctx, "save_insight", false, func() (bool, error) {
			return o.insights.Save(ctx, insight)
		})
		if !ok {
			writeFailed = true
		}
		if saved {
			created = append(created, insight)
		}
	}

	// the baseline must not move past insights that never reached storage
	if !writeFailed {
		o.metadata = core.ExtractionMetadata{LastExtraction: now, MessageCount: userCount}
		attemptDo(ctx, "save_metadata", func() error {
			return saveMetadata(ctx, o.store, o.metadata)
		})
	}

	logger.Info().
		Int("received", len(resp.Insights)).
		Int("stored", len(created)).
		Int("baseline", userCount).
		Msg("insights extracted")

	return ExtractionResult{Insights: created, ShouldExtract: true, MessageCount: userCount}
}

type PruneResult struct {
	Insights  int `json:"insightsRemoved"`
	Summaries int `json:"summariesRemoved"`
}

// Prune compacts storage: expired insights and summaries beyond the retention limit.
func (o *Orchestrator) Prune(ctx context.Context) PruneResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	var res PruneResult
	res.Insights, _ = attempt(ctx, "prune_insights", 0, func() (int, error) {
		return o.insights.Prune(ctx)
	})
	res.Summaries, _ = attempt(ctx, "prune_summaries", 0, func() (int, error) {
		return o.summaries.Prune(ctx)
	})

	logger := log.Component(ctx, "memory")
	logger.Info().
		Int("insights", res.Insights).
		Int("summaries", res.Summaries).
		Msg("memory pruned")
	return res
}

// Reset forgets everything stored for this user and zeroes the baseline.
func (o *Orchestrator) Reset(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	keys := []string{core.KeyInsights, core.KeySummaries, core.KeyExtractionMetadata}
	if err := o.store.RemoveMany(ctx, keys); err != nil {
		return err
	}
	o.metadata = core.ExtractionMetadata{}
	return nil
}
