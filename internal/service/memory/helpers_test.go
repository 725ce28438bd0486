package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/internal/storage/inmem"
	"github.com/stretchr/testify/require"
)

var (
	errStorage = errors.New("storage unavailable")
	errNetwork = errors.New("network unreachable")
)

var baseTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type fakeLLM struct {
	mu        sync.Mutex
	responses map[core.Task]core.LLMResponse
	errs      map[core.Task]error
	calls     []core.LLMRequest
}

func newFakeLLM() *fakeLLM {
	return &fakeLLM{
		responses: make(map[core.Task]core.LLMResponse),
		errs:      make(map[core.Task]error),
	}
}

func (f *fakeLLM) respond(task core.Task, resp core.LLMResponse) *fakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[task] = resp
	delete(f.errs, task)
	return f
}

func (f *fakeLLM) fail(task core.Task, err error) *fakeLLM {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[task] = err
	return f
}

func (f *fakeLLM) Do(ctx context.Context, req core.LLMRequest) (core.LLMResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err, ok := f.errs[req.Task]; ok {
		return core.LLMResponse{}, err
	}
	resp, ok := f.responses[req.Task]
	if !ok {
		return core.LLMResponse{}, fmt.Errorf("%w: no scripted response for %s", core.ErrLLMFailed, req.Task)
	}
	return resp, nil
}

func (f *fakeLLM) callsFor(task core.Task) []core.LLMRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.LLMRequest
	for _, c := range f.calls {
		if c.Task == task {
			out = append(out, c)
		}
	}
	return out
}

// flakyStore wraps the in-memory store and fails on demand.
type flakyStore struct {
	*inmem.KVStore
	mu      sync.Mutex
	failGet bool
	failSet bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{KVStore: inmem.NewKVStore()}
}

func (s *flakyStore) setFailures(get, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet, s.failSet = get, set
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return "", false, errStorage
	}
	return s.KVStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return errStorage
	}
	return s.KVStore.Set(ctx, key, value)
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type testEnv struct {
	orch  *Orchestrator
	llm   *fakeLLM
	store *flakyStore
	clock *testClock
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		llm:   newFakeLLM(),
		store: newFlakyStore(),
		clock: &testClock{t: baseTime},
	}
	all := append([]Option{WithClock(env.clock.now), WithIDGenerator(sequentialIDs("id"))}, opts...)
	orch, err := NewOrchestrator(context.Background(), DefaultConfig(), env.store, env.llm, all...)
	require.NoError(t, err)
	env.orch = orch
	return env
}

// conversation builds n user messages of the given text, each followed by a companion reply.
func conversation(n int, userText string) []core.Message {
	msgs := make([]core.Message, 0, 2*n)
	for i := 0; i < n; i++ {
		msgs = append(msgs,
			core.Message{ID: fmt.Sprintf("m%d", 2*i+1), Role: core.RoleUser, Content: userText},
			core.Message{ID: fmt.Sprintf("m%d", 2*i+2), Role: core.RoleSystem, Content: "That sounds hard. What happened next?"},
		)
	}
	return msgs
}

func meaningfulConversation(n int) []core.Message {
	return conversation(n, "I keep worrying about work deadlines")
}

func confidence(v float64) *float64 {
	return &v
}

func sessionSummary(id string, date time.Time, messages int) core.Summary {
	return core.Summary{
		ID:           id,
		Text:         "Session " + id + " covered sleep and work stress.",
		Date:         date,
		Type:         core.SummaryTypeSession,
		MessageCount: messages,
	}
}
