package storage

import (
	"context"

	"github.com/samber/lo"
	"github.com/sandevgo/haven/internal/core"
)

// Namespaced prefixes every key with "<userID>:" so several users can share one backend.
type Namespaced struct {
	inner  core.PersistentStore
	prefix string
}

// WithNamespace returns store unchanged when userID is empty.
func WithNamespace(store core.PersistentStore, userID string) core.PersistentStore {
	if userID == "" {
		return store
	}
	return &Namespaced{inner: store, prefix: userID + ":"}
}

func (n *Namespaced) key(k string) string {
	return n.prefix + k
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.key(key), value)
}

func (n *Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.key(key))
}

func (n *Namespaced) RemoveMany(ctx context.Context, keys []string) error {
	return n.inner.RemoveMany(ctx, lo.Map(keys, func(k string, _ int) string { return n.key(k) }))
}
