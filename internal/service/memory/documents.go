package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/haven/internal/core"
)

// loadDocument reads and decodes a whole JSON document. A missing key yields the zero value.
func loadDocument[T any](ctx context.Context, store core.PersistentStore, key string) (T, error) {
	var out T
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", key, err)
	}
	if !found || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func saveDocument(ctx context.Context, store core.PersistentStore, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
