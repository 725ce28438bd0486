package core

import "context"

const (
	KeyInsights           = "memory_insights"
	KeySummaries          = "memory_summaries"
	KeyExtractionMetadata = "memory_extraction_metadata"
)

// PersistentStore is a durable key-value store holding JSON documents.
type PersistentStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys []string) error
}
