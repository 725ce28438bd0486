package memory

import (
	"context"

	"github.com/sandevgo/haven/internal/core"
)

func loadMetadata(ctx context.Context, store core.PersistentStore) (core.ExtractionMetadata, error) {
	meta, err := loadDocument[core.ExtractionMetadata](ctx, store, core.KeyExtractionMetadata)
	if err != nil {
		return core.ExtractionMetadata{}, err
	}
	meta.MessageCount = max(meta.MessageCount, 0)
	return meta, nil
}

func saveMetadata(ctx context.Context, store core.PersistentStore, meta core.ExtractionMetadata) error {
	return saveDocument(ctx, store, core.KeyExtractionMetadata, meta)
}
