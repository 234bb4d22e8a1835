package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Typed wrappers over the raw document operations, so callers work with
// entity structs instead of json.RawMessage.

// Get decodes the record for key into T. Absence returns (nil, nil).
func Get[T any](ctx context.Context, e *Engine, collection, key string) (*T, error) {
	doc, err := e.Get(ctx, collection, key)
	if err != nil || doc == nil {
		return nil, err
	}
	var rec T
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, key, err)
	}
	return &rec, nil
}

// GetAll decodes every record in the collection.
func GetAll[T any](ctx context.Context, e *Engine, collection string) ([]T, error) {
	docs, err := e.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](collection, docs)
}

// GetAllByIndex decodes every record whose index field equals value.
func GetAllByIndex[T any](ctx context.Context, e *Engine, collection, index string, value any) ([]T, error) {
	docs, err := e.GetAllByIndex(ctx, collection, index, value)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](collection, docs)
}

func decodeAll[T any](collection string, docs []json.RawMessage) ([]T, error) {
	recs := make([]T, 0, len(docs))
	for _, doc := range docs {
		var rec T
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record in %s: %w", collection, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
