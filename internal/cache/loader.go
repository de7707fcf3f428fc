package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Loader memoizes an expensive parse of a data source behind a Cache. Values
// are stored as JSON.
type Loader[T any] struct {
	Cache  Cache
	Source string
	Parse  func(content []byte) (T, error)
}

// Load returns the parsed value for content and whether it came from the
// cache. Cache failures are logged and fall through to a fresh parse; parse
// failures are returned and nothing is stored.
func (l Loader[T]) Load(ctx context.Context, content []byte) (T, bool, error) {
	var zero T
	key := Key(l.Source, content)

	if data, ok, err := l.Cache.Get(ctx, key); err != nil {
		slog.Warn("[Cache] lookup failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	} else if ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			slog.Debug("[Cache] hit", slog.String("key", key))
			return v, true, nil
		}
		slog.Warn("[Cache] dropping undecodable entry", slog.String("key", key))
		if err := l.Cache.Invalidate(ctx, key); err != nil {
			slog.Warn("[Cache] invalidate failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	v, err := l.Parse(content)
	if err != nil {
		return zero, false, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return zero, false, fmt.Errorf("[Cache] failed to encode %s: %w", l.Source, err)
	}
	if err := l.Cache.Set(ctx, key, data); err != nil {
		slog.Warn("[Cache] store failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return v, false, nil
}

// Invalidate forgets the entry for content.
func (l Loader[T]) Invalidate(ctx context.Context, content []byte) error {
	return l.Cache.Invalidate(ctx, Key(l.Source, content))
}
