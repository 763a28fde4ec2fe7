package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load decodes the JSON value under key. Absent, unreadable or malformed
// values yield def; the failure is logged, never returned.
func Load[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		reason := "absent"
		if !errors.Is(err, ErrNotFound) {
			reason = "read failed"
			logging.Warn("store read failed", zap.String("key", key), zap.Error(err))
		}
		events.Store.Fallback(key, reason)
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.Warn("store value malformed", zap.String("key", key), zap.Error(err))
		events.Store.Fallback(key, "malformed")
		return def
	}
	return v
}

// Save encodes v as JSON under key.
func Save(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
