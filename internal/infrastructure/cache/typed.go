package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// GetOrLoad returns the JSON value cached at key, or calls load and caches its
// result for ttl. hit reports whether the value came from the cache. A nil
// cache always loads. Cache read and write failures fall through to load.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (value T, hit bool, err error) {
	if c == nil {
		value, err = load(ctx)
		return value, false, err
	}

	if raw, ok, gerr := c.Get(ctx, key); gerr == nil && ok {
		if uerr := json.Unmarshal(raw, &value); uerr == nil {
			return value, true, nil
		}
	}

	value, err = load(ctx)
	if err != nil {
		return value, false, err
	}
	raw, merr := json.Marshal(value)
	if merr != nil {
		return value, false, errors.Wrapf(merr, "encode cache entry %s", key)
	}
	_ = c.Set(ctx, key, raw, ttl)
	return value, false, nil
}
