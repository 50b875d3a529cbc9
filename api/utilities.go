package api

import (
	"context"
	"time"

	"github.com/jrsteele09/go-ukci-client/debounce"
	"github.com/jrsteele09/go-ukci-client/queue"
	"github.com/jrsteele09/go-ukci-client/result"
	"github.com/rs/zerolog/log"
)

// QueueRequest runs op under the client's concurrency ceiling. Operations
// start in the order they were queued.
func QueueRequest[T any](c *Client, ctx context.Context, op func(ctx context.Context) result.Result[T]) *queue.TypedFuture[result.Result[T]] {
	var wrapped func(ctx context.Context) (result.Result[T], error)
	if op != nil {
		wrapped = func(ctx context.Context) (result.Result[T], error) {
			return op(ctx), nil
		}
	}
	return queue.Go(c.queue, ctx, wrapped)
}

// Await waits for a queued request. A panic inside the request, or ctx ending
// first, becomes a failed Result.
func Await[T any](ctx context.Context, f *queue.TypedFuture[result.Result[T]]) result.Result[T] {
	r, err := f.Wait(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Queued request did not complete")
		return result.Fail[T](0, result.GenericFailure)
	}
	return r
}

// Debounce returns a callable that runs fn once calls stop arriving for wait.
func Debounce[A any](fn func(A), wait time.Duration) func(A) {
	return debounce.New(fn, wait)
}

// GetOrFetch serves key from the response cache while it is live, otherwise
// calls fetch. Only successful Results are cached.
func GetOrFetch[T any](c *Client, ctx context.Context, key string, fetch func(ctx context.Context) result.Result[T], ttl time.Duration) result.Result[T] {
	v, err := c.responses.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		r := fetch(ctx)
		return r, r.Err()
	}, ttl)
	if r, ok := v.(result.Result[T]); ok {
		return r
	}
	if ctx.Err() != nil {
		return result.FromError[T](err)
	}
	// Same key cached under another payload type.
	log.Warn().Str("key", key).Msg("Cached response has unexpected type, fetching directly")
	return fetch(ctx)
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.responses.Clear()
}
