package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/chamberhub/bizportal/internal/config"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// CacheStats counts cache lookups.
type CacheStats struct {
	Hits   int64
	Misses int64
}

type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *counters) stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := max(int(rps), 1)
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// CachedTextGenerator memoises completions and throttles upstream calls.
// Concurrent identical requests share one upstream call.
type CachedTextGenerator struct {
	inner   TextGenerator
	cache   *expirable.LRU[string, ChatCompletionResponse]
	group   singleflight.Group
	limiter *rate.Limiter
	counters
}

// NewCachedTextGenerator wraps inner. A disabled cache config still applies
// the rate limit.
func NewCachedTextGenerator(inner TextGenerator, cfg config.AICacheConfig, rps float64) *CachedTextGenerator {
	c := &CachedTextGenerator{inner: inner, limiter: newLimiter(rps)}
	if cfg.Enabled() {
		c.cache = expirable.NewLRU[string, ChatCompletionResponse](cfg.Size(), nil, cfg.TTL())
	}
	return c
}

// ChatCompletion implements TextGenerator.
func (c *CachedTextGenerator) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	if c.inner == nil {
		return ChatCompletionResponse{}, ErrUnsupportedOperation
	}

	key := chatKey(req)
	if c.cache != nil {
		if resp, ok := c.cache.Get(key); ok {
			c.hits.Add(1)
			return resp, nil
		}
	}
	c.misses.Add(1)

	v, err := shared(ctx, &c.group, key, func(ctx context.Context) (any, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return ChatCompletionResponse{}, err
		}
		resp, err := c.inner.ChatCompletion(ctx, req)
		if err != nil {
			return ChatCompletionResponse{}, err
		}
		if c.cache != nil {
			c.cache.Add(key, resp)
		}
		return resp, nil
	})
	if err != nil {
		return ChatCompletionResponse{}, err
	}
	return v.(ChatCompletionResponse), nil
}

// Stats returns cache hit and miss counts.
func (c *CachedTextGenerator) Stats() CacheStats { return c.counters.stats() }

// CachedEmbedder memoises vectors per text and throttles upstream calls.
type CachedEmbedder struct {
	inner   Embedder
	cache   *expirable.LRU[string, []float64]
	group   singleflight.Group
	limiter *rate.Limiter
	counters
}

// NewCachedEmbedder wraps inner.
func NewCachedEmbedder(inner Embedder, cfg config.AICacheConfig, rps float64) *CachedEmbedder {
	c := &CachedEmbedder{inner: inner, limiter: newLimiter(rps)}
	if cfg.Enabled() {
		c.cache = expirable.NewLRU[string, []float64](cfg.Size(), nil, cfg.TTL())
	}
	return c
}

// Embed implements Embedder. Only texts missing from the cache are sent
// upstream, each at most once per call.
func (c *CachedEmbedder) Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error) {
	if c.inner == nil {
		return EmbeddingResponse{}, ErrUnsupportedOperation
	}

	texts := req.Texts()
	vectors := make([][]float64, len(texts))
	var missing []string
	seen := make(map[string]bool)
	for i, text := range texts {
		if c.cache != nil {
			if vec, ok := c.cache.Get(textKey(text)); ok {
				c.hits.Add(1)
				vectors[i] = vec
				continue
			}
		}
		c.misses.Add(1)
		if !seen[text] {
			seen[text] = true
			missing = append(missing, text)
		}
	}
	if len(missing) == 0 {
		return NewEmbeddingResponse(vectors, NewUsage(0, 0, 0)), nil
	}

	v, err := shared(ctx, &c.group, batchKey(missing), func(ctx context.Context) (any, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return EmbeddingResponse{}, err
		}
		return c.inner.Embed(ctx, NewEmbeddingRequest(missing))
	})
	if err != nil {
		return EmbeddingResponse{}, err
	}
	resp := v.(EmbeddingResponse)
	fresh := resp.Embeddings()
	if len(fresh) != len(missing) {
		return EmbeddingResponse{}, fmt.Errorf("%w: got %d vectors for %d texts", errEmbeddingCountMismatch, len(fresh), len(missing))
	}

	byText := make(map[string][]float64, len(missing))
	for i, text := range missing {
		byText[text] = fresh[i]
		if c.cache != nil {
			c.cache.Add(textKey(text), fresh[i])
		}
	}
	for i, text := range texts {
		if vectors[i] == nil {
			vectors[i] = byText[text]
		}
	}
	return NewEmbeddingResponse(vectors, resp.Usage()), nil
}

// Stats returns cache hit and miss counts.
func (c *CachedEmbedder) Stats() CacheStats { return c.counters.stats() }

// shared runs fn once per key for all concurrent callers. The call does not
// stop when the caller that started it is cancelled; each caller stops
// waiting on its own context instead. The starter's deadline still bounds
// the call.
func shared(ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := group.DoChan(key, func() (any, error) {
		callCtx, cancel := detach(ctx)
		defer cancel()
		return fn(callCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.Val, r.Err
	}
}

func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(detached, deadline)
	}
	return context.WithCancel(detached)
}

func chatKey(req ChatCompletionRequest) string {
	h := sha256.New()
	for _, m := range req.Messages() {
		h.Write([]byte(m.Role()))
		h.Write([]byte{0})
		h.Write([]byte(m.Content()))
		h.Write([]byte{0})
	}
	h.Write([]byte(strconv.Itoa(req.MaxTokens())))
	h.Write([]byte(strconv.FormatFloat(req.Temperature(), 'g', -1, 64)))
	h.Write([]byte(strconv.FormatBool(req.JSONOutput())))
	return hex.EncodeToString(h.Sum(nil))
}

func textKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func batchKey(texts []string) string {
	h := sha256.New()
	for _, t := range texts {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

var (
	_ TextGenerator = (*CachedTextGenerator)(nil)
	_ Embedder      = (*CachedEmbedder)(nil)
)
