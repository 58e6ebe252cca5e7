package backend

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"tradedesk/internal/domain"
)

// CachingBackend serves repeated identical queries from memory for a short
// TTL. Only successful results are cached.
type CachingBackend struct {
	inner  domain.Backend
	cache  *cache.Cache
	logger *slog.Logger
}

// NewCachingBackend wraps inner with a ttl response cache.
func NewCachingBackend(inner domain.Backend, ttl time.Duration, logger *slog.Logger) *CachingBackend {
	return &CachingBackend{
		inner:  inner,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Query implements domain.Backend.
func (b *CachingBackend) Query(ctx context.Context, resource domain.Resource, params map[string]string) (any, error) {
	key := cacheKey(resource, params)
	if v, ok := b.cache.Get(key); ok {
		b.logger.Debug("backend cache hit", "resource", string(resource))
		return v, nil
	}
	v, err := b.inner.Query(ctx, resource, params)
	if err != nil {
		return nil, err
	}
	b.cache.SetDefault(key, v)
	return v, nil
}

// Flush drops every cached response.
func (b *CachingBackend) Flush() { b.cache.Flush() }

func cacheKey(resource domain.Resource, params map[string]string) string {
	if len(params) == 0 {
		return string(resource)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(string(resource))
	for _, k := range keys {
		sb.WriteString("|" + k + "=" + params[k])
	}
	return sb.String()
}
