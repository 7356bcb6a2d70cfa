package lookup

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"lookout/internal/domain"
)

// CachedClient remembers successful lookups for a while. Retyping a query
// that was seen recently does not spend rate-limit budget.
type CachedClient struct {
	next  Client
	cache *expirable.LRU[string, []domain.User]
}

// NewCachedClient wraps next with an expiring LRU of the given size
func NewCachedClient(next Client, size int, ttl time.Duration) *CachedClient {
	return &CachedClient{
		next:  next,
		cache: expirable.NewLRU[string, []domain.User](size, nil, ttl),
	}
}

// Lookup serves from the cache or delegates, caching only successes
func (c *CachedClient) Lookup(ctx context.Context, query string) ([]domain.User, error) {
	key := cacheKey(query)

	if users, ok := c.cache.Get(key); ok {
		log.Debug("lookup: cache hit", "query", query, "results", len(users))
		return cloneUsers(users), nil
	}

	users, err := c.next.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}
	if ctx.Err() == nil {
		c.cache.Add(key, cloneUsers(users))
	}
	return users, nil
}

// Len returns the number of cached queries
func (c *CachedClient) Len() int {
	return c.cache.Len()
}

// Purge drops every cached entry
func (c *CachedClient) Purge() {
	c.cache.Purge()
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func cloneUsers(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	copy(out, users)
	return out
}
