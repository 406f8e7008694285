package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/sarensabesk/HireAI/internal/adapter/observability"
	"github.com/sarensabesk/HireAI/internal/domain"
)

// memoryCacheClient wraps an AIClient and caches generated responses by
// prompt hash. Eviction is FIFO; entries also expire after ttl. Safe for
// concurrent use.
type memoryCacheClient struct {
	base     domain.AIClient
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu  sync.RWMutex
	m   map[string]cacheEntry
	ord []string
}

type cacheEntry struct {
	value   string
	expires time.Time
}

// NewMemoryCache wraps base with a response cache of the given capacity.
// If capacity <= 0, base is returned unmodified. A non-positive ttl means
// entries never expire.
func NewMemoryCache(base domain.AIClient, capacity int, ttl time.Duration) domain.AIClient {
	if capacity <= 0 || base == nil {
		return base
	}
	return &memoryCacheClient{
		base:     base,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		m:        make(map[string]cacheEntry),
		ord:      make([]string, 0, capacity),
	}
}

func (c *memoryCacheClient) Generate(ctx domain.Context, prompt string) (string, error) {
	k := keyFor(prompt)
	c.mu.RLock()
	e, ok := c.m[k]
	c.mu.RUnlock()
	if ok && (c.ttl <= 0 || c.now().Before(e.expires)) {
		observability.CacheHit()
		return e.value, nil
	}
	observability.CacheMiss()

	out, err := c.base.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.put(k, out)
	return out, nil
}

func (c *memoryCacheClient) put(k, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[k]; exists {
		c.m[k] = cacheEntry{value: value, expires: c.now().Add(c.ttl)}
		return
	}
	if len(c.ord) >= c.capacity {
		old := c.ord[0]
		c.ord = c.ord[1:]
		delete(c.m, old)
	}
	c.m[k] = cacheEntry{value: value, expires: c.now().Add(c.ttl)}
	c.ord = append(c.ord, k)
}

func keyFor(prompt string) string {
	h := sha256.Sum256([]byte(strings.TrimSpace(prompt)))
	return hex.EncodeToString(h[:])
}
