package weathercache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yanqian/stylecast/internal/domain/weather"
)

const (
	defaultSize = 1024
	defaultTTL  = 2 * time.Minute
)

// LRU is a bounded, TTL-expiring weather report cache safe for concurrent use.
type LRU struct {
	entries *expirable.LRU[string, weather.Report]
}

// New builds a cache holding at most size reports for ttl each.
func New(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRU{entries: expirable.NewLRU[string, weather.Report](size, nil, ttl)}
}

func (c *LRU) Get(key string) (weather.Report, bool) {
	return c.entries.Get(key)
}

// Put stores report; the TTL counts from this call.
func (c *LRU) Put(key string, report weather.Report) {
	c.entries.Add(key, report)
}

func (c *LRU) Len() int {
	return c.entries.Len()
}

var _ weather.Cache = (*LRU)(nil)
