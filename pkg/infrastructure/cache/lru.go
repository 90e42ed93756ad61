package cache

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const DefaultSize = 1024

// LRU is a bounded in-process cache. Entries have no TTL and leave only when
// deleted or evicted.
type LRU struct {
	entries *lru.Cache
}

func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "create lru cache")
	}
	return &LRU{entries: entries}, nil
}

func (c *LRU) Has(key string) bool {
	return c.entries.Contains(key)
}

func (c *LRU) Get(key string) (string, bool) {
	value, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func (c *LRU) Set(key, value string) error {
	c.entries.Add(key, value)
	return nil
}

func (c *LRU) Del(keys ...string) error {
	for _, key := range keys {
		c.entries.Remove(key)
	}
	return nil
}

func (c *LRU) Len() int {
	return c.entries.Len()
}
