package cache

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sweepInterval = 3 * time.Second

// LRUCache evicts the least recently used entry once maxSize is reached.
// Expired entries are dropped lazily on read and by a background sweeper.
type LRUCache struct {
	cacheData  map[string]*list.Element
	list       *list.List
	maxSize    int
	defaultTtl time.Duration
	now        func() time.Time
	mu         sync.Mutex
	stopChan   chan struct{}
	stopOnce   sync.Once
}

type lruItem struct {
	key  string
	data CacheData
}

// NewLRUCache creates an LRU cache and starts its sweeper.
func NewLRUCache(maxSize, defaultTtlSeconds int) *LRUCache {
	return newLRUCache(maxSize, defaultTtlSeconds, time.Now, sweepInterval)
}

func newLRUCache(maxSize, defaultTtlSeconds int, now func() time.Time, interval time.Duration) *LRUCache {
	if maxSize < 1 {
		maxSize = 1
	}
	cache := &LRUCache{
		cacheData:  make(map[string]*list.Element),
		list:       list.New(),
		maxSize:    maxSize,
		defaultTtl: time.Duration(defaultTtlSeconds) * time.Second,
		now:        now,
		stopChan:   make(chan struct{}),
	}

	go cache.sweep(interval)

	return cache
}

func (c *LRUCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.removeExpired(); n > 0 {
				zap.L().Debug("Cleaned up expired LRU cache entries", zap.Int("count", n))
			}
		case <-c.stopChan:
			return
		}
	}
}

func (c *LRUCache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for e := c.list.Front(); e != nil; {
		next := e.Next()
		item := e.Value.(*lruItem)
		if now.After(item.data.Timeout) {
			c.list.Remove(e)
			delete(c.cacheData, item.key)
			removed++
		}
		e = next
	}
	return removed
}

func (c *LRUCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *LRUCache) Set(key string, value any) {
	c.set(key, value, c.defaultTtl)
}

func (c *LRUCache) SetWithTTL(key string, value any, ttlSeconds int) {
	c.set(key, value, time.Duration(ttlSeconds)*time.Second)
}

func (c *LRUCache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(ttl)

	if element, exists := c.cacheData[key]; exists {
		item := element.Value.(*lruItem)
		item.data = CacheData{Value: value, Timeout: expires}
		c.list.MoveToBack(element)
		return
	}

	if c.list.Len() >= c.maxSize {
		if oldest := c.list.Front(); oldest != nil {
			oldestItem := oldest.Value.(*lruItem)
			c.list.Remove(oldest)
			delete(c.cacheData, oldestItem.key)
			zap.L().Debug("LRU cache evicted least recently used item", zap.String("key", oldestItem.key))
		}
	}

	c.cacheData[key] = c.list.PushBack(&lruItem{
		key:  key,
		data: CacheData{Value: value, Timeout: expires},
	})
}

func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.cacheData[key]
	if !exists {
		return nil, false
	}

	item := element.Value.(*lruItem)
	if c.now().After(item.data.Timeout) {
		c.list.Remove(element)
		delete(c.cacheData, key)
		return nil, false
	}

	c.list.MoveToBack(element)
	return item.data.Value, true
}

func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.cacheData[key]; exists {
		c.list.Remove(element)
		delete(c.cacheData, key)
	}
}

func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

func (c *LRUCache) MaxSize() int {
	return c.maxSize
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.list.Init()
	c.cacheData = make(map[string]*list.Element)
}
