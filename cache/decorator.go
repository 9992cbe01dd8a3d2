package cache

import (
	"container/list"
	"sync"
	"time"
)

type (
	lruCache struct {
		Cache
		size  int
		mux   sync.Mutex
		order *list.List
		keys  map[string]*list.Element
	}

	flushCache struct {
		Cache
		interval  time.Duration
		mux       sync.Mutex
		lastFlush time.Time
	}
)

//NewLRU decorates a cache with least recently used eviction
func NewLRU(delegate Cache, size int) Cache {
	if size <= 0 {
		size = 1024
	}
	return &lruCache{Cache: delegate, size: size, order: list.New(), keys: map[string]*list.Element{}}
}

func (c *lruCache) Put(key string, value interface{}) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if element, ok := c.keys[key]; ok {
		c.order.MoveToFront(element)
	} else {
		c.keys[key] = c.order.PushFront(key)
	}
	c.Cache.Put(key, value)
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		oldestKey := oldest.Value.(string)
		delete(c.keys, oldestKey)
		c.Cache.Remove(oldestKey)
	}
}

func (c *lruCache) Get(key string) (interface{}, bool) {
	c.mux.Lock()
	if element, ok := c.keys[key]; ok {
		c.order.MoveToFront(element)
	}
	c.mux.Unlock()
	return c.Cache.Get(key)
}

func (c *lruCache) Clear() {
	c.mux.Lock()
	c.order = list.New()
	c.keys = map[string]*list.Element{}
	c.mux.Unlock()
	c.Cache.Clear()
}

//NewFlushing decorates a cache with interval based invalidation, checked on access
func NewFlushing(delegate Cache, interval time.Duration) Cache {
	return &flushCache{Cache: delegate, interval: interval, lastFlush: time.Now()}
}

func (c *flushCache) flushIfExpired() {
	c.mux.Lock()
	defer c.mux.Unlock()
	if time.Since(c.lastFlush) < c.interval {
		return
	}
	c.lastFlush = time.Now()
	c.Cache.Clear()
}

func (c *flushCache) Get(key string) (interface{}, bool) {
	c.flushIfExpired()
	return c.Cache.Get(key)
}

func (c *flushCache) Put(key string, value interface{}) {
	c.flushIfExpired()
	c.Cache.Put(key, value)
}
