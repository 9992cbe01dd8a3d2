package cache

import "sync"

type (
	//Cache represents a namespace scoped statement result cache
	Cache interface {
		Id() string
		Put(key string, value interface{})
		Get(key string) (interface{}, bool)
		Remove(key string)
		Clear()
		Size() int
	}

	memCache struct {
		id     string
		mux    sync.RWMutex
		values map[string]interface{}
	}
)

//New creates a default in memory cache
func New(id string) Cache {
	return &memCache{id: id, values: map[string]interface{}{}}
}

func (c *memCache) Id() string {
	return c.id
}

func (c *memCache) Put(key string, value interface{}) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.values[key] = value
}

func (c *memCache) Get(key string) (interface{}, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

func (c *memCache) Remove(key string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	delete(c.values, key)
}

func (c *memCache) Clear() {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.values = map[string]interface{}{}
}

func (c *memCache) Size() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.values)
}
