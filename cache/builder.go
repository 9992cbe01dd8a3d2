package cache

import (
	"time"

	"github.com/pkg/errors"
)

const (
	evictionLRU  = "lru"
	evictionNone = ""
)

//Builder assembles a namespace cache from its declaration attributes
type Builder struct {
	id              string
	eviction        string
	size            int
	flushIntervalMs int
	readOnly        bool
	properties      map[string]string
}

//NewBuilder creates a cache builder for given namespace
func NewBuilder(id string) *Builder {
	return &Builder{id: id}
}

func (b *Builder) Eviction(eviction string) *Builder {
	b.eviction = eviction
	return b
}

func (b *Builder) Size(size int) *Builder {
	b.size = size
	return b
}

func (b *Builder) FlushIntervalMs(interval int) *Builder {
	b.flushIntervalMs = interval
	return b
}

func (b *Builder) ReadOnly(readOnly bool) *Builder {
	b.readOnly = readOnly
	return b
}

func (b *Builder) Properties(properties map[string]string) *Builder {
	b.properties = properties
	return b
}

//Build assembles the cache, wrapping the base store with declared decorators
func (b *Builder) Build() (Cache, error) {
	if b.id == "" {
		return nil, errors.New("cache namespace was empty")
	}
	result := New(b.id)
	switch b.eviction {
	case evictionLRU:
		result = NewLRU(result, b.size)
	case evictionNone:
		if b.size > 0 {
			result = NewLRU(result, b.size)
		}
	default:
		return nil, errors.Errorf("unsupported cache eviction: '%v', supported: %v", b.eviction, evictionLRU)
	}
	if b.flushIntervalMs > 0 {
		result = NewFlushing(result, time.Duration(b.flushIntervalMs)*time.Millisecond)
	}
	return result, nil
}
