// Package serialize memoizes calls into an external serialize module:
// the core only delegates via this helper and never defines the wire
// format itself.
package serialize

import (
	"container/list"
	"sync"

	"github.com/google/uuid"

	"github.com/wudi/heycore/values"
)

// Serializer is the external module's contract: render v to its
// serialized byte string. How it walks arrays/objects and encodes each
// tag is entirely that module's concern.
type Serializer interface {
	Serialize(v *values.Value) ([]byte, error)
}

// cacheEntry pairs a memoized result with the LRU list element that
// orders it.
type cacheEntry struct {
	key    uuid.UUID
	result []byte
}

// Cache memoizes Serializer results keyed by an aggregate's uniqueness
// token: re-serializing the same unique array/object repeatedly (e.g.
// across retries of a failed write) is common enough to be worth an LRU.
// Scalars are never memoized: they're cheap to re-render and carry no
// meaningful token.
type Cache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*list.Element
	lru     *list.List
	maxSize int
}

const defaultCacheMaxSize = 256

// NewCache builds an empty memoization cache with the default capacity.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[uuid.UUID]*list.Element),
		lru:     list.New(),
		maxSize: defaultCacheMaxSize,
	}
}

func (c *Cache) get(key uuid.UUID) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(el)
	return el.Value.(*cacheEntry).result, true
}

func (c *Cache) put(key uuid.UUID, result []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).result = result
		c.lru.MoveToFront(el)
		return
	}
	el := c.lru.PushFront(&cacheEntry{key: key, result: result})
	c.entries[key] = el
	for c.lru.Len() > c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Serialize implements serialize(v): for a unique array/object, it
// checks the memoization cache by token before asking the Serializer to
// do the real work, then stores the result under that token. Scalars
// always go straight to the Serializer.
func Serialize(serializer Serializer, cache *Cache, v *values.Value) ([]byte, error) {
	v = values.Deref(v)
	if cache != nil && (v.IsArray() || v.IsObject()) {
		token := v.Token()
		if cached, ok := cache.get(token); ok {
			return cached, nil
		}
		result, err := serializer.Serialize(v)
		if err != nil {
			return nil, err
		}
		cache.put(token, result)
		return result, nil
	}
	return serializer.Serialize(v)
}
