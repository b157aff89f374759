package serialize

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wudi/heycore/values"
)

func fixedUUID(n byte) uuid.UUID {
	var u uuid.UUID
	u[0] = n
	return u
}

type countingSerializer struct {
	calls int32
}

func (s *countingSerializer) Serialize(v *values.Value) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	return []byte(fmt.Sprintf("s:%p", v)), nil
}

func TestSerializeMemoizesArrayByToken(t *testing.T) {
	s := &countingSerializer{}
	cache := NewCache()
	arr := values.NewArray()

	_, err := Serialize(s, cache, arr)
	assert.NoError(t, err)
	_, err = Serialize(s, cache, arr)
	assert.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&s.calls), "a repeated Serialize on the same unique array must hit the cache")
}

func TestSerializeScalarsNeverMemoized(t *testing.T) {
	s := &countingSerializer{}
	cache := NewCache()
	v := values.NewInt(42)

	_, err := Serialize(s, cache, v)
	assert.NoError(t, err)
	_, err = Serialize(s, cache, v)
	assert.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&s.calls), "scalars always go straight to the serializer")
}

func TestSerializeWithoutCache(t *testing.T) {
	s := &countingSerializer{}
	arr := values.NewArray()
	_, err := Serialize(s, nil, arr)
	assert.NoError(t, err)
	_, err = Serialize(s, nil, arr)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&s.calls))
}

func TestCacheEvictsOldestBeyondMaxSize(t *testing.T) {
	cache := NewCache()
	cache.maxSize = 2

	cache.put(fixedUUID(1), []byte("a"))
	cache.put(fixedUUID(2), []byte("b"))
	cache.put(fixedUUID(3), []byte("c"))

	_, ok := cache.get(fixedUUID(1))
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = cache.get(fixedUUID(2))
	assert.True(t, ok)
	_, ok = cache.get(fixedUUID(3))
	assert.True(t, ok)
}

func TestCacheGetMovesToFront(t *testing.T) {
	cache := NewCache()
	cache.maxSize = 2

	cache.put(fixedUUID(1), []byte("a"))
	cache.put(fixedUUID(2), []byte("b"))
	cache.get(fixedUUID(1)) // touch 1, making 2 the oldest
	cache.put(fixedUUID(3), []byte("c"))

	_, ok := cache.get(fixedUUID(2))
	assert.False(t, ok, "2 should have been evicted since 1 was refreshed")
	_, ok = cache.get(fixedUUID(1))
	assert.True(t, ok)
}
