package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGetAndExpiry(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte("v"), 50*time.Millisecond)
	assert.NotEmpty(t, etag)

	data, gotTag, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), data)
	assert.Equal(t, etag, gotTag)

	time.Sleep(60 * time.Millisecond)
	_, _, ok = c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag, "a disabled cache still computes etags")
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(true)
	c.Set(Key("t1", "roster"), []byte("a"), time.Minute)
	c.Set(Key("t1", "stats"), []byte("b"), time.Minute)
	c.Set(Key("t2", "roster"), []byte("c"), time.Minute)

	removed := c.InvalidatePrefix(TeamPrefix("t1"))
	assert.Equal(t, 2, removed)

	_, _, ok := c.Get(Key("t1", "roster"))
	assert.False(t, ok)
	_, _, ok = c.Get(Key("t2", "roster"))
	assert.True(t, ok)
}

func TestETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))

	// Same bytes, same tag; different bytes, different tag.
	assert.Equal(t, etag, ComputeETag([]byte("payload")))
	assert.NotEqual(t, etag, ComputeETag([]byte("payload2")))
}
