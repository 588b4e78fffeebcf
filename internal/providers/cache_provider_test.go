package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sid/internal/structures"
)

type cacheTestLogger struct{}

func (l *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (l *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (l *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (l *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, sizeMB int, interval time.Duration) *structures.Config {
	conf := &structures.Config{}
	conf.Cache.Enabled = enabled
	conf.Cache.Size = sizeMB
	conf.Importer.Interval = interval
	return conf
}

func TestNewCacheProvider_Disabled(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(false, 16, 0), &cacheTestLogger{})

	cache.Set("key", []byte("value"))
	_, ok := cache.Get("key")
	assert.False(t, ok, "a disabled cache never stores anything")
}

func TestNewCacheProvider_ZeroSize(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 0, 0), &cacheTestLogger{})

	cache.Set("key", []byte("value"))
	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestCacheProvider_SetGet(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	cache.Set("summary", []byte(`[{"metric":"Inserted","value":"3"}]`))

	val, ok := cache.Get("summary")
	require.True(t, ok)
	assert.Equal(t, []byte(`[{"metric":"Inserted","value":"3"}]`), val)
}

func TestCacheProvider_Miss(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	_, ok := cache.Get("missing")
	assert.False(t, ok)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	cache.Set("data", []byte("old"))
	cache.Set("data", []byte("new"))

	val, ok := cache.Get("data")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), val)
}

func TestCacheProvider_Clear(t *testing.T) {
	cache := NewCacheProvider(cacheConfig(true, 1, 0), &cacheTestLogger{})

	cache.Set("data", []byte("value"))
	cache.Clear()

	_, ok := cache.Get("data")
	assert.False(t, ok)
}

func TestCacheProvider_TTLFollowsImportInterval(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping TTL expiry in short mode")
	}

	// Interval 1s gives a 2s TTL.
	cache := NewCacheProvider(cacheConfig(true, 1, time.Second), &cacheTestLogger{})

	cache.Set("data", []byte("value"))
	_, ok := cache.Get("data")
	require.True(t, ok)

	time.Sleep(2100 * time.Millisecond)

	_, ok = cache.Get("data")
	assert.False(t, ok, "entries expire after the TTL")
}
