package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowThreshold(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	now := time.Now()

	assert.True(t, rl.Allow("ip:1", now))
	assert.True(t, rl.Allow("ip:1", now))
	assert.True(t, rl.Allow("ip:1", now))
	assert.False(t, rl.Allow("ip:1", now))

	// Reddedilen istek sayaca yazılmaz
	assert.False(t, rl.Allow("ip:1", now))
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Now()

	assert.True(t, rl.Allow("user:1", now))
	assert.False(t, rl.Allow("user:1", now))
	assert.True(t, rl.Allow("user:2", now))
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	start := time.Now()

	assert.True(t, rl.Allow("k", start))
	assert.True(t, rl.Allow("k", start.Add(30*time.Second)))
	assert.False(t, rl.Allow("k", start.Add(45*time.Second)))

	// İlk istek pencereden çıkınca yer açılır
	assert.True(t, rl.Allow("k", start.Add(61*time.Second)))
	assert.False(t, rl.Allow("k", start.Add(62*time.Second)))
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(100, time.Minute)
	now := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared", now) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}
