package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"tokodigital_backend/pkg/utils/jwt"
)

// RateLimiter anahtar başına kayan pencere sayacı. Fiber handler'ları
// farklı goroutine'lerde koştuğu için map mutex ile korunur.
// Process başına bir kez kurulur, restart'ta sıfırlanır.
type RateLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow anahtarın penceresini budar ve limitin altındaysa isteği sayar
func (rl *RateLimiter) Allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)
	recent := rl.requests[key][:0]
	for _, ts := range rl.requests[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.maxRequests {
		rl.requests[key] = recent
		return false
	}

	rl.requests[key] = append(recent, now)
	return true
}

// Handler istekleri kimliği varsa kullanıcı ID'si, yoksa IP üzerinden
// sınırlar. Token burada sadece anahtar için çözülür, yetki kontrolü değildir.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if token := extractToken(c); token != "" {
			if claims, err := jwt.ValidateToken(token); err == nil {
				key = "user:" + strconv.FormatUint(uint64(claims.UserID), 10)
			}
		}

		if !rl.Allow(key, time.Now()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
				"code":  CodeRateLimited,
			})
		}

		return c.Next()
	}
}
