package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type bucket struct {
	mu         sync.Mutex
	tokens     int
	lastRefill time.Time
}

// Limiter is a per-client token bucket. Audio uploads are expensive to
// process, so the training routes typically get a much tighter budget
// than the chat routes.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
	logger     *zap.Logger
}

type Config struct {
	MaxRequestsPerMinute int
	Logger               *zap.Logger
}

func New(cfg Config) *Limiter {
	if cfg.MaxRequestsPerMinute == 0 {
		cfg.MaxRequestsPerMinute = 60
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	l := &Limiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  cfg.MaxRequestsPerMinute,
		refillRate: time.Minute,
		logger:     cfg.Logger,
	}

	go l.cleanupLoop()

	return l
}

// Middleware rejects requests once a client's bucket is empty.
func (l *Limiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			l.logger.Warn("Rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please slow down",
			})
		}
		return c.Next()
	}
}

func (l *Limiter) allow(key string) bool {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()

	if !ok {
		l.mu.Lock()
		b, ok = l.buckets[key]
		if !ok {
			b = &bucket{tokens: l.maxTokens, lastRefill: time.Now()}
			l.buckets[key] = b
		}
		l.mu.Unlock()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := time.Since(b.lastRefill); elapsed >= l.refillRate {
		b.tokens = l.maxTokens
		b.lastRefill = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// cleanupLoop drops buckets idle for several refill windows.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-3 * l.refillRate)

		l.mu.Lock()
		for key, b := range l.buckets {
			b.mu.Lock()
			stale := b.lastRefill.Before(cutoff)
			b.mu.Unlock()
			if stale {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}
