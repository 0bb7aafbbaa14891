package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/foodgram/api-gateway/config"
	"github.com/tair/foodgram/pkg/logger"
)

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

const (
	breakerFailureThreshold = 5
	breakerOpenDuration     = 30 * time.Second
	breakerSuccessThreshold = 3
)

// Breaker tracks the health of one upstream. After enough consecutive
// failures it opens and sheds traffic for a cooldown, then lets probe
// requests through until the upstream proves healthy again.
type Breaker struct {
	mu        sync.Mutex
	state     breakerState
	failures  int
	successes int
	openedAt  time.Time
}

// Allow reports whether a request may go through right now.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if time.Since(b.openedAt) >= breakerOpenDuration {
			b.state = stateHalfOpen
			b.successes = 0
			return true
		}
		return false
	default:
		return true
	}
}

// Record feeds the outcome of a forwarded request back into the breaker.
func (b *Breaker) Record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if failed {
		b.successes = 0
		b.failures++
		if b.state == stateHalfOpen || b.failures >= breakerFailureThreshold {
			b.state = stateOpen
			b.openedAt = time.Now()
			b.failures = 0
		}
		return
	}

	switch b.state {
	case stateHalfOpen:
		b.successes++
		if b.successes >= breakerSuccessThreshold {
			b.state = stateClosed
			b.failures = 0
		}
	case stateClosed:
		b.failures = 0
	}
}

// BreakerSet keeps one breaker per upstream service.
type BreakerSet struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
}

func NewBreakerSet() *BreakerSet {
	return &BreakerSet{breakers: make(map[string]*Breaker)}
}

func (s *BreakerSet) For(upstream string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[upstream]
	if !ok {
		b = &Breaker{}
		s.breakers[upstream] = b
	}
	return b
}

// Handler short-circuits requests to upstreams whose breaker is open and
// records the result of every forwarded request.
func (s *BreakerSet) Handler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		upstream := cfg.UpstreamFor(c.Path())
		if upstream == "" {
			return c.Next()
		}

		breaker := s.For(upstream)
		if !breaker.Allow() {
			logger.Warn(c.UserContext()).
				Str("upstream", upstream).
				Str("path", c.Path()).
				Msg("circuit open, rejecting request")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "service temporarily unavailable",
			})
		}

		err := c.Next()
		breaker.Record(err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError)
		return err
	}
}
