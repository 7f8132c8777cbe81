package kafka

import (
	"errors"
	"sync"
	"time"

	"github.com/tair/pededrink/pkg/logger"
)

// BreakerState represents the state of a circuit breaker
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

const (
	defaultMaxFailures       = 5
	defaultOpenTimeout       = 30 * time.Second
	halfOpenSuccessesToClose = 3
)

// ErrBreakerOpen is returned without contacting the broker while the circuit is open.
var ErrBreakerOpen = errors.New("kafka circuit breaker is open")

// Breaker stops calling a failing broker for a cool-down period, so a dead
// cluster does not add producer retries to every sale.
type Breaker struct {
	name            string
	maxFailures     int
	timeout         time.Duration
	state           BreakerState
	failures        int
	successCount    int
	lastStateChange time.Time
	now             func() time.Time
	mu              sync.Mutex
}

// NewBreaker creates a closed breaker
func NewBreaker(name string, maxFailures int, timeout time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if timeout <= 0 {
		timeout = defaultOpenTimeout
	}
	return &Breaker{
		name:            name,
		maxFailures:     maxFailures,
		timeout:         timeout,
		state:           BreakerClosed,
		lastStateChange: time.Now(),
		now:             time.Now,
	}
}

// Call executes fn unless the circuit is open
func (b *Breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.state == BreakerOpen && b.now().Sub(b.lastStateChange) > b.timeout {
		b.transition(BreakerHalfOpen)
		b.successCount = 0
		logger.Logger.Info().
			Str("circuit", b.name).
			Msg("Circuit breaker transitioning to half-open")
	}
	current := b.state
	b.mu.Unlock()

	if current == BreakerOpen {
		return ErrBreakerOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure()
	} else {
		b.onSuccess()
	}
	return err
}

func (b *Breaker) onFailure() {
	b.failures++

	if b.state == BreakerHalfOpen {
		b.transition(BreakerOpen)
		logger.Logger.Warn().
			Str("circuit", b.name).
			Msg("Circuit breaker reopened after half-open failure")
	} else if b.failures >= b.maxFailures && b.state == BreakerClosed {
		b.transition(BreakerOpen)
		logger.Logger.Error().
			Str("circuit", b.name).
			Int("failures", b.failures).
			Int("threshold", b.maxFailures).
			Msg("Circuit breaker opened")
	}
}

func (b *Breaker) onSuccess() {
	switch b.state {
	case BreakerHalfOpen:
		b.successCount++
		if b.successCount >= halfOpenSuccessesToClose {
			b.transition(BreakerClosed)
			b.failures = 0
			b.successCount = 0
			logger.Logger.Info().
				Str("circuit", b.name).
				Msg("Circuit breaker closed after successful recovery")
		}
	case BreakerClosed:
		b.failures = 0
	}
}

func (b *Breaker) transition(state BreakerState) {
	b.state = state
	b.lastStateChange = b.now()
}

// State returns the current state
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
