package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	// MaxFailures consecutive failures open the breaker.
	MaxFailures int
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
	// ProbeSuccesses half-open successes close it again.
	ProbeSuccesses int
	OnStateChange  func(name string, from, to State)
}

// Breaker guards a flaky dependency such as a metrics source. While
// open it rejects calls outright; after the cooldown it lets probe
// calls through half-open, closing again once enough succeed.
type Breaker struct {
	name string
	cfg  Config

	mu        sync.RWMutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
}

func NewBreaker(name string, cfg Config) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.ProbeSuccesses <= 0 {
		cfg.ProbeSuccesses = 3
	}

	return &Breaker{name: name, cfg: cfg}
}

// Execute runs fn unless the breaker is open, recording the outcome.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrCircuitOpen
	}

	if err := fn(); err != nil {
		b.onFailure()
		return err
	}

	b.onSuccess()
	return nil
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if time.Since(b.openedAt) > b.cfg.Cooldown {
			b.shift(StateHalfOpen)
			return true
		}
		return false
	}
	return true
}

func (b *Breaker) onSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.cfg.ProbeSuccesses {
			b.shift(StateClosed)
		}
	}
}

func (b *Breaker) onFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.MaxFailures {
			b.openedAt = time.Now()
			b.shift(StateOpen)
		}
	case StateHalfOpen:
		b.openedAt = time.Now()
		b.shift(StateOpen)
	}
}

// shift moves to a new state and resets the counters. Callers hold b.mu.
func (b *Breaker) shift(to State) {
	from := b.state
	b.state = to
	b.failures = 0
	b.successes = 0

	if b.cfg.OnStateChange != nil {
		go b.cfg.OnStateChange(b.name, from, to)
	}
}

func (b *Breaker) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}
