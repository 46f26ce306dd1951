package breaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Allow while the breaker is rejecting calls.
var ErrOpen = errors.New("circuit breaker is open")

// State captures circuit breaker states.
type State int

const (
	// StateClosed indicates normal operation.
	StateClosed State = iota
	// StateOpen indicates the breaker is rejecting calls.
	StateOpen
	// StateHalfOpen indicates a single trial call is permitted.
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

// Breaker guards a downstream dependency. After failureThreshold consecutive
// failures it rejects calls for resetTimeout, then lets a single trial call
// through; a successful trial closes the breaker, a failed one restarts the
// timer. State is shared by all concurrent callers and mutex-guarded.
//
// The breaker is never persisted; a process restart implicitly resets it to
// closed.
type Breaker struct {
	mu                  sync.Mutex
	consecutiveFailures int
	lastFailure         time.Time

	failureThreshold int
	resetTimeout     time.Duration
	now              func() time.Time
}

// New creates a Breaker with the given failure threshold and reset timeout.
func New(failureThreshold int, resetTimeout time.Duration) *Breaker {
	return NewWithClock(failureThreshold, resetTimeout, time.Now)
}

// NewWithClock creates a Breaker with an injectable clock for deterministic
// tests.
func NewWithClock(failureThreshold int, resetTimeout time.Duration, now func() time.Time) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	return &Breaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		now:              now,
	}
}

// Allow reports whether a call may proceed. While the breaker is open and the
// reset timeout has not elapsed it returns ErrOpen without any I/O. Once the
// timeout elapses exactly one caller is let through as the half-open trial;
// claiming the trial restamps the failure timestamp so concurrent callers
// keep getting rejected until the trial resolves.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consecutiveFailures < b.failureThreshold {
		return nil
	}
	if b.now().Sub(b.lastFailure) < b.resetTimeout {
		return ErrOpen
	}

	// Claim the half-open trial.
	b.lastFailure = b.now()
	return nil
}

// Success records a successful call and closes the breaker.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutiveFailures = 0
	b.lastFailure = time.Time{}
}

// Failure records a failed call. Callers wrapping a retry loop must invoke
// this once per outer call, not once per attempt.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutiveFailures++
	b.lastFailure = b.now()
}

// State returns the breaker's current logical state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consecutiveFailures < b.failureThreshold {
		return StateClosed
	}
	if b.now().Sub(b.lastFailure) < b.resetTimeout {
		return StateOpen
	}
	return StateHalfOpen
}
