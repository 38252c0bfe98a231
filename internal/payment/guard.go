package payment

import (
	"sync"
	"time"
)

// GuardConfig tunes the in-process payment-intent throttle.
type GuardConfig struct {
	// MinInterval is the minimum spacing between attempts; anything closer
	// counts as a rapid retry.
	MinInterval time.Duration
	// MaxRequests rapid retries are tolerated per Window before the guard
	// escalates to a cooldown.
	MaxRequests int
	Window      time.Duration
	// Cooldown is the penalty once MaxRequests is exceeded.
	Cooldown time.Duration
	// MaxHold bounds how long a hold can stay open. A crashed or abandoned
	// caller that never released is reclaimed after this, so one lost
	// release cannot wedge the process.
	MaxHold time.Duration
}

func (c GuardConfig) withDefaults() GuardConfig {
	if c.MinInterval <= 0 {
		c.MinInterval = 2 * time.Second
	}
	if c.MaxRequests <= 0 {
		c.MaxRequests = 3
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 20 * time.Second
	}
	if c.MaxHold <= 0 {
		c.MaxHold = 2 * time.Minute
	}
	return c
}

// Decision is the outcome of a throttle check.
type Decision struct {
	CanProceed bool
	// Duplicate is set when the same session already has a request in
	// flight.
	Duplicate bool
	// RetryAfter is how long the caller should wait before retrying; zero
	// when retrying immediately is fine or the rejection is not time-based.
	RetryAfter time.Duration
}

// Guard is the process-wide dedup and rate-limit guard in front of
// payment-intent creation. It is a UX throttle against rapid re-clicks and
// retry storms, scoped to one process; the provider-side idempotency key
// remains the authoritative duplicate-charge protection.
//
// Instances are created once per process and injected; state is deliberately
// not shared across replicas.
type Guard struct {
	mu  sync.Mutex
	cfg GuardConfig
	now func() time.Time

	lastRequest  time.Time
	requestCount int
	windowStart  time.Time
	limitedUntil time.Time

	processing      bool
	activeSessionID string
	holdStarted     time.Time
	holdGeneration  uint64
}

// NewGuard creates a guard with the given configuration. Zero-valued fields
// fall back to the documented defaults.
func NewGuard(cfg GuardConfig) *Guard {
	return NewGuardWithClock(cfg, time.Now)
}

// NewGuardWithClock injects the clock; tests use it to step through windows
// and cooldowns without sleeping.
func NewGuardWithClock(cfg GuardConfig, now func() time.Time) *Guard {
	return &Guard{cfg: cfg.withDefaults(), now: now}
}

// Check records an attempt for the session and decides whether it may
// proceed. It does not acquire the hold; callers that intend to proceed use
// Begin, which checks and acquires atomically.
func (g *Guard) Check(sessionID string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.check(sessionID)
}

func (g *Guard) check(sessionID string) Decision {
	now := g.now()

	// Cooldown active: reject everything until it lapses.
	if now.Before(g.limitedUntil) {
		return Decision{RetryAfter: g.limitedUntil.Sub(now)}
	}

	// Rapid-retry accounting. The counter tracks attempts that arrive
	// closer than MinInterval within a rolling window.
	if !g.lastRequest.IsZero() && now.Sub(g.lastRequest) < g.cfg.MinInterval {
		if now.Sub(g.windowStart) >= g.cfg.Window {
			g.windowStart = now
			g.requestCount = 0
		}
		g.requestCount++
		g.lastRequest = now

		if g.requestCount >= g.cfg.MaxRequests {
			// Escalate: enough rapid retries within the window earns a
			// cooldown penalty. The counter resets when it lapses.
			g.limitedUntil = now.Add(g.cfg.Cooldown)
			g.requestCount = 0
			return Decision{RetryAfter: g.cfg.Cooldown}
		}

		// Too fast, but no escalation yet.
		return Decision{RetryAfter: g.cfg.MinInterval}
	}

	// In-flight request: same session is a duplicate, a different session
	// waits its turn. A hold past MaxHold is stale and ignored.
	if g.processing && now.Sub(g.holdStarted) <= g.cfg.MaxHold {
		if g.activeSessionID == sessionID {
			return Decision{Duplicate: true}
		}
		return Decision{}
	}

	if g.windowStart.IsZero() || now.Sub(g.windowStart) >= g.cfg.Window {
		g.windowStart = now
		g.requestCount = 0
	}
	g.lastRequest = now

	return Decision{CanProceed: true}
}

// Begin checks the throttle and, if the request may proceed, acquires the
// in-flight hold for the session. The returned release function must be
// called when the request finishes, success or failure; deferring it
// guarantees release on every exit path, including abandonment. Release is
// idempotent and ignores stale holds that were already reclaimed.
func (g *Guard) Begin(sessionID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := g.check(sessionID)
	if !d.CanProceed {
		return nil, decisionError(d)
	}

	g.processing = true
	g.activeSessionID = sessionID
	g.holdStarted = g.now()
	g.holdGeneration++

	gen := g.holdGeneration
	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.holdGeneration == gen {
				g.processing = false
				g.activeSessionID = ""
			}
		})
	}

	return release, nil
}

// decisionError maps a rejecting decision onto the error taxonomy.
func decisionError(d Decision) error {
	if d.Duplicate {
		return ErrDuplicateRequest
	}
	if d.RetryAfter > 0 {
		seconds := int(d.RetryAfter.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		return ErrRateLimited.WithRetryAfter(seconds)
	}
	return ErrAlreadyProcessing
}
