package contact

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPerMinute is how many messages the relay accepts per minute
const DefaultPerMinute = 3

// RateLimitMessage is shown when the relay budget is exhausted
const RateLimitMessage = "Too many messages sent. Please wait a moment before trying again."

// RelayLimiter caps how many messages are relayed per minute. A delivery
// holds a claim while it is in flight. Only delivered messages consume budget.
type RelayLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	inFlight int
	now      func() time.Time
}

// Claim is one unit of relay budget held for a delivery in flight
type Claim struct {
	l    *RelayLimiter
	once sync.Once
}

// NewRelayLimiter allows perMinute messages in a burst, refilling evenly across the minute
func NewRelayLimiter(perMinute int) *RelayLimiter {
	if perMinute <= 0 {
		perMinute = DefaultPerMinute
	}
	return &RelayLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		now:     time.Now,
	}
}

// Available reports whether another message may be relayed now
func (l *RelayLimiter) Available() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.availableLocked()
}

func (l *RelayLimiter) availableLocked() bool {
	return l.limiter.TokensAt(l.now())-float64(l.inFlight) >= 1
}

// Acquire claims budget for one delivery. It returns false when the budget,
// including deliveries still in flight, is exhausted.
func (l *RelayLimiter) Acquire() (*Claim, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.availableLocked() {
		return nil, false
	}
	l.inFlight++
	return &Claim{l: l}, true
}

// Commit consumes the claimed budget after a successful delivery
func (c *Claim) Commit() {
	c.once.Do(func() {
		c.l.mu.Lock()
		defer c.l.mu.Unlock()
		c.l.inFlight--
		c.l.limiter.AllowN(c.l.now(), 1)
	})
}

// Release returns the claimed budget after a failed delivery
func (c *Claim) Release() {
	c.once.Do(func() {
		c.l.mu.Lock()
		defer c.l.mu.Unlock()
		c.l.inFlight--
	})
}
