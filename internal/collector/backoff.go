package collector

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Delay returns the wait after zero-based attempt a: min(2^a seconds, maxDelay).
func Delay(a int, maxDelay time.Duration) time.Duration {
	if a < 0 {
		a = 0
	}
	// 2^62 ns is far past any sane ceiling; clamp before shifting.
	if a >= 32 {
		return maxDelay
	}
	d := time.Duration(1<<uint(a)) * time.Second
	if d > maxDelay {
		return maxDelay
	}
	return d
}

// Policy is a backoff.BackOff yielding Delay(0), Delay(1), ... up to MaxDelay.
type Policy struct {
	MaxDelay time.Duration
	attempt  int
}

var _ backoff.BackOff = (*Policy)(nil)

// NewPolicy returns a Policy starting at attempt 0.
func NewPolicy(maxDelay time.Duration) *Policy {
	return &Policy{MaxDelay: maxDelay}
}

func (p *Policy) NextBackOff() time.Duration {
	d := Delay(p.attempt, p.MaxDelay)
	p.attempt++
	return d
}

func (p *Policy) Reset() { p.attempt = 0 }
