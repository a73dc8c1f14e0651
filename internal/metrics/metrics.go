package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Checkout counts checkout outcomes. Client rejections (validation,
// missing product) and server failures are tracked separately since only
// the latter are retry candidates.
type Checkout struct {
	Attempts       Counter
	Committed      Counter
	ClientRejected Counter
	Failed         Counter
}

func NewCheckout() *Checkout {
	return &Checkout{}
}

func (c *Checkout) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"checkout_attempts":        c.Attempts.Load(),
		"checkout_committed":       c.Committed.Load(),
		"checkout_client_rejected": c.ClientRejected.Load(),
		"checkout_failed":          c.Failed.Load(),
	}
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
