package clockutil

import "time"

// Clock abstracts timer creation so timer-driven code can be tested with a
// simulated clock instead of wall-clock waits.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	AfterFunc(d time.Duration, fn func()) Timer
}

// Ticker mirrors the subset of time.Ticker we use.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer mirrors the subset of time.Timer we use.
type Timer interface {
	Stop() bool
}

// Real returns the wall-clock implementation.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type realTicker struct{ t *time.Ticker }

func (rt *realTicker) C() <-chan time.Time { return rt.t.C }
func (rt *realTicker) Stop()               { rt.t.Stop() }
