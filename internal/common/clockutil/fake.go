package clockutil

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFake returns a Fake clock starting at a fixed instant.
func NewFake() *Fake {
	return &Fake{now: time.Unix(1700000000, 0)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward, firing due timers and ticker periods in
// deadline order. AfterFunc callbacks run on the calling goroutine.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range f.timers {
			if t.stopped || t.when.After(target) {
				continue
			}
			if next == nil || t.when.Before(next.when) {
				next = t
			}
		}
		if next == nil {
			break
		}
		f.now = next.when
		if next.period > 0 {
			next.when = next.when.Add(next.period)
			select {
			case next.ch <- f.now:
			default:
			}
			continue
		}
		next.stopped = true
		fn := next.fn
		f.mu.Unlock()
		fn()
		f.mu.Lock()
	}
	f.now = target
	f.compact()
	f.mu.Unlock()
}

func (f *Fake) compact() {
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].when.Before(live[j].when) })
	f.timers = live
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{clk: f, when: f.now.Add(d), period: d, ch: make(chan time.Time, 1)}
	f.timers = append(f.timers, t)
	return fakeTicker{t}
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{clk: f, when: f.now.Add(d), fn: fn}
	f.timers = append(f.timers, t)
	return fakeTimerHandle{t}
}

type fakeTimer struct {
	clk     *Fake
	when    time.Time
	period  time.Duration
	ch      chan time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeTicker struct{ t *fakeTimer }

func (ft fakeTicker) C() <-chan time.Time { return ft.t.ch }
func (ft fakeTicker) Stop()               { ft.t.stop() }

type fakeTimerHandle struct{ t *fakeTimer }

func (fh fakeTimerHandle) Stop() bool { return fh.t.stop() }
