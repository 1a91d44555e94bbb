package notify

import (
	"fmt"
	"sort"
	"sync"

	"admind/internal/common/clockutil"
	"admind/pkg/types"
)

// Center is the process-wide notification channel: one queue of visible
// records, each independently addressable by id. Auto-dismiss is scheduled on
// the injected clock so tests can drive it deterministically.
type Center struct {
	mu     sync.Mutex
	clock  clockutil.Clock
	seq    int64
	active map[string]*activeRecord
}

type activeRecord struct {
	rec   Record
	seq   int64
	timer clockutil.Timer
}

func NewCenter(clk clockutil.Clock) *Center {
	if clk == nil {
		clk = clockutil.Real()
	}
	return &Center{clock: clk, active: make(map[string]*activeRecord)}
}

// Show renders the record, assigns its id, and schedules auto-dismiss unless
// the record is persistent.
func (c *Center) Show(rec Record) string {
	c.mu.Lock()
	c.seq++
	id := fmt.Sprintf("n-%d", c.seq)
	rec.ID = id
	rec.Created = c.clock.Now()
	ar := &activeRecord{rec: rec, seq: c.seq}
	c.active[id] = ar
	if rec.AutoDismiss > 0 {
		ar.timer = c.clock.AfterFunc(rec.AutoDismiss, func() { c.Dismiss(id) })
	}
	c.mu.Unlock()
	activeGauge.Set(float64(c.count()))
	return id
}

// Dismiss removes a notification. Unknown or already-dismissed ids are a
// no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	ar, ok := c.active[id]
	if ok {
		delete(c.active, id)
		if ar.timer != nil {
			ar.timer.Stop()
		}
	}
	c.mu.Unlock()
	if ok {
		activeGauge.Set(float64(c.count()))
	}
}

// Active returns the visible notifications in display order.
func (c *Center) Active() []types.Notification {
	c.mu.Lock()
	records := make([]*activeRecord, 0, len(c.active))
	for _, ar := range c.active {
		records = append(records, ar)
	}
	c.mu.Unlock()
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	out := make([]types.Notification, 0, len(records))
	for _, ar := range records {
		out = append(out, types.Notification{
			ID:            ar.rec.ID,
			Severity:      string(ar.rec.Severity),
			Title:         ar.rec.Title,
			Message:       ar.rec.Message,
			AutoDismissMs: ar.rec.AutoDismiss.Milliseconds(),
			CreatedUnix:   ar.rec.Created.Unix(),
		})
	}
	return out
}

func (c *Center) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.active)
}
