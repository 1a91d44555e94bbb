package notify

import (
	"fmt"
	"sync"
)

// MemorySink records emitted notifications for tests.
type MemorySink struct {
	mu        sync.Mutex
	seq       int
	shown     []Record
	dismissed []string
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) Show(rec Record) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	rec.ID = fmt.Sprintf("m-%d", s.seq)
	s.shown = append(s.shown, rec)
	return rec.ID
}

func (s *MemorySink) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = append(s.dismissed, id)
}

func (s *MemorySink) Shown() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.shown))
	copy(out, s.shown)
	return out
}

func (s *MemorySink) Dismissed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.dismissed))
	copy(out, s.dismissed)
	return out
}
