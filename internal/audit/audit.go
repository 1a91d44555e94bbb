// Package audit records executed admin actions and their outcomes. The
// daemon uses the sqlite store; tests use the memory store.
package audit

import (
	"context"
	"time"
)

// Outcome values stored per entry.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Entry is one executed action.
type Entry struct {
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	Outcome  string    `json:"outcome"`
	Detail   string    `json:"detail,omitempty"`
}

// Store persists the action trail.
type Store interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns the newest entries first, at most limit.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}
