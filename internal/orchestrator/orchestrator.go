package orchestrator

import (
	"context"
	"sync"
	"time"

	"admind/internal/common/clockutil"
)

// Orchestrator owns the lifecycle of one named resource. All state access is
// guarded by mu; operation functions are never invoked while holding it.
type Orchestrator struct {
	mu  sync.RWMutex
	cfg ResourceConfig

	state      State
	data       any
	err        error
	successMsg string
	inflight   int
	lastLoaded time.Time

	activated   bool
	deactivated bool
	gen         uint64
	ctx         context.Context
	cancel      context.CancelFunc
	ticker      clockutil.Ticker
}

// New validates the config and builds an orchestrator in the idle state.
// A missing load operation is a configuration error.
func New(cfg ResourceConfig) (*Orchestrator, error) {
	if cfg.Operations[OpLoad] == nil {
		return nil, ErrNotConfigured(OpLoad)
	}
	cfg.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		cfg:    cfg,
		state:  StateIdle,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Activate begins the lifecycle: exactly one initial load, plus the refresh
// ticker when AutoRefresh is set. Re-invoking on the same instance is a no-op,
// so re-activation churn cannot trigger duplicate loads. A failed initial load
// lands in the snapshot, not the return path.
func (o *Orchestrator) Activate(ctx context.Context) {
	o.mu.Lock()
	if o.activated || o.deactivated {
		o.mu.Unlock()
		return
	}
	o.activated = true
	o.state = StateLoading
	gen := o.gen
	o.mu.Unlock()

	o.publish("activate", nil)
	_, _ = o.runOp(ctx, OpLoad, nil, false, gen)

	if o.cfg.AutoRefresh {
		o.startRefreshLoop()
	}
}

// Deactivate cancels in-flight work, stops the refresh ticker, and freezes
// state: completions arriving afterwards are discarded via the generation
// guard. Safe to call multiple times.
func (o *Orchestrator) Deactivate() {
	o.mu.Lock()
	if o.deactivated {
		o.mu.Unlock()
		return
	}
	o.deactivated = true
	o.gen++
	ticker := o.ticker
	o.ticker = nil
	o.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	o.cancel()
	o.publish("deactivate", nil)
}

// ClearError resets the surfaced error without touching data.
func (o *Orchestrator) ClearError() {
	o.mu.Lock()
	o.err = nil
	o.mu.Unlock()
}

// ClearSuccess resets the success message. Callers conventionally do this
// after a short display timeout.
func (o *Orchestrator) ClearSuccess() {
	o.mu.Lock()
	o.successMsg = ""
	o.mu.Unlock()
}

// Snapshot returns a read-only view of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return Snapshot{
		Entity:         o.cfg.EntityName,
		State:          o.state,
		Loading:        o.inflight > 0,
		Data:           o.data,
		Err:            o.err,
		SuccessMessage: o.successMsg,
		LastLoaded:     o.lastLoaded,
	}
}

// Entity returns the configured entity label.
func (o *Orchestrator) Entity() string { return o.cfg.EntityName }

// AutoRefresh reports whether the resource reloads itself on a timer.
func (o *Orchestrator) AutoRefresh() bool { return o.cfg.AutoRefresh }

// RefreshInterval returns the effective refresh period.
func (o *Orchestrator) RefreshInterval() time.Duration { return o.cfg.RefreshInterval }

// Operations lists the configured operation names besides load.
func (o *Orchestrator) Operations() []string {
	names := make([]string, 0, len(o.cfg.Operations))
	for name := range o.cfg.Operations {
		if name != OpLoad {
			names = append(names, name)
		}
	}
	return names
}
