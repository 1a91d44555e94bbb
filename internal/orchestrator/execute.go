package orchestrator

import "context"

// Execute runs a named operation interactively. Unknown names fail fast with
// a config error before any state is touched. Operation failures are swallowed
// into the snapshot's error and reported as a nil result, so callers can test
// the result without branching on error. Flows that need to branch on the raw
// failure use ExecuteStrict instead. Prior data survives a failed call.
func (o *Orchestrator) Execute(ctx context.Context, name string, input any) (any, error) {
	res, err := o.ExecuteStrict(ctx, name, input)
	if err != nil {
		if IsConfigError(err) {
			return nil, err
		}
		return nil, nil
	}
	return res, nil
}

// ExecuteStrict is Execute with error propagation: the operation's own error
// is returned alongside being recorded in the snapshot (cancellation excepted,
// which is returned but never recorded).
func (o *Orchestrator) ExecuteStrict(ctx context.Context, name string, input any) (any, error) {
	o.mu.RLock()
	_, ok := o.cfg.Operations[name]
	gen := o.gen
	o.mu.RUnlock()
	if !ok {
		return nil, ErrNotConfigured(name)
	}
	return o.runOp(ctx, name, input, false, gen)
}

// Refresh re-invokes the load operation. A silent refresh never raises the
// interactive loading flag, so background ticks do not flicker a full-page
// loading state once data has been shown.
func (o *Orchestrator) Refresh(ctx context.Context, silent bool) (any, error) {
	o.mu.RLock()
	gen := o.gen
	o.mu.RUnlock()
	res, err := o.runOp(ctx, OpLoad, nil, silent, gen)
	if err != nil {
		return nil, nil
	}
	return res, nil
}

// runOp is the shared dispatch path. The operation runs without the state
// lock held; its completion is applied only if the generation is unchanged,
// so late completions after Deactivate cannot mutate frozen state.
func (o *Orchestrator) runOp(ctx context.Context, name string, input any, silent bool, gen uint64) (any, error) {
	fn := o.cfg.Operations[name]
	if fn == nil {
		return nil, ErrNotConfigured(name)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opCtx, cancel := joinContexts(o.ctx, ctx)
	defer cancel()

	if !silent {
		o.mu.Lock()
		o.inflight++
		o.mu.Unlock()
	}
	o.publish("op_start", map[string]any{"operation": name, "silent": silent})

	res, err := fn(opCtx, input)

	o.mu.Lock()
	if !silent && o.inflight > 0 {
		o.inflight--
	}
	if o.gen != gen {
		// Completed after deactivation or replacement; drop on the floor.
		o.mu.Unlock()
		operationsTotal.WithLabelValues(o.cfg.EntityName, name, "discarded").Inc()
		return nil, context.Canceled
	}
	if err != nil {
		if opCtx.Err() != nil || IsCanceled(err) {
			o.mu.Unlock()
			operationsTotal.WithLabelValues(o.cfg.EntityName, name, "canceled").Inc()
			return nil, err
		}
		o.err = err
		if o.data == nil && o.state == StateLoading {
			o.state = StateFailed
		}
		o.mu.Unlock()
		operationsTotal.WithLabelValues(o.cfg.EntityName, name, "error").Inc()
		o.cfg.Logger.Error().Err(err).Str("entity", o.cfg.EntityName).Str("operation", name).Msg("operation failed")
		o.publish("op_error", map[string]any{"operation": name, "error": err.Error()})
		return nil, err
	}
	o.err = nil
	if name == OpLoad {
		o.data = res
		o.state = StateReady
		o.lastLoaded = o.cfg.Clock.Now()
	} else {
		o.successMsg = o.cfg.EntityName + ": " + name + " completed"
	}
	o.mu.Unlock()
	operationsTotal.WithLabelValues(o.cfg.EntityName, name, "ok").Inc()
	if silent {
		silentRefreshesTotal.WithLabelValues(o.cfg.EntityName).Inc()
	}
	o.publish("op_done", map[string]any{"operation": name, "silent": silent})
	return res, nil
}
