package orchestrator

// startRefreshLoop schedules recurring silent reloads. The loop exits when the
// instance context is canceled; the ticker itself is stopped by Deactivate.
// A tick racing an interactive execute is allowed: neither is queued or
// dropped, and whichever completes last wins the data slot.
func (o *Orchestrator) startRefreshLoop() {
	o.mu.Lock()
	if o.deactivated || o.ticker != nil {
		o.mu.Unlock()
		return
	}
	ticker := o.cfg.Clock.NewTicker(o.cfg.RefreshInterval)
	o.ticker = ticker
	o.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C():
				o.mu.RLock()
				gen := o.gen
				stopped := o.deactivated
				o.mu.RUnlock()
				if stopped {
					return
				}
				o.publish("refresh_silent", nil)
				_, _ = o.runOp(o.ctx, OpLoad, nil, true, gen)
			case <-o.ctx.Done():
				return
			}
		}
	}()
}
