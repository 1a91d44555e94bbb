package console

import (
	"context"
	"encoding/json"
	"fmt"

	"admind/internal/audit"
	"admind/internal/orchestrator"
)

// RunAction executes one named action with the standard pattern: show a
// persistent loading notification, run the operation, dismiss the loading
// record, then show the terminal success or error notification and record the
// outcome in the audit trail. On success the resource is silently refreshed
// so its data reflects the mutation.
func (c *Console) RunAction(ctx context.Context, name, action string, input any) (any, error) {
	o, ok := c.resources[name]
	if !ok {
		return nil, ErrUnknownResource(name)
	}

	loadingID := c.notifier.NotifyLoading(action)
	res, err := o.ExecuteStrict(ctx, action, input)
	c.notifier.Dismiss(loadingID)

	if err != nil {
		switch {
		case orchestrator.IsConfigError(err):
			// programmer error, not a user-facing failure
			return nil, err
		case orchestrator.IsCanceled(err):
			c.recordAudit(name, action, audit.OutcomeCanceled, "")
			return nil, err
		default:
			c.notifier.NotifyError(action, err)
			c.recordAudit(name, action, audit.OutcomeError, err.Error())
			return nil, err
		}
	}

	c.notifier.NotifySuccess(action, res)
	c.recordAudit(name, action, audit.OutcomeOK, "")
	_, _ = o.Refresh(ctx, true)
	return res, nil
}

func (c *Console) recordAudit(resource, action, outcome, detail string) {
	err := c.audit.Record(context.Background(), audit.Entry{
		At:       c.clock.Now(),
		Resource: resource,
		Action:   action,
		Outcome:  outcome,
		Detail:   detail,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("resource", resource).Str("action", action).Msg("audit record failed")
	}
}

// AuditTrail exposes the recent action history.
func (c *Console) AuditTrail(ctx context.Context, limit int) ([]audit.Entry, error) {
	return c.audit.Recent(ctx, limit)
}

// withID adapts a backend call taking a record id to the operation signature.
// The id arrives as whatever the transport decoded: JSON numbers, strings,
// or an object with an "id" field are all accepted.
func withID(call func(context.Context, int64) (map[string]any, error)) orchestrator.OperationFunc {
	return func(ctx context.Context, input any) (any, error) {
		id, err := inputID(input)
		if err != nil {
			return nil, err
		}
		return call(ctx, id)
	}
}

func inputID(input any) (int64, error) {
	switch v := input.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, fmt.Errorf("invalid id %q", v)
		}
		return n, nil
	case map[string]any:
		if id, ok := v["id"]; ok {
			return inputID(id)
		}
		return 0, fmt.Errorf("input object missing id field")
	default:
		return 0, fmt.Errorf("action requires a record id")
	}
}
