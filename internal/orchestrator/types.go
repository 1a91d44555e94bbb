package orchestrator

import (
	"context"
	"time"
)

// State represents lifecycle state of an orchestrator instance.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// OpLoad is the required operation that produces the resource's data.
const OpLoad = "load"

// OperationFunc is one configured async operation. A non-nil error means the
// operation failed; the result of the load operation becomes Data verbatim.
// Implementations should honor ctx, which is canceled on Deactivate.
type OperationFunc func(ctx context.Context, input any) (any, error)

// Snapshot is a read-only projection of the orchestrator state.
type Snapshot struct {
	Entity         string
	State          State
	Loading        bool
	Data           any
	Err            error
	SuccessMessage string
	LastLoaded     time.Time
}
