package orchestrator

import (
	"time"

	"github.com/rs/zerolog"

	"admind/internal/common/clockutil"
)

// defaultRefreshInterval applies when AutoRefresh is set without an interval.
const defaultRefreshInterval = 30 * time.Second

// ResourceConfig declares one resource: its label, the named operations it
// supports, and refresh behavior. The load operation is required. Clock,
// Logger and Events are injected so instances have no ambient dependencies.
type ResourceConfig struct {
	EntityName      string
	Operations      map[string]OperationFunc
	AutoRefresh     bool
	RefreshInterval time.Duration
	Clock           clockutil.Clock
	Logger          zerolog.Logger
	Events          EventPublisher
}

func (c *ResourceConfig) applyDefaults() {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaultRefreshInterval
	}
	if c.Clock == nil {
		c.Clock = clockutil.Real()
	}
	if c.Events == nil {
		c.Events = noopPublisher{}
	}
}
