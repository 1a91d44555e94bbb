package notify

import "time"

// Severity determines color, icon, and auto-dismiss timing. Informational
// only; no behavior branches on it beyond dismiss scheduling.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityLoading Severity = "loading"
)

// Auto-dismiss conventions per severity. Loading records never self-dismiss.
const (
	successDismiss = 8 * time.Second
	errorDismiss   = 12 * time.Second
	warningDismiss = 10 * time.Second
)

// AutoDismiss returns the display duration for the severity, 0 for loading.
func (s Severity) AutoDismiss() time.Duration {
	switch s {
	case SeveritySuccess:
		return successDismiss
	case SeverityError:
		return errorDismiss
	case SeverityWarning:
		return warningDismiss
	default:
		return 0
	}
}

// Record is one notification to render. ID is assigned by the sink.
type Record struct {
	ID          string
	Severity    Severity
	Title       string
	Message     string
	AutoDismiss time.Duration
	Created     time.Time
}

// Sink is the abstract show/dismiss capability the translator renders through.
type Sink interface {
	// Show renders the record and returns its assigned id.
	Show(Record) string
	// Dismiss removes a notification if still present; unknown ids are a no-op.
	Dismiss(id string)
}
