package types

// ResourceSummary is a directory entry for GET /resources.
type ResourceSummary struct {
	// Resource name used in URLs.
	// example: backups
	Name string `json:"name" example:"backups"`
	// Human label used in messages.
	// example: Backups
	Entity string `json:"entity" example:"Backups"`
	// Whether the resource reloads itself on a timer.
	// example: true
	AutoRefresh bool `json:"auto_refresh" example:"true"`
	// Refresh period in milliseconds (0 when auto-refresh is off).
	// example: 30000
	RefreshIntervalMs int64 `json:"refresh_interval_ms" example:"30000"`
	// Names of the actions this resource accepts besides load.
	Actions []string `json:"actions"`
}

// ResourceState is the wire projection of one orchestrated resource.
type ResourceState struct {
	// Resource name used in URLs.
	// example: backups
	Name string `json:"name" example:"backups"`
	// Human label used in messages.
	// example: Backups
	Entity string `json:"entity" example:"Backups"`
	// Lifecycle state: idle, loading, ready, failed.
	// example: ready
	State string `json:"state" example:"ready"`
	// True while an interactive operation is in flight.
	// example: false
	Loading bool `json:"loading" example:"false"`
	// Last successful load result, verbatim. Null before first success.
	Data any `json:"data"`
	// Last surfaced error message, empty when none.
	Error string `json:"error,omitempty"`
	// Last success message, empty when none.
	SuccessMessage string `json:"success_message,omitempty"`
	// Unix seconds of the last successful load, 0 before first success.
	// example: 1700000000
	LastLoadedUnix int64 `json:"last_loaded_unix" example:"1700000000"`
}

// Notification is an active entry in the notification feed.
type Notification struct {
	// Opaque handle used to dismiss this notification.
	// example: n-42
	ID string `json:"id" example:"n-42"`
	// Severity: success, error, warning or loading.
	// example: success
	Severity string `json:"severity" example:"success"`
	// Short title line.
	// example: Backup Created
	Title string `json:"title" example:"Backup Created"`
	// Body text.
	Message string `json:"message"`
	// Auto-dismiss delay in milliseconds; 0 means manual dismiss only.
	// example: 8000
	AutoDismissMs int64 `json:"auto_dismiss_ms" example:"8000"`
	// Creation time in unix seconds.
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
}
