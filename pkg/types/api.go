package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unknown action
	Error string `json:"error" example:"unknown action"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// ActionRequest is the optional JSON body for POST /resources/{name}/actions/{action}.
// Input is forwarded to the configured operation unchanged.
type ActionRequest struct {
	Input any `json:"input,omitempty"`
}

// ActionResponse wraps the result of an executed action.
type ActionResponse struct {
	// Action that ran.
	// example: createDatabaseBackup
	Action string `json:"action" example:"createDatabaseBackup"`
	// Whether the action succeeded.
	// example: true
	OK bool `json:"ok" example:"true"`
	// Raw result returned by the operation, if any.
	Result any `json:"result,omitempty"`
	// Error message when OK is false.
	Error string `json:"error,omitempty"`
}

// ResourcesResponse wraps the list returned by GET /resources.
type ResourcesResponse struct {
	Resources []ResourceSummary `json:"resources"`
}

// NotificationsResponse wraps the active notification feed.
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}
