package upstream

import (
	"context"

	"admind/pkg/types"
)

// DashboardStats loads the dashboard resource.
func (c *Client) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	var out types.DashboardStats
	err := c.get(ctx, "/dashboard/stats", &out)
	return out, err
}

// Health probes the backend. A non-2xx response surfaces as an apiError.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}
