package upstream

import (
	"context"
	"fmt"

	"admind/pkg/types"
)

// ListBackups loads the backups resource.
func (c *Client) ListBackups(ctx context.Context) (types.BackupList, error) {
	var out types.BackupList
	err := c.get(ctx, "/backups", &out)
	return out, err
}

// CreateDatabaseBackup asks the backend to snapshot the database. The result
// carries at least filename and size_bytes.
func (c *Client) CreateDatabaseBackup(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.post(ctx, "/backups", nil, &out)
	return out, err
}

// DeleteBackup removes one backup file.
func (c *Client) DeleteBackup(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.del(ctx, fmt.Sprintf("/backups/%d", id), &out)
	return out, err
}

// VerifyBackup runs an integrity check on one backup.
func (c *Client) VerifyBackup(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.post(ctx, fmt.Sprintf("/backups/%d/verify", id), nil, &out)
	return out, err
}

// PreviewRestore reports what a restore of the given backup would change,
// without touching data.
func (c *Client) PreviewRestore(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.get(ctx, fmt.Sprintf("/backups/%d/preview", id), &out)
	return out, err
}

// RestoreBackup restores the database from one backup. The backend creates a
// safety backup before applying the restore.
func (c *Client) RestoreBackup(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.post(ctx, fmt.Sprintf("/backups/%d/restore", id), nil, &out)
	return out, err
}

// CleanupBackups applies the backend's retention policy to old backups.
func (c *Client) CleanupBackups(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.post(ctx, "/backups/cleanup", nil, &out)
	return out, err
}
