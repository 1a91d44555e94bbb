package upstream

import (
	"context"
	"fmt"

	"admind/pkg/types"
)

// ListTrash loads the trash resource.
func (c *Client) ListTrash(ctx context.Context) (types.TrashList, error) {
	var out types.TrashList
	err := c.get(ctx, "/trash", &out)
	return out, err
}

// RestoreTrashItem un-deletes one soft-deleted record.
func (c *Client) RestoreTrashItem(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.post(ctx, fmt.Sprintf("/trash/%d/restore", id), nil, &out)
	return out, err
}

// PurgeTrashItem permanently deletes one record from the trash.
func (c *Client) PurgeTrashItem(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	err := c.del(ctx, fmt.Sprintf("/trash/%d", id), &out)
	return out, err
}

// EmptyTrash permanently deletes everything in the trash. The result carries
// the number of records removed.
func (c *Client) EmptyTrash(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.del(ctx, "/trash", &out)
	return out, err
}
