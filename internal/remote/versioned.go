package remote

import (
	"context"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
)

// UpdateVersioned applies set to the row with id. When loadedAt is non-zero the
// row must still carry that updated_at: a row that moved on yields
// model.ErrConflict, a missing row model.ErrNotFound. A zero loadedAt is
// last-write-wins.
func (c *Client) UpdateVersioned(ctx context.Context, table, id string, loadedAt time.Time, set map[string]interface{}) error {
	q := c.From(table).Eq("id", id)
	if !loadedAt.IsZero() {
		q = q.Eq("updated_at", loadedAt)
	}
	n, err := q.Update(ctx, set)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	exists, err := c.From(table).Eq("id", id).Count(ctx)
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrNotFound
	}
	return model.ErrConflict
}
