package cvs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Pools lists all storage pools in a region ("-" for all regions).
func (c *Client) Pools(ctx context.Context, region string) ([]Pool, error) {
	var pools []Pool
	err := c.get(ctx, region, "Pools", &pools)
	return pools, err
}

// PoolsByName returns the pools named name in a region.
func (c *Client) PoolsByName(ctx context.Context, region, name string) ([]Pool, error) {
	all, err := c.Pools(ctx, region)
	if err != nil {
		return nil, err
	}
	var matches []Pool
	for _, p := range all {
		if p.Name == name {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// PoolByID fetches one storage pool.
func (c *Client) PoolByID(ctx context.Context, region, poolID string) (Pool, error) {
	var p Pool
	err := c.get(ctx, region, "Pools/"+poolID, &p)
	return p, err
}

// CreatePool creates a storage pool and waits until it leaves "creating".
// The returned record may still carry an error state; callers check it.
func (c *Client) CreatePool(ctx context.Context, region string, payload map[string]any, window time.Duration) (Pool, error) {
	res, err := c.post(ctx, region, "Pools", payload)
	if err != nil {
		return Pool{}, err
	}
	poolID, err := res.ResourceID("poolId")
	if err != nil {
		return Pool{}, err
	}

	if res.Accepted() {
		if _, err := AwaitTerminal(ctx, PollSpec{
			ResourceID: poolID,
			Region:     region,
			Interval:   c.poolPoll,
			Window:     window,
			Fetch:      c.fetchPoolState,
			Terminal:   StateLeft(StateCreating),
		}); err != nil {
			return Pool{}, err
		}
	}

	log.Info().
		Str("action", "pool_create").
		Str("region", region).
		Str("pool", poolID).
		Msg("pool created")
	return c.PoolByID(ctx, region, poolID)
}

// ModifyPool applies a partial update to a pool.
func (c *Client) ModifyPool(ctx context.Context, region, poolID string, changes map[string]any) (Pool, error) {
	var p Pool
	err := c.put(ctx, region, "Pools/"+poolID, changes, &p)
	return p, err
}

// ResizePool sets a pool's size in bytes.
func (c *Client) ResizePool(ctx context.Context, region, poolID string, newSize int64) (Pool, error) {
	return c.ModifyPool(ctx, region, poolID, map[string]any{"sizeInBytes": newSize})
}

// DeletePool deletes a storage pool.
func (c *Client) DeletePool(ctx context.Context, region, poolID string) error {
	_, err := c.delete(ctx, region, "Pools/"+poolID)
	return err
}

func (c *Client) fetchPoolState(ctx context.Context, poolID, region string) (ResourceState, error) {
	p, err := c.PoolByID(ctx, region, poolID)
	if err != nil {
		return ResourceState{}, err
	}
	return ResourceState{ID: poolID, State: p.State}, nil
}
