package cvs

import "context"

// Snapshots lists all snapshots in a region ("-" for all regions).
func (c *Client) Snapshots(ctx context.Context, region string) ([]Snapshot, error) {
	var snaps []Snapshot
	err := c.get(ctx, region, "Snapshots", &snaps)
	return snaps, err
}

// DeleteSnapshot deletes one snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, region, snapshotID string) error {
	_, err := c.delete(ctx, region, "Snapshots/"+snapshotID)
	return err
}
