package cvs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Volumes lists all volumes in a region ("-" for all regions).
func (c *Client) Volumes(ctx context.Context, region string) ([]Volume, error) {
	var vols []Volume
	err := c.get(ctx, region, "Volumes", &vols)
	return vols, err
}

// VolumeByID fetches the detailed record of one volume.
func (c *Client) VolumeByID(ctx context.Context, region, volumeID string) (Volume, error) {
	var v Volume
	err := c.get(ctx, region, "Volumes/"+volumeID, &v)
	return v, err
}

// VolumesByName returns the volume named name, if any. The list endpoint
// returns a reduced record, so a match is re-fetched by id for the full
// one. More than one match returns nothing, as the original listing is
// ambiguous then.
func (c *Client) VolumesByName(ctx context.Context, region, name string) ([]Volume, error) {
	all, err := c.Volumes(ctx, region)
	if err != nil {
		return nil, err
	}
	var matches []Volume
	for _, v := range all {
		if v.Name == name {
			matches = append(matches, v)
		}
	}
	if len(matches) != 1 {
		return nil, nil
	}
	full, err := c.VolumeByID(ctx, region, matches[0].VolumeID)
	if err != nil {
		return nil, err
	}
	return []Volume{full}, nil
}

// CreateVolume creates a volume and waits until it leaves "creating".
// Payloads with isDataProtection=true go to the DataProtectionVolumes
// endpoint (secondary volumes for replication). The returned record may
// still carry an error lifecycle state; callers check it.
func (c *Client) CreateVolume(ctx context.Context, region string, payload map[string]any, window time.Duration) (Volume, error) {
	path := "Volumes"
	if dp, ok := payload["isDataProtection"].(bool); ok && dp {
		path = "DataProtectionVolumes"
	}

	res, err := c.post(ctx, region, path, payload)
	if err != nil {
		return Volume{}, err
	}
	volumeID, err := res.ResourceID("volumeId")
	if err != nil {
		return Volume{}, err
	}

	if res.Accepted() {
		if _, err := AwaitTerminal(ctx, PollSpec{
			ResourceID: volumeID,
			Region:     region,
			Interval:   c.volumePoll,
			Window:     window,
			Fetch:      c.fetchVolumeState,
			Terminal:   StateLeft(StateCreating),
		}); err != nil {
			return Volume{}, err
		}
	}

	log.Info().
		Str("action", "volume_create").
		Str("region", region).
		Str("volume", volumeID).
		Msg("volume created")
	return c.VolumeByID(ctx, region, volumeID)
}

// ModifyVolume applies a partial update to a volume.
func (c *Client) ModifyVolume(ctx context.Context, region, volumeID string, changes map[string]any) (Volume, error) {
	var v Volume
	err := c.put(ctx, region, "Volumes/"+volumeID, changes, &v)
	return v, err
}

// ResizeVolume sets a volume's quota in bytes.
func (c *Client) ResizeVolume(ctx context.Context, region, volumeID string, newSize int64) (Volume, error) {
	return c.ModifyVolume(ctx, region, volumeID, map[string]any{"quotaInBytes": newSize})
}

// SetServiceLevel changes a volume's service level. level is the UI name
// (standard, premium, extreme); translation to the API name goes through
// the table.
func (c *Client) SetServiceLevel(ctx context.Context, region, volumeID, level string) error {
	api, err := ServiceLevelUIToAPI(level)
	if err != nil {
		return err
	}
	_, err = c.ModifyVolume(ctx, region, volumeID, map[string]any{"serviceLevel": api})
	return err
}

// DeleteVolume deletes a volume, retrying through job-slot contention.
func (c *Client) DeleteVolume(ctx context.Context, region, volumeID string) error {
	_, err := c.delete(ctx, region, "Volumes/"+volumeID)
	return err
}

func (c *Client) fetchVolumeState(ctx context.Context, volumeID, region string) (ResourceState, error) {
	v, err := c.VolumeByID(ctx, region, volumeID)
	if err != nil {
		return ResourceState{}, err
	}
	return ResourceState{ID: volumeID, State: v.LifeCycleState, Detail: v.LifeCycleStateDetails}, nil
}
