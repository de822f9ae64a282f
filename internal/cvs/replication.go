package cvs

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Replication relationship states beyond the shared lifecycle values.
const (
	MirrorBroken       = "broken"
	RelationshipIdle   = "idle"
	ReplicationPolicy  = "MirrorAllSnapshots"
	EndpointDst        = "dst"
	reversedNameSuffix = "-reversed"
)

// validSchedules are the replication schedules the service accepts.
var validSchedules = map[string]bool{
	"10minutely": true,
	"hourly":     true,
	"daily":      true,
}

// Replications lists all replication relationships in a region.
func (c *Client) Replications(ctx context.Context, region string) ([]Replication, error) {
	var rels []Replication
	err := c.get(ctx, region, "VolumeReplications", &rels)
	return rels, err
}

// ReplicationByID fetches one relationship.
func (c *Client) ReplicationByID(ctx context.Context, region, relationshipID string) (Replication, error) {
	var r Replication
	err := c.get(ctx, region, "VolumeReplications/"+relationshipID, &r)
	return r, err
}

// ReplicationsByName returns the relationships named name in a region.
func (c *Client) ReplicationsByName(ctx context.Context, region, name string) ([]Replication, error) {
	all, err := c.Replications(ctx, region)
	if err != nil {
		return nil, err
	}
	var matches []Replication
	for _, r := range all {
		if r.Name == name {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// CreateReplication establishes a relationship mirroring source into
// destination. The destination must be a data-protection volume that is
// not already replicating; the relationship is managed in the
// destination's region.
func (c *Client) CreateReplication(ctx context.Context, name string, source, destination Volume, schedule string) (ProvisionalResult, error) {
	if !destination.IsDataProtection {
		return ProvisionalResult{}, &ValidationError{
			Reason: "volume " + destination.VolumeID + " must be a secondary/data-protection volume",
		}
	}
	if destination.InReplication {
		return ProvisionalResult{}, &ValidationError{
			Reason: "volume " + destination.VolumeID + " is already in a replication relationship",
		}
	}
	if !validSchedules[schedule] {
		return ProvisionalResult{}, &ValidationError{
			Reason: "invalid schedule " + schedule + " (10minutely|hourly|daily)",
		}
	}

	payload := map[string]any{
		"destinationVolumeUUID": destination.VolumeID,
		"endpointType":          EndpointDst,
		"name":                  name,
		"remoteRegion":          source.Region,
		"replicationPolicy":     ReplicationPolicy,
		"replicationSchedule":   schedule,
		"sourceVolumeUUID":      source.VolumeID,
	}
	log.Info().
		Str("action", "replication_create").
		Str("name", name).
		Str("source", source.VolumeID).
		Str("destination", destination.VolumeID).
		Str("schedule", schedule).
		Msg("creating replication relationship")
	return c.post(ctx, destination.Region, "VolumeReplications", payload)
}

// BreakReplication breaks a relationship and waits until it settles into
// "available". An "error" terminal surfaces the service detail as a
// RemoteError.
func (c *Client) BreakReplication(ctx context.Context, destinationRegion, relationshipID string, force bool) (Replication, error) {
	_, err := c.post(ctx, destinationRegion, "VolumeReplications/"+relationshipID+"/Break",
		map[string]any{"force": force})
	if err != nil {
		return Replication{}, err
	}

	if _, err := AwaitTerminal(ctx, PollSpec{
		ResourceID: relationshipID,
		Region:     destinationRegion,
		Interval:   c.breakPoll,
		Window:     BreakWindow,
		Fetch:      c.fetchReplicationState,
		Terminal:   StateReached(StateAvailable),
	}); err != nil {
		return Replication{}, err
	}

	log.Info().
		Str("action", "replication_break").
		Str("region", destinationRegion).
		Str("relationship", relationshipID).
		Bool("force", force).
		Msg("replication broken")
	return c.ReplicationByID(ctx, destinationRegion, relationshipID)
}

// ResyncReplication re-establishes a broken relationship in its original
// direction.
func (c *Client) ResyncReplication(ctx context.Context, destinationRegion, relationshipID string) error {
	_, err := c.post(ctx, destinationRegion, "VolumeReplications/"+relationshipID+"/Resync",
		map[string]any{})
	return err
}

// ReverseReplication creates a new relationship with source and
// destination swapped, named "<name>-reversed". The existing relationship
// must be broken and idle first.
func (c *Client) ReverseReplication(ctx context.Context, region, relationshipID string) (ProvisionalResult, error) {
	rel, err := c.ReplicationByID(ctx, region, relationshipID)
	if err != nil {
		return ProvisionalResult{}, err
	}
	if rel.MirrorState != MirrorBroken {
		return ProvisionalResult{}, &ValidationError{
			Reason: "relationship " + relationshipID + " mirror is not broken",
		}
	}
	if rel.RelationshipStatus != RelationshipIdle {
		return ProvisionalResult{}, &ValidationError{
			Reason: "relationship " + relationshipID + " is not idle",
		}
	}

	payload := map[string]any{
		"destinationVolumeUUID": rel.SourceVolumeUUID,
		"sourceVolumeUUID":      rel.DestinationVolumeUUID,
		"remoteRegion":          rel.DestinationRegion,
		"endpointType":          EndpointDst,
		"name":                  rel.Name + reversedNameSuffix,
		"replicationPolicy":     rel.ReplicationPolicy,
		"replicationSchedule":   rel.ReplicationSchedule,
	}
	log.Info().
		Str("action", "replication_reverse").
		Str("relationship", relationshipID).
		Str("name", rel.Name+reversedNameSuffix).
		Msg("creating reversed relationship")
	return c.post(ctx, rel.RemoteRegion, "VolumeReplications", payload)
}

// DeleteReplication deletes a relationship.
func (c *Client) DeleteReplication(ctx context.Context, region, relationshipID string) error {
	_, err := c.delete(ctx, region, "VolumeReplications/"+relationshipID)
	return err
}

func (c *Client) fetchReplicationState(ctx context.Context, relationshipID, region string) (ResourceState, error) {
	r, err := c.ReplicationByID(ctx, region, relationshipID)
	if err != nil {
		return ResourceState{}, err
	}
	return ResourceState{ID: relationshipID, State: r.LifeCycleState, Detail: r.LifeCycleStateDetails}, nil
}
