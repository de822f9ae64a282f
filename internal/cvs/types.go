package cvs

import "encoding/json"

// Resource lifecycle states reported by the service.
const (
	StateCreating  = "creating"
	StateAvailable = "available"
	StateError     = "error"
)

// Volume is the subset of the CVS volume record the orchestration layer
// reads. Create payloads stay schemaless (map[string]any); see the swagger
// document for the full shape.
type Volume struct {
	VolumeID              string `json:"volumeId"`
	Name                  string `json:"name"`
	Region                string `json:"region"`
	LifeCycleState        string `json:"lifeCycleState"`
	LifeCycleStateDetails string `json:"lifeCycleStateDetails"`
	QuotaInBytes          int64  `json:"quotaInBytes"`
	ServiceLevel          string `json:"serviceLevel"`
	IsDataProtection      bool   `json:"isDataProtection"`
	InReplication         bool   `json:"inReplication"`
}

// Pool is a CVS storage pool. Pools report their lifecycle in "state",
// volumes in "lifeCycleState".
type Pool struct {
	PoolID       string `json:"poolId"`
	Name         string `json:"name"`
	Region       string `json:"region"`
	State        string `json:"state"`
	SizeInBytes  int64  `json:"sizeInBytes"`
	ServiceLevel string `json:"serviceLevel"`
}

type Snapshot struct {
	SnapshotID     string `json:"snapshotId"`
	Name           string `json:"name"`
	VolumeID       string `json:"volumeId"`
	Created        string `json:"created"`
	LifeCycleState string `json:"lifeCycleState"`
}

type Backup struct {
	BackupID              string `json:"backupId"`
	Name                  string `json:"name"`
	VolumeID              string `json:"volumeId"`
	Created               string `json:"created"`
	LifeCycleState        string `json:"lifeCycleState"`
	LifeCycleStateDetails string `json:"lifeCycleStateDetails"`
	BytesTransferred      int64  `json:"bytesTransferred"`
}

// Replication is a cross-region volume replication relationship.
type Replication struct {
	RelationshipID        string `json:"relationshipId"`
	Name                  string `json:"name"`
	LifeCycleState        string `json:"lifeCycleState"`
	LifeCycleStateDetails string `json:"lifeCycleStateDetails"`
	MirrorState           string `json:"mirrorState"`
	RelationshipStatus    string `json:"relationshipStatus"`
	SourceVolumeUUID      string `json:"sourceVolumeUUID"`
	DestinationVolumeUUID string `json:"destinationVolumeUUID"`
	RemoteRegion          string `json:"remoteRegion"`
	DestinationRegion     string `json:"destinationRegion"`
	ReplicationPolicy     string `json:"replicationPolicy"`
	ReplicationSchedule   string `json:"replicationSchedule"`
}

// KMSConfig and ADConfig are pass-through records; the client never
// interprets their fields beyond the identifier.
type KMSConfig struct {
	UUID  string `json:"uuid"`
	State string `json:"state"`
}

type ADConfig struct {
	UUID   string `json:"UUID"`
	Domain string `json:"domain"`
	Region string `json:"region"`
}

// VersionInfo is the per-region API/SDE version record; fetching it also
// serves as a permission check.
type VersionInfo struct {
	APIVersion string `json:"apiVersion"`
	SDEVersion string `json:"sdeVersion"`
}

// apiError is the error body the service returns alongside non-2xx
// statuses.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// apiMessage extracts the service's message field from an error body.
// Bodies that fail to parse are returned verbatim, truncated.
func apiMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	const max = 512
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}

// anyValueEnvelope is the provisional-accept wrapper carrying the new
// resource's identifier, e.g.
// {"response":{"AnyValue":{"volumeId":"..."}}}.
type anyValueEnvelope struct {
	Response struct {
		AnyValue map[string]json.RawMessage `json:"AnyValue"`
	} `json:"response"`
}

// acceptedResourceID pulls the type-specific id field (volumeId, poolId,
// backupId) out of a provisional-accept body.
func acceptedResourceID(body []byte, field string) (string, error) {
	var env anyValueEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", err
	}
	raw, ok := env.Response.AnyValue[field]
	if !ok {
		return "", &ValidationError{Reason: "response is missing " + field}
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", err
	}
	return id, nil
}
