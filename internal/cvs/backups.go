package cvs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxBackupsPerVolume is the service-side cap on backups per volume.
const MaxBackupsPerVolume = 32

// Backups lists all backups in a region ("-" for all regions).
func (c *Client) Backups(ctx context.Context, region string) ([]Backup, error) {
	var backups []Backup
	err := c.get(ctx, region, "Backups", &backups)
	return backups, err
}

// VolumeBackups lists the backups of one volume.
func (c *Client) VolumeBackups(ctx context.Context, region, volumeID string) ([]Backup, error) {
	var backups []Backup
	err := c.get(ctx, region, "Volumes/"+volumeID+"/Backups", &backups)
	return backups, err
}

// BackupByID fetches one backup.
func (c *Client) BackupByID(ctx context.Context, region, backupID string) (Backup, error) {
	var b Backup
	err := c.get(ctx, region, "Backups/"+backupID, &b)
	return b, err
}

// CreateBackup creates a named backup of a volume and waits until it
// reaches "available". window bounds the wait; zero polls until terminal.
func (c *Client) CreateBackup(ctx context.Context, region, volumeID, name string, window time.Duration) (Backup, error) {
	res, err := c.post(ctx, region, "Backups", map[string]any{
		"name":     name,
		"volumeId": volumeID,
	})
	if err != nil {
		return Backup{}, err
	}
	backupID, err := res.ResourceID("backupId")
	if err != nil {
		return Backup{}, err
	}

	if _, err := AwaitTerminal(ctx, PollSpec{
		ResourceID: backupID,
		Region:     region,
		Interval:   c.backupPoll,
		Window:     window,
		Fetch:      c.fetchBackupState,
		Terminal:   StateReached(StateAvailable),
	}); err != nil {
		return Backup{}, err
	}

	log.Info().
		Str("action", "backup_create").
		Str("region", region).
		Str("volume", volumeID).
		Str("backup", backupID).
		Str("name", name).
		Msg("backup available")
	return c.BackupByID(ctx, region, backupID)
}

// DeleteBackup deletes one backup, retrying through job-slot contention.
func (c *Client) DeleteBackup(ctx context.Context, region, backupID string) error {
	_, err := c.delete(ctx, region, "Backups/"+backupID)
	if err != nil {
		return err
	}
	log.Info().
		Str("action", "backup_delete").
		Str("region", region).
		Str("backup", backupID).
		Msg("backup deleted")
	return nil
}

// DeleteBackupByName finds the single backup of a volume with the given
// name and deletes it. No match is a validation failure, not a silent
// no-op.
func (c *Client) DeleteBackupByName(ctx context.Context, region, volumeID, name string) error {
	backups, err := c.VolumeBackups(ctx, region, volumeID)
	if err != nil {
		return err
	}
	var found []Backup
	for _, b := range backups {
		if b.Name == name {
			found = append(found, b)
		}
	}
	if len(found) != 1 {
		return &ValidationError{Reason: "backup name " + name + " does not identify exactly one backup"}
	}
	return c.DeleteBackup(ctx, region, found[0].BackupID)
}

func (c *Client) fetchBackupState(ctx context.Context, backupID, region string) (ResourceState, error) {
	b, err := c.BackupByID(ctx, region, backupID)
	if err != nil {
		return ResourceState{}, err
	}
	return ResourceState{ID: backupID, State: b.LifeCycleState, Detail: b.LifeCycleStateDetails}, nil
}
