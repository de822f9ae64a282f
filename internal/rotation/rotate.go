package rotation

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cvstools/cvs-operator/internal/cvs"
)

// maxKeep leaves headroom of two below the service cap: rotation creates
// the new backup before pruning, and one slot stays free for manual use.
const maxKeep = cvs.MaxBackupsPerVolume - 2

// API is the slice of the CVS client the rotation engine needs.
type API interface {
	VolumeByID(ctx context.Context, region, volumeID string) (cvs.Volume, error)
	VolumeBackups(ctx context.Context, region, volumeID string) ([]cvs.Backup, error)
	CreateBackup(ctx context.Context, region, volumeID, name string, window time.Duration) (cvs.Backup, error)
	DeleteBackup(ctx context.Context, region, backupID string) error
}

// Plan describes one rotation: take a fresh backup of the volume, then
// keep only the Keep newest rotation backups.
type Plan struct {
	Region   string
	VolumeID string
	// Keep is the retention count, 1..30.
	Keep int
	// Window bounds the wait for the new backup to become available.
	// Zero waits until terminal.
	Window time.Duration
}

// PruneFailure records one delete that failed during pruning.
type PruneFailure struct {
	BackupID string
	Name     string
	Err      error
}

// Outcome reports what a rotation did. Prune failures are per-item; the
// new backup already exists, so they do not fail the rotation.
type Outcome struct {
	BackupID   string
	BackupName string
	Pruned     int
	Failures   []PruneFailure
}

// now is a seam for tests.
var now = time.Now

// Rotate creates a timestamp-named backup of the volume, waits for it to
// become available, and deletes the oldest rotation backups beyond
// plan.Keep. Creation strictly precedes pruning: if the new backup never
// materializes, nothing is deleted. Backups whose names do not match the
// rotation pattern are never touched.
func Rotate(ctx context.Context, api API, plan Plan) (Outcome, error) {
	if plan.Keep < 1 || plan.Keep > maxKeep {
		return Outcome{}, &cvs.ValidationError{
			Reason: "retention count must be between 1 and " + strconv.Itoa(maxKeep),
		}
	}
	// BackupName embeds the first 6 characters of the id.
	if len(plan.VolumeID) < 6 {
		return Outcome{}, &cvs.ValidationError{
			Reason: "volume id " + plan.VolumeID + " is too short for a rotation name",
		}
	}

	backups, err := api.VolumeBackups(ctx, plan.Region, plan.VolumeID)
	if err != nil {
		return Outcome{}, err
	}
	if len(backups) >= cvs.MaxBackupsPerVolume {
		return Outcome{}, &cvs.QuotaExceededError{
			VolumeID: plan.VolumeID,
			Max:      cvs.MaxBackupsPerVolume,
		}
	}
	log.Info().
		Str("action", "rotate").
		Str("region", plan.Region).
		Str("volume", plan.VolumeID).
		Int("backups", len(backups)).
		Int("keep", plan.Keep).
		Msg("starting rotation")

	vol, err := api.VolumeByID(ctx, plan.Region, plan.VolumeID)
	if err != nil {
		return Outcome{}, err
	}

	name := BackupName(vol.Name, plan.VolumeID, now())
	created, err := api.CreateBackup(ctx, plan.Region, plan.VolumeID, name, plan.Window)
	if err != nil {
		// No pruning without a confirmed new backup.
		return Outcome{}, err
	}
	out := Outcome{BackupID: created.BackupID, BackupName: name}

	backups, err = api.VolumeBackups(ctx, plan.Region, plan.VolumeID)
	if err != nil {
		return out, err
	}

	pattern := namePattern(vol.Name)
	var rotated []cvs.Backup
	for _, b := range backups {
		if pattern.MatchString(b.Name) {
			rotated = append(rotated, b)
		}
	}
	// Newest first, by the service-reported creation time. Records with an
	// unparseable timestamp sort oldest so they age out first.
	sort.SliceStable(rotated, func(i, j int) bool {
		ti, erri := parseCreated(rotated[i].Created)
		tj, errj := parseCreated(rotated[j].Created)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})

	if len(rotated) <= plan.Keep {
		return out, nil
	}
	excess := rotated[plan.Keep:]
	log.Info().
		Str("action", "rotate").
		Str("region", plan.Region).
		Str("volume", vol.Name).
		Int("prune", len(excess)).
		Msg("pruning old backups")

	// Oldest first, so an interrupted prune leaves the most recent history.
	for i := len(excess) - 1; i >= 0; i-- {
		b := excess[i]
		if err := api.DeleteBackup(ctx, plan.Region, b.BackupID); err != nil {
			log.Error().Err(err).
				Str("action", "rotate_prune").
				Str("backup", b.BackupID).
				Str("name", b.Name).
				Msg("prune failed")
			out.Failures = append(out.Failures, PruneFailure{BackupID: b.BackupID, Name: b.Name, Err: err})
			continue
		}
		out.Pruned++
	}
	return out, nil
}
