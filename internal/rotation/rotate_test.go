package rotation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cvstools/cvs-operator/internal/cvs"
)

/* ----------------------------- test harness ----------------------------- */

type fakeAPI struct {
	volume  cvs.Volume
	backups []cvs.Backup

	created     []string // names passed to CreateBackup
	deleted     []string // backup ids passed to DeleteBackup
	createErr   error
	deleteFails map[string]error
	listCalls   int
	lookupCalls int
}

func (f *fakeAPI) VolumeByID(ctx context.Context, region, volumeID string) (cvs.Volume, error) {
	f.lookupCalls++
	return f.volume, nil
}

func (f *fakeAPI) VolumeBackups(ctx context.Context, region, volumeID string) ([]cvs.Backup, error) {
	f.listCalls++
	out := make([]cvs.Backup, len(f.backups))
	copy(out, f.backups)
	return out, nil
}

func (f *fakeAPI) CreateBackup(ctx context.Context, region, volumeID, name string, window time.Duration) (cvs.Backup, error) {
	if f.createErr != nil {
		return cvs.Backup{}, f.createErr
	}
	f.created = append(f.created, name)
	b := cvs.Backup{
		BackupID:       fmt.Sprintf("b-new-%d", len(f.created)),
		Name:           name,
		VolumeID:       volumeID,
		Created:        now().UTC().Format(time.RFC3339),
		LifeCycleState: cvs.StateAvailable,
	}
	f.backups = append(f.backups, b)
	return b, nil
}

func (f *fakeAPI) DeleteBackup(ctx context.Context, region, backupID string) error {
	if err := f.deleteFails[backupID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, backupID)
	return nil
}

// rotatedFixture builds n rotation backups for volume "data"/v-704eae52,
// one per day, oldest first: b-0 is the oldest.
func rotatedFixture(n int) []cvs.Backup {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	out := make([]cvs.Backup, 0, n)
	for i := 0; i < n; i++ {
		ts := base.AddDate(0, 0, i)
		out = append(out, cvs.Backup{
			BackupID: fmt.Sprintf("b-%d", i),
			Name:     BackupName("data", "704eae52", ts),
			Created:  ts.Format(time.RFC3339),
		})
	}
	return out
}

func withNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

/* --------------------------------- tests -------------------------------- */

func TestRotateKeepOutOfRange(t *testing.T) {
	api := &fakeAPI{}
	for _, keep := range []int{0, 31, -3} {
		_, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "v-1", Keep: keep})
		var verr *cvs.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("keep=%d: err = %v, want ValidationError", keep, err)
		}
	}
	if api.listCalls != 0 || api.lookupCalls != 0 || len(api.created) != 0 {
		t.Fatal("validation failures must not reach the API")
	}
}

func TestRotateRejectsShortVolumeID(t *testing.T) {
	api := &fakeAPI{}
	_, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "v-1", Keep: 3})
	var verr *cvs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if api.listCalls != 0 || api.lookupCalls != 0 || len(api.created) != 0 {
		t.Fatal("short-id failure must not reach the API")
	}
}

func TestRotateQuotaFull(t *testing.T) {
	api := &fakeAPI{backups: rotatedFixture(cvs.MaxBackupsPerVolume)}
	_, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "704eae52-9010", Keep: 3})
	var qerr *cvs.QuotaExceededError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want QuotaExceededError", err)
	}
	if len(api.created) != 0 || len(api.deleted) != 0 {
		t.Fatal("quota failure must not create or delete anything")
	}
}

func TestRotatePrunesOldestMatching(t *testing.T) {
	withNow(t, time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC))

	// 6 rotation backups plus 2 manual ones; the create adds a 7th.
	backups := rotatedFixture(6)
	backups = append(backups,
		cvs.Backup{BackupID: "b-manual-1", Name: "before-upgrade", Created: "2026-07-01T00:00:00Z"},
		cvs.Backup{BackupID: "b-manual-2", Name: "data-keep-forever", Created: "2026-07-02T00:00:00Z"},
	)
	api := &fakeAPI{
		volume:  cvs.Volume{VolumeID: "704eae52-9010", Name: "data"},
		backups: backups,
	}

	out, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "704eae52-9010", Keep: 3})
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	if len(api.created) != 1 {
		t.Fatalf("created = %v, want one new backup", api.created)
	}
	if api.created[0] != "data-704eae-2026-08-23T10:30" {
		t.Fatalf("backup name = %q", api.created[0])
	}
	if out.BackupName != api.created[0] || out.BackupID == "" {
		t.Fatalf("outcome = %+v", out)
	}

	// 7 matching after create, keep 3: the 4 oldest go, oldest first.
	want := []string{"b-0", "b-1", "b-2", "b-3"}
	if len(api.deleted) != len(want) {
		t.Fatalf("deleted = %v, want %v", api.deleted, want)
	}
	for i := range want {
		if api.deleted[i] != want[i] {
			t.Fatalf("deleted = %v, want %v (oldest first)", api.deleted, want)
		}
	}
	if out.Pruned != 4 || len(out.Failures) != 0 {
		t.Fatalf("Pruned = %d, Failures = %v", out.Pruned, out.Failures)
	}
}

func TestRotateNeverTouchesManualBackups(t *testing.T) {
	withNow(t, time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC))
	api := &fakeAPI{
		volume: cvs.Volume{VolumeID: "704eae52-9010", Name: "data"},
		backups: []cvs.Backup{
			{BackupID: "b-manual", Name: "golden-image", Created: "2020-01-01T00:00:00Z"},
		},
	}
	out, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "704eae52-9010", Keep: 1})
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if out.Pruned != 0 || len(api.deleted) != 0 {
		t.Fatalf("manual backup was pruned: %v", api.deleted)
	}
}

func TestRotateCreateFailureSkipsPruning(t *testing.T) {
	api := &fakeAPI{
		volume:    cvs.Volume{VolumeID: "704eae52-9010", Name: "data"},
		backups:   rotatedFixture(6),
		createErr: &cvs.TimeoutError{Op: "poll", ResourceID: "b-new"},
	}
	_, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "704eae52-9010", Keep: 1})
	var terr *cvs.TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want the create error", err)
	}
	if len(api.deleted) != 0 {
		t.Fatal("nothing may be pruned when the new backup is unconfirmed")
	}
}

func TestRotatePartialPruneFailureIsPerItem(t *testing.T) {
	withNow(t, time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC))
	api := &fakeAPI{
		volume:      cvs.Volume{VolumeID: "704eae52-9010", Name: "data"},
		backups:     rotatedFixture(6),
		deleteFails: map[string]error{"b-1": &cvs.PermanentError{StatusCode: 500, Message: "boom"}},
	}
	out, err := Rotate(context.Background(), api, Plan{Region: "us-west1", VolumeID: "704eae52-9010", Keep: 3})
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	// 7 matching, keep 3: b-0..b-3 go; b-1 fails but the rest proceed.
	if out.Pruned != 3 {
		t.Fatalf("Pruned = %d, want 3", out.Pruned)
	}
	if len(out.Failures) != 1 || out.Failures[0].BackupID != "b-1" {
		t.Fatalf("Failures = %+v", out.Failures)
	}
}
