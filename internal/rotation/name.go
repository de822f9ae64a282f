package rotation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Rotation backups are named <volumeName>-<volumeID[:6]>-<timestamp>,
// timestamp at minute resolution. Only names matching this exact shape are
// ever pruned; manually created backups never match.
const nameTimeLayout = "2006-01-02T15:04"

// BackupName builds the rotation name for a backup taken at t. Two
// rotations of the same volume within one minute collide on purpose: the
// second create fails as a name conflict instead of doubling up.
func BackupName(volumeName, volumeID string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s", volumeName, volumeID[:6], t.Format(nameTimeLayout))
}

// namePattern matches names generated by BackupName for the given volume.
// Anchored at both ends so a name with extra trailing characters (for
// example second-resolution timestamps) is not ours.
func namePattern(volumeName string) *regexp.Regexp {
	return regexp.MustCompile(
		`^` + regexp.QuoteMeta(volumeName) + `-.{6}-\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)
}

// parseNameTime extracts the embedded timestamp from a rotation name.
// The timestamp itself contains '-', so it is taken as a fixed-width tail
// rather than split on the separator.
func parseNameTime(name string) (time.Time, error) {
	if len(name) < len(nameTimeLayout) {
		return time.Time{}, fmt.Errorf("name %q too short for a rotation timestamp", name)
	}
	return time.Parse(nameTimeLayout, name[len(name)-len(nameTimeLayout):])
}

// parseCreated parses the service-reported creation timestamp of a backup
// record. The API emits RFC3339; older records drop the zone suffix.
func parseCreated(created string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(created, "Z"))
}
