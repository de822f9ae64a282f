package rotation

import (
	"testing"
	"time"
)

func TestBackupName(t *testing.T) {
	ts := time.Date(2026, 8, 23, 14, 7, 59, 0, time.UTC)
	got := BackupName("data", "704eae52-9010-ea4d-0408-08ca39ffb67f", ts)
	want := "data-704eae-2026-08-23T14:07"
	if got != want {
		t.Fatalf("BackupName = %q, want %q", got, want)
	}
}

func TestNamePatternMatchesOwnNames(t *testing.T) {
	p := namePattern("data")
	ts := time.Date(2026, 8, 23, 14, 7, 0, 0, time.UTC)
	if !p.MatchString(BackupName("data", "704eae52", ts)) {
		t.Fatal("generated name must match its own pattern")
	}
}

func TestNamePatternRejectsForeignNames(t *testing.T) {
	p := namePattern("data")
	for _, name := range []string{
		"manual-backup",
		"data-before-migration",
		"other-704eae-2026-08-23T14:07",          // different volume
		"data-704eae-2026-08-23T14:07:59",        // second resolution
		"data-704eae-2026-08-23T14:07-extra",     // trailing junk
		"prefix-data-704eae-2026-08-23T14:07",    // leading junk
		"data-704eae-2026-08-23",                 // date only
	} {
		if p.MatchString(name) {
			t.Errorf("pattern must not match %q", name)
		}
	}
}

func TestNamePatternQuotesVolumeName(t *testing.T) {
	// A dot in the volume name must match literally, not as a wildcard.
	p := namePattern("db.prod")
	if p.MatchString("dbxprod-704eae-2026-08-23T14:07") {
		t.Fatal("metacharacters in the volume name must be literal")
	}
	if !p.MatchString("db.prod-704eae-2026-08-23T14:07") {
		t.Fatal("literal name must match")
	}
}

func TestParseNameTimeRoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 23, 14, 7, 0, 0, time.UTC)
	got, err := parseNameTime(BackupName("data", "704eae52", ts))
	if err != nil {
		t.Fatalf("parseNameTime: %v", err)
	}
	if !got.Equal(ts) {
		t.Fatalf("got %v, want %v", got, ts)
	}
	if _, err := parseNameTime("x"); err == nil {
		t.Fatal("expected error for short name")
	}
}

func TestParseCreated(t *testing.T) {
	for _, in := range []string{
		"2026-08-23T14:07:59Z",
		"2026-08-23T14:07:59",
	} {
		got, err := parseCreated(in)
		if err != nil {
			t.Fatalf("parseCreated(%q): %v", in, err)
		}
		if got.Minute() != 7 || got.Second() != 59 {
			t.Fatalf("parseCreated(%q) = %v", in, got)
		}
	}
	if _, err := parseCreated("yesterday"); err == nil {
		t.Fatal("expected error")
	}
}
