package config

import (
	"testing"
	"time"

	"github.com/cvstools/cvs-operator/internal/retry"
)

func TestLoadRequiresServiceAccount(t *testing.T) {
	t.Setenv("CVS_SERVICE_ACCOUNT", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without CVS_SERVICE_ACCOUNT")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CVS_SERVICE_ACCOUNT", "sa@proj.iam.gserviceaccount.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Region != "-" {
		t.Errorf("Region = %q, want -", cfg.Region)
	}
	if cfg.RetryWindow != retry.Default.Window {
		t.Errorf("RetryWindow = %v", cfg.RetryWindow)
	}
	if cfg.RetryBackoffMin != retry.Default.BackoffMin || cfg.RetryBackoffMax != retry.Default.BackoffMax {
		t.Errorf("backoff = %v..%v", cfg.RetryBackoffMin, cfg.RetryBackoffMax)
	}
	if cfg.CreateWindow != 15*time.Minute || cfg.BackupWindow != 10*time.Minute {
		t.Errorf("windows = %v, %v", cfg.CreateWindow, cfg.BackupWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CVS_SERVICE_ACCOUNT", "key.json")
	t.Setenv("CVS_PROJECT", "my-project")
	t.Setenv("CVS_REGION", "us-west2")
	t.Setenv("CVS_RETRY_WINDOW", "2m")
	t.Setenv("CVS_RETRY_BACKOFF_MIN", "1s")
	t.Setenv("CVS_RETRY_BACKOFF_MAX", "3s")
	t.Setenv("CVS_BACKUP_WINDOW", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project != "my-project" || cfg.Region != "us-west2" {
		t.Errorf("cfg = %+v", cfg)
	}
	b := cfg.WriteBudget()
	if b.Window != 2*time.Minute || b.BackoffMin != time.Second || b.BackoffMax != 3*time.Second {
		t.Errorf("budget = %+v", b)
	}
	// Explicit zero means poll until terminal.
	if cfg.BackupWindow != 0 {
		t.Errorf("BackupWindow = %v, want 0", cfg.BackupWindow)
	}
}

func TestLoadRejectsInvertedBackoff(t *testing.T) {
	t.Setenv("CVS_SERVICE_ACCOUNT", "key.json")
	t.Setenv("CVS_RETRY_BACKOFF_MIN", "10s")
	t.Setenv("CVS_RETRY_BACKOFF_MAX", "1s")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for max < min")
	}
}

func TestLoadIgnoresMalformedDurations(t *testing.T) {
	t.Setenv("CVS_SERVICE_ACCOUNT", "key.json")
	t.Setenv("CVS_RETRY_WINDOW", "soon")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RetryWindow != retry.Default.Window {
		t.Errorf("RetryWindow = %v, want default", cfg.RetryWindow)
	}
}
