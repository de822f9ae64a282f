package version

import (
	"strings"
	"testing"
)

func TestInfoCarriesStampedFields(t *testing.T) {
	got := Info()
	if !strings.Contains(got, Version) || !strings.Contains(got, Commit) || !strings.Contains(got, BuildDate) {
		t.Fatalf("Info() = %q", got)
	}
}

func TestUserAgentNamesClient(t *testing.T) {
	if !strings.HasPrefix(UserAgent(), "cvs-operator/") {
		t.Fatalf("UserAgent() = %q", UserAgent())
	}
}
