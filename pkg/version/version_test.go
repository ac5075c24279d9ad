package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })

	Version, Commit, Date = "v1.2.0", "abc123", "2026-01-02"
	if got, want := GetFullVersion(), "v1.2.0 (commit: abc123, built: 2026-01-02)"; got != want {
		t.Errorf("GetFullVersion() = %q, want %q", got, want)
	}
	if GetVersion() != "v1.2.0" {
		t.Errorf("GetVersion() = %q", GetVersion())
	}
}
