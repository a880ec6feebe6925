package cli

import "testing"

func TestResolveVersionInfo(t *testing.T) {
	restore := func(v, c, d string) func() {
		return func() { version, commit, date = v, c, d }
	}

	t.Run("ldflags value wins", func(t *testing.T) {
		t.Cleanup(restore(version, commit, date))

		version = "1.2.3"
		if v, _, _ := resolveVersionInfo(); v != "1.2.3" {
			t.Errorf("version = %q, want the ldflags value 1.2.3", v)
		}
	})

	t.Run("falls back to build info", func(t *testing.T) {
		t.Cleanup(restore(version, commit, date))

		version, commit, date = "dev", "unknown", "unknown"
		v, c, d := resolveVersionInfo()

		// A test binary carries synthetic module info; all that matters is
		// that resolution completes and yields something printable.
		if v == "" {
			t.Error("version should never resolve to empty")
		}
		t.Logf("resolved: version=%s commit=%s date=%s", v, c, d)
	})
}
