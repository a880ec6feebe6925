package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// tempPgpass points PGPASSFILE at a fresh location and returns it.
func tempPgpass(t *testing.T, elems ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{t.TempDir()}, elems...)...)
	t.Setenv("PGPASSFILE", path)
	return path
}

func connFor(host string, port int, database, username, password string) *tabload.ConnectionConfig {
	return &tabload.ConnectionConfig{
		Host: host, Port: port, Database: database,
		Username: username, Password: password,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestEscapePgpass(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"", ""},
		{"pass:word", `pass\:word`},
		{`back\slash`, `back\\slash`},
		{`both\:chars`, `both\\\:chars`},
		{`\:\`, `\\\:\\`},
		{"multi:colon:password", `multi\:colon\:password`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapePgpass(tt.input); got != tt.want {
				t.Errorf("escapePgpass(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWritePgpassEntry_NewFile(t *testing.T) {
	path := tempPgpass(t, "pgpass.conf")

	if err := writePgpassEntry(connFor("localhost", 5432, "testdb", "user", "secret")); err != nil {
		t.Fatalf("writePgpassEntry: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 1 || lines[0] != "localhost:5432:testdb:user:secret" {
		t.Errorf("file lines = %q, want one entry", lines)
	}
}

func TestWritePgpassEntry_UpdatesExisting(t *testing.T) {
	path := tempPgpass(t, "pgpass.conf")
	seed := "otherhost:5432:otherdb:otheruser:oldpass\nlocalhost:5432:testdb:user:oldpass\n"
	if err := os.WriteFile(path, []byte(seed), 0600); err != nil {
		t.Fatal(err)
	}

	if err := writePgpassEntry(connFor("localhost", 5432, "testdb", "user", "newpass")); err != nil {
		t.Fatalf("writePgpassEntry: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2: %q", len(lines), lines)
	}
	if lines[0] != "otherhost:5432:otherdb:otheruser:oldpass" {
		t.Errorf("unrelated entry was modified: %q", lines[0])
	}
	if lines[1] != "localhost:5432:testdb:user:newpass" {
		t.Errorf("matching entry = %q, want the new password in place", lines[1])
	}
}

func TestWritePgpassEntry_AppendsNew(t *testing.T) {
	path := tempPgpass(t, "pgpass.conf")
	if err := os.WriteFile(path, []byte("otherhost:5432:otherdb:otheruser:pass\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := writePgpassEntry(connFor("newhost", 5433, "newdb", "newuser", "newpass")); err != nil {
		t.Fatalf("writePgpassEntry: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2: %q", len(lines), lines)
	}
	if lines[1] != "newhost:5433:newdb:newuser:newpass" {
		t.Errorf("appended line = %q", lines[1])
	}
}

func TestWritePgpassEntry_EscapesPassword(t *testing.T) {
	path := tempPgpass(t, "pgpass.conf")

	if err := writePgpassEntry(connFor("localhost", 5432, "db", "user", `p:a\ss`)); err != nil {
		t.Fatalf("writePgpassEntry: %v", err)
	}

	lines := readLines(t, path)
	if want := `localhost:5432:db:user:p\:a\\ss`; len(lines) != 1 || lines[0] != want {
		t.Errorf("file lines = %q, want %q", lines, want)
	}
}

func TestWritePgpassEntry_CreatesParentDir(t *testing.T) {
	path := tempPgpass(t, "subdir", "pgpass.conf")

	if err := writePgpassEntry(connFor("localhost", 5432, "db", "user", "pass")); err != nil {
		t.Fatalf("writePgpassEntry: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestPgpassPath_RespectsEnvVar(t *testing.T) {
	t.Setenv("PGPASSFILE", "/custom/path/pgpass")
	if got := pgpassPath(); got != "/custom/path/pgpass" {
		t.Errorf("pgpassPath() = %q, want the PGPASSFILE value", got)
	}
}

func TestPgpassPath_DefaultWhenNoEnv(t *testing.T) {
	t.Setenv("PGPASSFILE", "")
	if pgpassPath() == "" {
		t.Error("pgpassPath() should fall back to a home-relative default")
	}
}
