package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dexhamter/tabload/internal/tui"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// pgpassPath returns the platform-appropriate .pgpass file path, honoring
// the PGPASSFILE override.
func pgpassPath() string {
	if custom := os.Getenv("PGPASSFILE"); custom != "" {
		return custom
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "postgresql", "pgpass.conf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pgpass")
}

// offerSavePgpass asks whether to persist the password after a successful
// wizard run. A no-op when there is no password or no terminal.
func offerSavePgpass(cfg *tabload.ConnectionConfig) {
	if cfg.Password == "" || !tui.IsInteractive() {
		return
	}

	fmt.Fprintln(os.Stderr, "")
	if !tui.PromptContinue("Save password to .pgpass for future sessions?") {
		fmt.Fprintln(os.Stderr, "Tip: provide password via $PGPASSWORD, .pgpass, or connection string.")
		return
	}

	if err := writePgpassEntry(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save .pgpass: %v\n", err)
		fmt.Fprintln(os.Stderr, "Tip: provide password via $PGPASSWORD or connection string.")
		return
	}

	fmt.Fprintf(os.Stderr, "Saved to %s\n", pgpassPath())
}

// writePgpassEntry upserts a host:port:database:username line. An existing
// entry for the same target is replaced in place, otherwise the new line
// is appended.
func writePgpassEntry(cfg *tabload.ConnectionConfig) error {
	path := pgpassPath()
	if path == "" {
		return fmt.Errorf("cannot determine home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	key := strings.Join([]string{
		escapePgpass(cfg.Host),
		fmt.Sprintf("%d", cfg.Port),
		escapePgpass(cfg.Database),
		escapePgpass(cfg.Username),
	}, ":") + ":"
	entry := key + escapePgpass(cfg.Password)

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing .pgpass: %w", err)
	}

	var lines []string
	if len(existing) > 0 {
		lines = strings.Split(strings.TrimRight(string(existing), "\n"), "\n")
	}

	replaced := false
	for i := range lines {
		if strings.HasPrefix(lines[i], key) {
			lines[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	// libpq ignores group/world-readable .pgpass files on Unix.
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
}

// escapePgpass escapes backslashes and colons so a value can sit inside a
// colon-separated .pgpass line.
func escapePgpass(s string) string {
	return strings.NewReplacer(`\`, `\\`, `:`, `\:`).Replace(s)
}
