//go:build conntest || azure

package conntest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexhamter/tabload/internal/checksum"
	"github.com/dexhamter/tabload/internal/db"
	"github.com/dexhamter/tabload/internal/files"
	"github.com/dexhamter/tabload/internal/files/filesystem"
	"github.com/dexhamter/tabload/internal/logging"
	"github.com/dexhamter/tabload/internal/services"
	"github.com/dexhamter/tabload/internal/tabular"
	"github.com/dexhamter/tabload/pkg/tabload"
)

type forceApprover struct{}

func (a *forceApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func newTestImporter(t *testing.T) tabload.Importer {
	t.Helper()
	logger := logging.NewNullLogger()

	return services.NewImportService(
		db.NewConnector,
		&forceApprover{},
		logger,
		tabular.NewReader(filesystem.NewOSFileSystem(), logger),
		files.NewInspector(checksum.New()),
		db.NewCatalog(),
		db.NewLoader(),
	)
}

// writeImportCSV writes a small CSV source for end-to-end import tests and
// returns its path.
func writeImportCSV(t *testing.T, dir string) string {
	t.Helper()
	csvData := "id,name,amount\n1,alpha,10.5\n2,beta,20.0\n3,gamma,30.25\n"
	path := filepath.Join(dir, "conntest.csv")
	if err := os.WriteFile(path, []byte(csvData), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func dropTable(t *testing.T, connStr, tableName string) {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Logf("cleanup: failed to connect: %v", err)
		return
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{tableName}.Sanitize())
	if err != nil {
		t.Logf("cleanup: failed to drop %s: %v", tableName, err)
	}
}
