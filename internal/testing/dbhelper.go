package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexhamter/tabload/internal/checksum"
	"github.com/dexhamter/tabload/internal/db"
	"github.com/dexhamter/tabload/internal/files"
	"github.com/dexhamter/tabload/internal/files/filesystem"
	"github.com/dexhamter/tabload/internal/logging"
	"github.com/dexhamter/tabload/internal/services"
	"github.com/dexhamter/tabload/internal/tabular"
	"github.com/dexhamter/tabload/internal/testinfra"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// One shared container for the whole test binary; starting Postgres per test
// would dominate the suite's runtime.
var (
	containerOnce sync.Once
	containerConn string
	containerErr  error
)

func sharedContainerConnString() (string, error) {
	containerOnce.Do(func() {
		container, err := testinfra.StartSimplePostgres(context.Background())
		if err != nil {
			containerErr = err
			return
		}
		containerConn = container.ConnString
	})
	return containerConn, containerErr
}

// RequireDatabase returns a connection string for integration tests, or skips
// the test. Resolution order: skip under -short, $TABLOAD_TEST_CONN if set,
// otherwise an auto-started testcontainer (skip when Docker is unavailable).
func RequireDatabase(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if connString := os.Getenv("TABLOAD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := sharedContainerConnString()
	if err != nil {
		t.Skipf("TABLOAD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// NewTestImporter wires a full import service against the OS filesystem with
// a silent logger and auto-approval.
func NewTestImporter(t *testing.T) tabload.Importer {
	t.Helper()
	return NewTestImporterWithFS(t, filesystem.NewOSFileSystem())
}

// NewTestImporterWithFS is NewTestImporter with a caller-chosen filesystem,
// for tests that feed in-memory sources.
func NewTestImporterWithFS(t *testing.T, fsProvider filesystem.FileSystemProvider) tabload.Importer {
	t.Helper()

	logger := logging.NewNullLogger()
	return services.NewImportService(
		db.NewConnector,
		&ForceApprover{},
		logger,
		tabular.NewReader(fsProvider, logger),
		files.NewInspector(checksum.New()),
		db.NewCatalog(),
		db.NewLoader(),
	)
}

// NewTestAnalyzer wires an analysis service against the OS filesystem.
func NewTestAnalyzer(t *testing.T) tabload.Analyzer {
	t.Helper()

	logger := logging.NewNullLogger()
	return services.NewAnalysisService(
		tabular.NewReader(filesystem.NewOSFileSystem(), logger),
		files.NewInspector(checksum.New()),
		logger,
	)
}

// ForceApprover approves every destructive operation without prompting.
type ForceApprover struct{}

func (a *ForceApprover) RequestApproval(ctx context.Context, tableName string) (bool, error) {
	return true, nil
}

// CreateTestDB creates dbName on the server behind connString and returns a
// cleanup func for t.Cleanup.
func CreateTestDB(t *testing.T, connString, dbName string) func() {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	return func() { dropTestDB(t, connString, dbName) }
}

// dropTestDB kicks remaining sessions off dbName and drops it. Failures are
// logged, not fatal, so one stuck database never cascades into other tests.
func dropTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer pool.Close()

	_, err = pool.Exec(ctx,
		`SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()`,
		dbName)
	if err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	if _, err := pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
	}
}

// GetTestPool opens a pool against dbName on the same server as connString,
// closed automatically when the test finishes.
func GetTestPool(t *testing.T, connString, dbName string) *pgxpool.Pool {
	t.Helper()

	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	config.Database = dbName

	pool, err := pgxpool.New(context.Background(), db.BuildConnectionString(config))
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}
