package services

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexhamter/tabload/pkg/tabload"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockApprover struct {
	approved  bool
	err       error
	requested []string
}

func (m *mockApprover) RequestApproval(_ context.Context, tableName string) (bool, error) {
	m.requested = append(m.requested, tableName)
	return m.approved, m.err
}

type mockReader struct {
	source     *tabload.Source
	readErr    error
	openHeader []string
	openRows   [][]tabload.Value
	openErr    error
	readCalls  int
	openCalls  int
	closeCalls int
}

func (m *mockReader) Read(_ context.Context, _ string, _ tabload.CSVOptions) (*tabload.Source, error) {
	m.readCalls++
	return m.source, m.readErr
}

func (m *mockReader) OpenRows(_ context.Context, _ string, _ tabload.CSVOptions) ([]string, tabload.RowSource, func() error, error) {
	m.openCalls++
	if m.openErr != nil {
		return nil, nil, nil, m.openErr
	}
	closeFn := func() error {
		m.closeCalls++
		return nil
	}
	return m.openHeader, tabload.SliceRows(m.openRows), closeFn, nil
}

type mockCatalog struct {
	exists       bool
	existsErr    error
	columns      []string
	columnsErr   error
	existsTables []string
	columnsCalls int
}

func (m *mockCatalog) TableExists(_ context.Context, _ tabload.DBConnection, table string) (bool, error) {
	m.existsTables = append(m.existsTables, table)
	return m.exists, m.existsErr
}

func (m *mockCatalog) TableColumns(_ context.Context, _ tabload.DBConnection, _ string) ([]string, error) {
	m.columnsCalls++
	return m.columns, m.columnsErr
}

// loadCall records one Load request together with the rows drained from its
// row source, so tests can assert what would have been written.
type loadCall struct {
	req  tabload.LoadRequest
	rows [][]tabload.Value
}

type mockLoader struct {
	err       error
	failTable string // when set, err applies only to this destination table
	calls     []loadCall
}

func (m *mockLoader) Load(_ context.Context, _ tabload.DBConnection, req tabload.LoadRequest) (*tabload.LoadResult, error) {
	var drained [][]tabload.Value
	for {
		row, err := req.Rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		drained = append(drained, row)
	}
	m.calls = append(m.calls, loadCall{req: req, rows: drained})

	if m.err != nil && (m.failTable == "" || m.failTable == req.Table) {
		return nil, m.err
	}
	return &tabload.LoadResult{Rows: int64(len(drained)), Batches: 1}, nil
}

type mockDBConnection struct {
	pingErr error
}

func (m *mockDBConnection) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBConnection) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBConnection) QueryRow(_ context.Context, _ string, _ ...any) tabload.Row {
	return nil
}

func (m *mockDBConnection) Acquire(_ context.Context) (tabload.PooledConnection, error) {
	return nil, nil
}

func (m *mockDBConnection) Ping(_ context.Context) error {
	return m.pingErr
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Warn(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
