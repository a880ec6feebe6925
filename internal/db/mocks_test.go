package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// Test doubles for the catalog and loader. Function fields override single
// behaviors; the zero value answers every call successfully.

type mockDBConnection struct {
	execFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFunc func(ctx context.Context, sql string, args ...any) tabload.Row
	acquireFunc  func(ctx context.Context) (tabload.PooledConnection, error)
	pingFunc     func(ctx context.Context) error
}

func (m *mockDBConnection) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.execFunc != nil {
		return m.execFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *mockDBConnection) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, sql, args...)
	}
	return &mockRows{}, nil
}

func (m *mockDBConnection) QueryRow(ctx context.Context, sql string, args ...any) tabload.Row {
	if m.queryRowFunc != nil {
		return m.queryRowFunc(ctx, sql, args...)
	}
	return &mockRow{}
}

func (m *mockDBConnection) Acquire(ctx context.Context) (tabload.PooledConnection, error) {
	if m.acquireFunc != nil {
		return m.acquireFunc(ctx)
	}
	return &mockPooledConnection{}, nil
}

func (m *mockDBConnection) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.scanFunc != nil {
		return m.scanFunc(dest...)
	}
	return nil
}

// mockRows implements pgx.Rows over a fixed result set. Cells must be
// strings; Scan copies them into *string destinations.
type mockRows struct {
	rows    [][]any
	pos     int
	err     error
	scanErr error
	closed  bool
}

func (m *mockRows) Close()     { m.closed = true }
func (m *mockRows) Err() error { return m.err }

func (m *mockRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (m *mockRows) Next() bool {
	if m.pos >= len(m.rows) {
		return false
	}
	m.pos++
	return true
}

func (m *mockRows) Scan(dest ...any) error {
	if m.scanErr != nil {
		return m.scanErr
	}
	row := m.rows[m.pos-1]
	for i := range dest {
		if i >= len(row) {
			break
		}
		if p, ok := dest[i].(*string); ok {
			if s, ok := row[i].(string); ok {
				*p = s
			}
		}
	}
	return nil
}

func (m *mockRows) Values() ([]any, error) { return m.rows[m.pos-1], nil }

func (m *mockRows) RawValues() [][]byte { return nil }

func (m *mockRows) Conn() *pgx.Conn { return nil }

type mockPooledConnection struct {
	execFunc  func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	beginFunc func(ctx context.Context) (pgx.Tx, error)
	released  bool
}

func (m *mockPooledConnection) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.execFunc != nil {
		return m.execFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *mockPooledConnection) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginFunc != nil {
		return m.beginFunc(ctx)
	}
	return &fakeTx{}, nil
}

func (m *mockPooledConnection) Release() { m.released = true }

type copyCall struct {
	table   pgx.Identifier
	columns []string
	rows    [][]any
}

// fakeTx implements pgx.Tx and records the DDL and COPY traffic of one load.
// Rollback after a successful commit stays a no-op, as in a real transaction.
type fakeTx struct {
	execSQL    []string
	execErr    func(sql string) error
	copyCalls  []copyCall
	copyFailAt int // 1-based batch index that fails, 0 fails never
	copyErr    error
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	if f.execErr != nil {
		if err := f.execErr(sql); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	var rows [][]any
	for rowSrc.Next() {
		vals, err := rowSrc.Values()
		if err != nil {
			return 0, err
		}
		rows = append(rows, vals)
	}
	f.copyCalls = append(f.copyCalls, copyCall{table: tableName, columns: columnNames, rows: rows})
	if f.copyFailAt > 0 && len(f.copyCalls) == f.copyFailAt {
		return 0, f.copyErr
	}
	return int64(len(rows)), nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }

func (f *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (f *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (f *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (f *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &mockRows{}, nil
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (f *fakeTx) Conn() *pgx.Conn { return nil }

var (
	_ tabload.DBConnection     = (*mockDBConnection)(nil)
	_ tabload.PooledConnection = (*mockPooledConnection)(nil)
	_ pgx.Rows                 = (*mockRows)(nil)
	_ pgx.Tx                   = (*fakeTx)(nil)
)
