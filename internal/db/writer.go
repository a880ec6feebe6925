package db

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// pgDuplicateTable is the PostgreSQL error code for duplicate_table.
const pgDuplicateTable = "42P07"

// Loader writes tabular data with COPY inside one transaction per table.
// Stateless and safe for concurrent use.
type Loader struct{}

// NewLoader creates a new TableLoader instance.
func NewLoader() tabload.TableLoader {
	return &Loader{}
}

// Load acquires a connection, runs the table DDL and every write batch in a
// single transaction and commits. Any failure rolls the transaction back and
// the returned error wraps ErrImportFailed.
func (l *Loader) Load(ctx context.Context, conn tabload.DBConnection, req tabload.LoadRequest) (*tabload.LoadResult, error) {
	result, err := l.load(ctx, conn, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tabload.ErrImportFailed, err)
	}
	return result, nil
}

func (l *Loader) load(ctx context.Context, conn tabload.DBConnection, req tabload.LoadRequest) (*tabload.LoadResult, error) {
	pooledConn, err := conn.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer pooledConn.Release()

	tx, err := pooledConn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := prepareTable(ctx, tx, req); err != nil {
		return nil, err
	}

	result, err := writeRows(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit table %q: %w", req.Table, err)
	}
	return result, nil
}

// prepareTable applies the if-exists policy DDL inside the load transaction.
func prepareTable(ctx context.Context, tx pgx.Tx, req tabload.LoadRequest) error {
	switch req.IfExists {
	case tabload.IfExistsReplace:
		if _, err := tx.Exec(ctx, dropTableSQL(req.Table)); err != nil {
			return fmt.Errorf("failed to drop table %q: %w", req.Table, err)
		}
		if _, err := tx.Exec(ctx, createTableSQL(req.Table, req.Schema, false)); err != nil {
			return fmt.Errorf("failed to create table %q: %w", req.Table, err)
		}
	case tabload.IfExistsAppend:
		if _, err := tx.Exec(ctx, createTableSQL(req.Table, req.Schema, true)); err != nil {
			return fmt.Errorf("failed to create table %q: %w", req.Table, err)
		}
	case tabload.IfExistsFail:
		// A plain CREATE TABLE turns a concurrent or pre-existing table into
		// an error, with no window between check and create
		if _, err := tx.Exec(ctx, createTableSQL(req.Table, req.Schema, false)); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateTable {
				return fmt.Errorf("table %q already exists", req.Table)
			}
			return fmt.Errorf("failed to create table %q: %w", req.Table, err)
		}
	default:
		return fmt.Errorf("unknown if-exists policy %v", req.IfExists)
	}
	return nil
}

// writeRows streams the row source into the table. Chunked requests write
// ChunkSize rows per COPY; everything else goes in a single COPY.
func writeRows(ctx context.Context, tx pgx.Tx, req tabload.LoadRequest) (*tabload.LoadResult, error) {
	limit := 0
	if req.Chunked {
		limit = req.ChunkSize
		if limit <= 0 {
			limit = tabload.DefaultChunkSize
		}
	}

	ident := pgx.Identifier{req.Table}
	columns := req.Schema.Names()
	result := &tabload.LoadResult{}

	for {
		batch, err := nextBatch(req.Rows, req.Schema, limit)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", result.Batches+1, err)
		}
		if len(batch) == 0 {
			break
		}

		result.Batches++
		copied, err := tx.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(batch))
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", result.Batches, err)
		}
		result.Rows += copied

		if limit == 0 || len(batch) < limit {
			break
		}
	}

	return result, nil
}

// nextBatch reads and converts up to limit rows (every remaining row when
// limit is 0).
func nextBatch(rows tabload.RowSource, dest tabload.Schema, limit int) ([][]any, error) {
	var batch [][]any
	if limit > 0 {
		batch = make([][]any, 0, limit)
	}
	for limit == 0 || len(batch) < limit {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		args, err := convertRow(dest, row)
		if err != nil {
			return nil, err
		}
		batch = append(batch, args)
	}
	return batch, nil
}

// Verify Loader implements the TableLoader interface at compile time
var _ tabload.TableLoader = (*Loader)(nil)
