// Package services wires the reading, validation, inference and loading
// stages into the import and dry-run workflows exposed by pkg/tabload.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dexhamter/tabload/internal/db"
	"github.com/dexhamter/tabload/internal/files"
	"github.com/dexhamter/tabload/internal/identifier"
	"github.com/dexhamter/tabload/internal/schema"
	"github.com/dexhamter/tabload/pkg/tabload"
)

type destConnFunc func(ctx context.Context, connConfig *tabload.ConnectionConfig) (tabload.DBConnection, func(), error)

// ImportService implements the Importer interface.
// Thread-Safety: NOT safe for concurrent Import() calls on the same instance.
// Create separate instances for concurrent imports.
type ImportService struct {
	connectorFactory func(*tabload.ConnectionConfig) (tabload.Connector, error)
	approver         tabload.Approver
	logger           tabload.Logger
	reader           tabload.SourceReader
	inspector        *files.Inspector
	catalog          tabload.TableCatalog
	loader           tabload.TableLoader
	destConnector    destConnFunc
}

// NewImportService creates a new ImportService with all dependencies injected.
//
// Panics on nil dependencies: those are wiring mistakes that should fail
// loudly at startup, not as nil dereferences midway through an import.
// Runtime conditions (bad configuration, unreachable databases, unreadable
// files) return errors instead.
func NewImportService(
	connectorFactory func(*tabload.ConnectionConfig) (tabload.Connector, error),
	approver tabload.Approver,
	logger tabload.Logger,
	reader tabload.SourceReader,
	inspector *files.Inspector,
	catalog tabload.TableCatalog,
	loader tabload.TableLoader,
) *ImportService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if reader == nil {
		panic("reader cannot be nil")
	}
	if inspector == nil {
		panic("inspector cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}

	svc := &ImportService{
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
		reader:           reader,
		inspector:        inspector,
		catalog:          catalog,
		loader:           loader,
	}
	svc.destConnector = svc.defaultDestConnector
	return svc
}

func (s *ImportService) defaultDestConnector(ctx context.Context, connConfig *tabload.ConnectionConfig) (tabload.DBConnection, func(), error) {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to destination database: %w", err)
	}

	conn := db.NewPoolAdapter(pool)
	cleanup := func() { pool.Close() }
	return conn, cleanup, nil
}

// Import executes an import using the provided configuration.
// This method orchestrates the workflow by calling smaller, focused methods.
func (s *ImportService) Import(ctx context.Context, config tabload.ImportConfig) (*tabload.ImportResult, error) {
	started := time.Now()

	connConfig, err := s.validateAndParseConfig(&config)
	if err != nil {
		return nil, err
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	info, err := s.inspector.Inspect(config.SourcePath)
	if err != nil {
		return nil, err
	}

	conn, cleanup, err := s.destConnector(ctx, connConfig)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: connection test failed: %w", tabload.ErrConnectionFailed, err)
	}
	s.logger.Verbose("Database connection verified")

	source, err := s.reader.Read(ctx, config.SourcePath, config.CSV)
	if err != nil {
		return nil, err
	}

	result := &tabload.ImportResult{
		RunID:        uuid.New(),
		Source:       config.SourcePath,
		SourceBytes:  info.Bytes,
		SourceSHA256: info.SHA256,
		Format:       source.Format,
		StartedAt:    started,
	}
	s.logger.Verbose("Run %s: %s format, %d bytes, sha256 %s", result.RunID, source.Format, info.Bytes, info.SHA256)

	run, err := s.importTables(ctx, conn, source, &config, info.Bytes, result)
	result.Duration = time.Since(started)
	if err != nil {
		return result, err
	}

	if result.Imported == 0 {
		if run.firstErr != nil {
			return result, run.firstErr
		}
		return result, fmt.Errorf("no importable tables in %s: %w", config.SourcePath, tabload.ErrInvalidInput)
	}

	if result.Failed == 0 {
		s.logger.Info("✓ Import completed: %d imported, %d skipped, %d failed", result.Imported, result.Skipped, result.Failed)
	} else {
		s.logger.Warn("Import completed with failures: %d imported, %d skipped, %d failed", result.Imported, result.Skipped, result.Failed)
	}

	return result, nil
}

// runState carries what the per-table loop learned about the run as a whole.
type runState struct {
	firstErr error
}

// importTables walks every extracted table in source order. A failed
// delimited file aborts the run; a failed worksheet is recorded and the
// remaining worksheets still import.
func (s *ImportService) importTables(
	ctx context.Context,
	conn tabload.DBConnection,
	source *tabload.Source,
	config *tabload.ImportConfig,
	sourceBytes int64,
	result *tabload.ImportResult,
) (runState, error) {
	var run runState

	base := identifier.Sanitize(config.TableName)
	chunked := source.Format.Delimited() && sourceBytes > chunkThreshold(config.ChunkThresholdBytes)

	for i := range source.Tables {
		tr := s.importTable(ctx, conn, &source.Tables[i], base, config, source.Format, chunked)
		result.Tables = append(result.Tables, tr)

		switch tr.Status {
		case tabload.StatusImported:
			result.Imported++
			s.logger.Info("✓ Imported %d rows into '%s' (%d batches) in %s",
				tr.Rows, tr.Table, tr.Batches, tr.Duration.Round(time.Millisecond))
		case tabload.StatusSkipped:
			result.Skipped++
			s.logger.Info("Sheet '%s' skipped: %s", tr.Sheet, tr.Reason)
		case tabload.StatusFailed:
			result.Failed++
			if run.firstErr == nil {
				run.firstErr = tr.Err
			}
			if source.Format.Delimited() {
				return run, tr.Err
			}
			s.logger.Error("Sheet '%s' failed: %v", tr.Sheet, tr.Err)
		}
	}

	// Worksheets the reader could not extract rows from still count against
	// the run summary
	for _, sk := range source.Skipped {
		result.Tables = append(result.Tables, tabload.TableResult{
			Sheet:  sk.Name,
			Status: tabload.StatusSkipped,
			Reason: sk.Reason,
		})
		result.Skipped++
	}

	return run, nil
}

// importTable runs the full pipeline for one destination table: name
// resolution, validation, inference, approval, compatibility check and the
// transactional load.
func (s *ImportService) importTable(
	ctx context.Context,
	conn tabload.DBConnection,
	t *tabload.Table,
	base string,
	config *tabload.ImportConfig,
	format tabload.SourceFormat,
	chunked bool,
) tabload.TableResult {
	start := time.Now()

	table := base
	if t.Sheet != "" {
		table = identifier.ForSheet(base, t.Sheet)
	}

	if format.Delimited() {
		if err := schema.Validate(t); err != nil {
			return failedTable(t.Sheet, table, start, err)
		}
	} else if ok, reason := schema.IsValidSheet(t); !ok {
		return tabload.TableResult{
			Sheet:    t.Sheet,
			Table:    table,
			Status:   tabload.StatusSkipped,
			Reason:   reason,
			Duration: time.Since(start),
		}
	}

	inferred, warnings := schema.InferSchema(t)
	for _, w := range warnings {
		s.logger.Warn("%s", w)
	}

	exists, err := s.catalog.TableExists(ctx, conn, table)
	if err != nil {
		return failedTable(t.Sheet, table, start, fmt.Errorf("failed to check destination table %q: %w", table, err))
	}

	if exists && config.IfExists == tabload.IfExistsReplace {
		approved, err := s.approver.RequestApproval(ctx, table)
		if err != nil {
			return failedTable(t.Sheet, table, start, fmt.Errorf("approval request failed: %w", err))
		}
		if !approved {
			return failedTable(t.Sheet, table, start,
				fmt.Errorf("replace of table %q was not approved: %w", table, tabload.ErrApprovalDenied))
		}
	}

	// Replace recreates the table and the fail policy errors on existence, so
	// the column-set check only guards appends
	if config.StrictSchema && exists && config.IfExists == tabload.IfExistsAppend {
		existing, err := s.catalog.TableColumns(ctx, conn, table)
		if err != nil {
			return failedTable(t.Sheet, table, start, fmt.Errorf("failed to read columns of table %q: %w", table, err))
		}
		if err := schema.CheckCompatibility(table, existing, inferred.Names()); err != nil {
			return failedTable(t.Sheet, table, start, err)
		}
	}

	var rows tabload.RowSource
	if chunked {
		_, streamed, closeRows, err := s.reader.OpenRows(ctx, config.SourcePath, config.CSV)
		if err != nil {
			return failedTable(t.Sheet, table, start, fmt.Errorf("failed to reopen source for chunked load: %w", err))
		}
		defer func() { _ = closeRows() }()
		rows = streamed
	} else {
		rows = tabload.SliceRows(t.Rows)
	}

	s.logger.Verbose("Loading into '%s': %d columns, if-exists=%s, chunked=%v", table, len(inferred), config.IfExists, chunked)

	res, err := s.loader.Load(ctx, conn, tabload.LoadRequest{
		Table:     table,
		Schema:    inferred,
		IfExists:  config.IfExists,
		Rows:      rows,
		ChunkSize: config.ChunkSize,
		Chunked:   chunked,
	})
	if err != nil {
		return failedTable(t.Sheet, table, start, err)
	}

	return tabload.TableResult{
		Sheet:    t.Sheet,
		Table:    table,
		Rows:     res.Rows,
		Columns:  len(inferred),
		Chunked:  chunked,
		Batches:  res.Batches,
		Status:   tabload.StatusImported,
		Duration: time.Since(start),
	}
}

// validateAndParseConfig validates the configuration and parses the connection string.
func (s *ImportService) validateAndParseConfig(config *tabload.ImportConfig) (*tabload.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Starting import of %s", config.SourcePath)
	s.logger.Verbose("Requested table: %s", config.TableName)

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Set application name if not already set
	if connConfig.AppName == "" {
		connConfig.AppName = "tabload"
	}

	// Apply auth method and cloud credentials from import config
	connConfig.AuthMethod = config.AuthMethod
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret
	connConfig.GoogleInstance = config.GoogleInstance
	connConfig.AWSRegion = config.AWSRegion

	return connConfig, nil
}

func chunkThreshold(configured int64) int64 {
	if configured > 0 {
		return configured
	}
	return tabload.DefaultChunkThresholdBytes
}

func failedTable(sheet, table string, start time.Time, err error) tabload.TableResult {
	return tabload.TableResult{
		Sheet:    sheet,
		Table:    table,
		Status:   tabload.StatusFailed,
		Reason:   err.Error(),
		Err:      err,
		Duration: time.Since(start),
	}
}

// Compile-time check that ImportService satisfies the public interface.
var _ tabload.Importer = (*ImportService)(nil)
