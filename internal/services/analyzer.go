package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dexhamter/tabload/internal/files"
	"github.com/dexhamter/tabload/internal/identifier"
	"github.com/dexhamter/tabload/internal/schema"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// AnalysisService implements the Analyzer interface. It shares the reader,
// validator and inferencer with the import pipeline but never constructs a
// connector, so analysis works without database credentials.
type AnalysisService struct {
	reader    tabload.SourceReader
	inspector *files.Inspector
	logger    tabload.Logger
}

// NewAnalysisService creates a new AnalysisService with all dependencies
// injected. Panics on nil dependencies, matching NewImportService.
func NewAnalysisService(reader tabload.SourceReader, inspector *files.Inspector, logger tabload.Logger) *AnalysisService {
	if reader == nil {
		panic("reader cannot be nil")
	}
	if inspector == nil {
		panic("inspector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &AnalysisService{
		reader:    reader,
		inspector: inspector,
		logger:    logger,
	}
}

// Analyze reports what an import of the configured file would do.
func (s *AnalysisService) Analyze(ctx context.Context, config tabload.AnalyzeConfig) (*tabload.AnalysisReport, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Info("Dry run: no data will be written")

	info, err := s.inspector.Inspect(config.SourcePath)
	if err != nil {
		return nil, err
	}

	source, err := s.reader.Read(ctx, config.SourcePath, config.CSV)
	if err != nil {
		return nil, err
	}

	report := &tabload.AnalysisReport{
		RunID:       uuid.New(),
		Source:      config.SourcePath,
		SourceBytes: info.Bytes,
		Format:      source.Format,
	}
	s.logger.Info("File: %s (%s, %d bytes)", config.SourcePath, source.Format, info.Bytes)

	base := identifier.Sanitize(config.TableName)
	wouldChunk := source.Format.Delimited() && info.Bytes > chunkThreshold(config.ChunkThresholdBytes)
	chunkSize := config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = tabload.DefaultChunkSize
	}

	for i := range source.Tables {
		rep := analyzeTable(&source.Tables[i], base, source.Format, wouldChunk, chunkSize)
		s.logTableReport(&rep)
		report.Tables = append(report.Tables, rep)
		if rep.Valid {
			report.OK = true
		}
	}

	for _, sk := range source.Skipped {
		report.Tables = append(report.Tables, tabload.TableReport{
			Sheet:  sk.Name,
			Valid:  false,
			Reason: sk.Reason,
		})
	}

	return report, nil
}

// analyzeTable runs the read-side pipeline for one table: name resolution,
// validation, inference and the chunking estimate.
func analyzeTable(t *tabload.Table, base string, format tabload.SourceFormat, wouldChunk bool, chunkSize int) tabload.TableReport {
	table := base
	if t.Sheet != "" {
		table = identifier.ForSheet(base, t.Sheet)
	}

	rep := tabload.TableReport{Sheet: t.Sheet, Table: table}

	if format.Delimited() {
		if err := schema.Validate(t); err != nil {
			rep.Reason = err.Error()
			return rep
		}
	} else if ok, reason := schema.IsValidSheet(t); !ok {
		rep.Reason = reason
		return rep
	}

	inferred, warnings := schema.InferSchema(t)
	rep.Schema = inferred
	rep.Columns = len(inferred)
	rep.Rows = int64(len(t.Rows))
	rep.Warnings = warnings
	rep.WouldChunk = wouldChunk
	rep.EstimatedBatches = 1
	if wouldChunk {
		rep.EstimatedBatches = estimateBatches(len(t.Rows), chunkSize)
	}
	rep.Valid = true
	return rep
}

func estimateBatches(rows, chunkSize int) int {
	return (rows + chunkSize - 1) / chunkSize
}

func (s *AnalysisService) logTableReport(rep *tabload.TableReport) {
	if !rep.Valid {
		if rep.Sheet != "" {
			s.logger.Info("✗ Sheet '%s' would be skipped: %s", rep.Sheet, rep.Reason)
		} else {
			s.logger.Info("✗ Import would fail: %s", rep.Reason)
		}
		return
	}

	if rep.Sheet != "" {
		s.logger.Info("✓ Sheet '%s' → %s: %d rows, %d columns", rep.Sheet, rep.Table, rep.Rows, rep.Columns)
	} else {
		s.logger.Info("✓ %s: %d rows, %d columns", rep.Table, rep.Rows, rep.Columns)
	}
	s.logger.Info("  schema: %s", formatSchema(rep.Schema))
	if rep.WouldChunk {
		s.logger.Info("  chunked load: yes, about %d batches", rep.EstimatedBatches)
	} else {
		s.logger.Info("  chunked load: no")
	}
	for _, w := range rep.Warnings {
		s.logger.Warn("%s", w)
	}
}

func formatSchema(sc tabload.Schema) string {
	parts := make([]string, len(sc))
	for i, col := range sc {
		parts[i] = col.Name + " " + col.Type.String()
	}
	return strings.Join(parts, ", ")
}

// Compile-time check that AnalysisService satisfies the public interface.
var _ tabload.Analyzer = (*AnalysisService)(nil)
