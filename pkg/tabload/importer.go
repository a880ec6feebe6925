package tabload

import "context"

// Importer is the main interface for loading tabular files into PostgreSQL.
// Implementations handle the full workflow: reading, validation, type
// inference, schema compatibility and transactional loading.
type Importer interface {
	// Import loads the configured source file into the destination database.
	// Per-sheet failures inside a workbook are recorded in the result and do
	// not abort the run; the returned error is non-nil when the run itself
	// failed or when no sheet imported successfully.
	Import(ctx context.Context, config ImportConfig) (*ImportResult, error)
}

// Analyzer is the interface for dry-run analysis. It runs the read,
// validation and inference pipeline without ever opening a database
// connection.
type Analyzer interface {
	// Analyze inspects the configured source file and reports what an import
	// would do. Pipeline failures are captured in the report rather than
	// returned, so a report is produced whenever the file can be opened.
	Analyze(ctx context.Context, config AnalyzeConfig) (*AnalysisReport, error)
}
