package tabload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TypeTag identifies the PostgreSQL column type assigned to a source column.
// It is a closed set: every column an import touches carries exactly one of
// these values, and all SQL generation goes through String().
type TypeTag int

const (
	TypeText TypeTag = iota // fallback for ambiguous or empty columns
	TypeBigInt
	TypeDoublePrecision
	TypeBoolean
	TypeTimestamp
)

// String returns the PostgreSQL type name for the tag.
func (t TypeTag) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeBigInt:
		return "bigint"
	case TypeDoublePrecision:
		return "double precision"
	case TypeBoolean:
		return "boolean"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// IsValid returns true if the TypeTag is a valid, defined value.
func (t TypeTag) IsValid() bool {
	return t >= TypeText && t <= TypeTimestamp
}

// Column pairs a sanitized destination column name with its inferred type.
type Column struct {
	Name string
	Type TypeTag
}

// Schema is the ordered column list for one destination table. Order follows
// the source file's column order and is preserved through DDL generation.
type Schema []Column

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// IfExistsPolicy controls what happens when the destination table already exists.
type IfExistsPolicy int

const (
	IfExistsFail    IfExistsPolicy = iota // error out, write nothing
	IfExistsReplace                       // drop and recreate the table
	IfExistsAppend                        // keep the table, add rows
)

// String returns the policy name as accepted on the command line.
func (p IfExistsPolicy) String() string {
	switch p {
	case IfExistsFail:
		return "fail"
	case IfExistsReplace:
		return "replace"
	case IfExistsAppend:
		return "append"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// IsValid returns true if the policy is a valid, defined value.
func (p IfExistsPolicy) IsValid() bool {
	return p >= IfExistsFail && p <= IfExistsAppend
}

// ParseIfExistsPolicy converts a CLI or config string into a policy value.
func ParseIfExistsPolicy(s string) (IfExistsPolicy, error) {
	switch s {
	case "fail":
		return IfExistsFail, nil
	case "replace":
		return IfExistsReplace, nil
	case "append":
		return IfExistsAppend, nil
	default:
		return IfExistsFail, fmt.Errorf("if-exists must be one of fail, replace, append (got %q): %w", s, ErrInvalidConfig)
	}
}

// CSVOptions customizes delimited-text parsing.
type CSVOptions struct {
	// Delimiter is the field separator. Must be a single character.
	// Defaults to DefaultCSVDelimiter when empty.
	Delimiter string

	// NullLiterals are additional cell values treated as missing, beyond
	// empty and whitespace-only cells (e.g. "NULL", "N/A").
	NullLiterals []string
}

// Validate checks the CSV options.
func (o *CSVOptions) Validate() error {
	if o.Delimiter != "" && len([]rune(o.Delimiter)) != 1 {
		return fmt.Errorf("csv delimiter must be a single character (got %q): %w", o.Delimiter, ErrInvalidConfig)
	}
	return nil
}

// ImportConfig contains all parameters needed for an import operation.
type ImportConfig struct {
	// SourcePath is the tabular file to import (.csv, .xlsx or .xls)
	SourcePath string

	// TableName is the requested destination table name. It is sanitized
	// before use; workbook sheets land in <table>_<sheet> tables.
	TableName string

	// ConnectionString is the PostgreSQL connection string, in URI or
	// keyword (ADO.NET) form
	ConnectionString string

	// IfExists controls behavior when the destination table already exists
	IfExists IfExistsPolicy

	// StrictSchema enables the column-set compatibility check against an
	// existing table before any write
	StrictSchema bool

	// Force bypasses interactive approval when IfExists is replace
	Force bool

	// ChunkSize is the rows-per-batch for chunked loading (0 = DefaultChunkSize)
	ChunkSize int

	// ChunkThresholdBytes is the delimited-text size that triggers chunked
	// loading (0 = DefaultChunkThresholdBytes)
	ChunkThresholdBytes int64

	// CSV customizes delimited-text parsing
	CSV CSVOptions

	// Timeout bounds the whole import run
	Timeout time.Duration

	// Verbose turns on per-step logging
	Verbose bool

	// AuthMethod selects how to authenticate against the server
	AuthMethod AuthMethod

	// Azure Entra ID credentials, read when AuthMethod is AuthMethodAzureEntraID
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name
	// (used when AuthMethod is AuthMethodGoogleIAM)
	GoogleInstance string

	// AWSRegion is the RDS region for IAM token generation
	// (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string
}

// Validate checks if the ImportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ImportConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.TableName == "" {
		errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if !c.IfExists.IsValid() {
		errs = append(errs, fmt.Errorf("IfExists policy is invalid: %w", ErrInvalidConfig))
	}

	// Force only has meaning for the destructive replace policy
	if c.Force && c.IfExists != IfExistsReplace {
		errs = append(errs, fmt.Errorf("force flag requires if-exists=replace: %w", ErrInvalidConfig))
	}

	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk size cannot be negative: %w", ErrInvalidConfig))
	}

	if c.ChunkThresholdBytes < 0 {
		errs = append(errs, fmt.Errorf("chunk threshold cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if err := c.CSV.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// AnalyzeConfig contains all parameters needed for a dry-run analysis.
// Analysis never connects to a database, so no connection settings appear here.
type AnalyzeConfig struct {
	// SourcePath is the tabular file to analyze
	SourcePath string

	// TableName is the requested destination table name
	TableName string

	// ChunkSize is the rows-per-batch assumed for batch estimates (0 = DefaultChunkSize)
	ChunkSize int

	// ChunkThresholdBytes is the size that would trigger chunked loading
	// (0 = DefaultChunkThresholdBytes)
	ChunkThresholdBytes int64

	// CSV customizes delimited-text parsing
	CSV CSVOptions

	// Verbose turns on per-step logging
	Verbose bool
}

// Validate checks if the AnalyzeConfig has all required fields and valid values.
func (c *AnalyzeConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.TableName == "" {
		errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
	}

	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk size cannot be negative: %w", ErrInvalidConfig))
	}

	if c.ChunkThresholdBytes < 0 {
		errs = append(errs, fmt.Errorf("chunk threshold cannot be negative: %w", ErrInvalidConfig))
	}

	if err := c.CSV.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod selects how to authenticate against the server
	AuthMethod AuthMethod

	// Extra parameters carried through to the server
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID credentials. All three present selects service
	// principal auth; all absent selects the DefaultAzureCredential chain
	// (env vars, managed identity, CLI and so on).
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance) used when AuthMethod is AuthMethodGoogleIAM
	GoogleInstance string

	// AWSRegion is the RDS region for IAM token generation
	// (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string
}

// AuthMethod selects the mechanism used to authenticate a connection.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // username/password
	AuthMethodAWSIAM                         // AWS RDS IAM tokens
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Entra ID tokens
)

var authMethodNames = [...]string{
	AuthMethodStandard:     "Standard",
	AuthMethodAWSIAM:       "AWS IAM",
	AuthMethodGoogleIAM:    "Google IAM",
	AuthMethodAzureEntraID: "Azure Entra ID",
}

// String returns a human-readable name for the method.
func (a AuthMethod) String() string {
	if !a.IsValid() {
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
	return authMethodNames[a]
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// TableStatus classifies the outcome of one destination table in a run.
type TableStatus int

const (
	StatusImported TableStatus = iota
	StatusSkipped
	StatusFailed
)

// String returns the status name used in logs and summaries.
func (s TableStatus) String() string {
	switch s {
	case StatusImported:
		return "imported"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// TableResult records the outcome for one destination table (one CSV file or
// one workbook sheet).
type TableResult struct {
	// Sheet is the source worksheet name ("" for delimited files)
	Sheet string

	// Table is the sanitized destination table name
	Table string

	// Rows is the number of data rows written
	Rows int64

	// Columns is the number of columns in the destination schema
	Columns int

	// Chunked reports whether the data was written in multiple batches
	Chunked bool

	// Batches is the number of write batches inside the transaction
	Batches int

	// Status is the final outcome for this table
	Status TableStatus

	// Reason explains a skip or failure in one line
	Reason string

	// Err carries the failure for programmatic inspection (nil unless Status is StatusFailed)
	Err error

	// Duration is the wall time spent on this table
	Duration time.Duration
}

// ImportResult summarizes a completed import run.
type ImportResult struct {
	// RunID uniquely identifies this invocation in logs and audit output
	RunID uuid.UUID

	// Source is the path of the imported file
	Source string

	// SourceBytes is the file size
	SourceBytes int64

	// SourceSHA256 is the checksum of the raw file content
	SourceSHA256 string

	// Format is the detected source format
	Format SourceFormat

	// StartedAt is when the run began
	StartedAt time.Time

	// Duration is the total wall time for the run
	Duration time.Duration

	// Tables holds per-table outcomes in processing order
	Tables []TableResult

	// Imported, Skipped and Failed count table outcomes
	Imported int
	Skipped  int
	Failed   int
}

// TableReport is the dry-run counterpart of TableResult: what an import of
// this table would do, computed without touching a database.
type TableReport struct {
	// Sheet is the source worksheet name ("" for delimited files)
	Sheet string

	// Table is the sanitized destination table name
	Table string

	// Rows is the number of data rows in the source
	Rows int64

	// Columns is the number of columns in the inferred schema
	Columns int

	// Schema is the inferred destination schema in source column order
	Schema Schema

	// WouldChunk reports whether loading would use chunked mode
	WouldChunk bool

	// EstimatedBatches is the batch count chunked loading would use (1 when
	// WouldChunk is false)
	EstimatedBatches int

	// Valid is false when the table would be skipped or rejected
	Valid bool

	// Reason explains why Valid is false
	Reason string

	// Warnings lists non-fatal findings, such as ambiguous columns falling
	// back to text
	Warnings []string
}

// AnalysisReport summarizes a dry-run analysis of one source file.
type AnalysisReport struct {
	// RunID uniquely identifies this invocation
	RunID uuid.UUID

	// Source is the analyzed file path
	Source string

	// SourceBytes is the file size
	SourceBytes int64

	// Format is the detected source format
	Format SourceFormat

	// Tables holds per-table findings in source order
	Tables []TableReport

	// OK is true when at least one table is valid and none failed analysis
	OK bool
}
