package tabload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := importer.Import(ctx, config)
//	if errors.Is(err, tabload.ErrSchemaMismatch) {
//	    // Handle column drift against the existing table
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates the source file extension maps to no
	// known tabular format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidInput indicates the source data is structurally unusable
	// (no rows, blank or malformed column names).
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSchemaMismatch indicates the inferred column set does not match the
	// existing destination table.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrImportFailed indicates a database write failed and the transaction
	// was rolled back.
	ErrImportFailed = errors.New("import failed")

	// ErrApprovalDenied indicates the user denied approval for a destructive
	// table replacement.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")
)

// SchemaMismatchError describes the column drift between the inferred schema
// and an existing destination table. It unwraps to ErrSchemaMismatch.
type SchemaMismatchError struct {
	// Table is the destination table that failed the compatibility check.
	Table string

	// Missing are columns present in the existing table but absent from the file.
	Missing []string

	// Extra are columns present in the file but absent from the existing table.
	Extra []string
}

func (e *SchemaMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "table %q: schema mismatch", e.Table)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; missing from file: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, "; not in table: %s", strings.Join(e.Extra, ", "))
	}
	return b.String()
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedFormat):
		return ExitUnsupportedFormat
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrSchemaMismatch):
		return ExitSchemaMismatch
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrImportFailed):
		return ExitImportFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	}

	errStr := err.Error()

	// Cobra reports flag and argument misuse as plain errors; classify the
	// known message shapes as usage errors
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument ") ||
		(strings.Contains(errStr, "accepts ") && strings.Contains(errStr, "arg(s)")) {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
