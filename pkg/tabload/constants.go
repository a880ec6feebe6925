package tabload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Import/analysis completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or parameters
	ExitConnectionError   = 11 // Failed to connect to database
	ExitApprovalDenied    = 12 // User denied table replacement approval
	ExitImportFailed      = 13 // Database write failed, transaction rolled back
	ExitUnsupportedFormat = 14 // Source file extension not recognized
	ExitInvalidInput      = 15 // Source data structurally unusable
	ExitSchemaMismatch    = 16 // Column drift against existing table
)

const (
	// DefaultChunkSize is the number of rows written per batch when a file
	// is loaded in chunked mode.
	DefaultChunkSize = 50000

	// DefaultChunkThresholdBytes is the source size above which delimited
	// text files switch from single-shot to chunked loading (200 MiB).
	DefaultChunkThresholdBytes int64 = 200 * 1024 * 1024

	// MaxIdentifierLength is the PostgreSQL identifier length limit applied
	// by the name sanitizer.
	MaxIdentifierLength = 63

	// TypeInferenceSampleSize is the number of non-missing values examined
	// per column when inferring a type from string data.
	TypeInferenceSampleSize = 100

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultCSVDelimiter is the field separator used when none is configured.
	DefaultCSVDelimiter = ","
)
