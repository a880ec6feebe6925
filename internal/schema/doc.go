// Package schema validates tabular input and infers destination column types.
//
// Validation is split in two: Validate rejects standalone tables that are
// unsafe to import, while IsValidSheet is a softer predicate used to skip
// non-tabular workbook sheets without aborting the run. InferSchema maps each
// column to the narrowest PostgreSQL type its values support, and
// CheckCompatibility compares an inferred schema's column set against an
// existing destination table.
package schema
