// Package tabular reads CSV and Excel files into the tabload data model.
// Format selection is by file extension; the importer and the dry-run
// analyzer share this single entry point.
package tabular

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dexhamter/tabload/internal/files/filesystem"
	"github.com/dexhamter/tabload/pkg/tabload"
)

// Reader implements tabload.SourceReader on top of a filesystem provider.
type Reader struct {
	fs     filesystem.FileSystemProvider
	logger tabload.Logger
}

// NewReader creates a Reader. Panics on nil dependencies: wiring errors
// should fail at startup, not midway through a file.
func NewReader(fs filesystem.FileSystemProvider, logger tabload.Logger) *Reader {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Reader{fs: fs, logger: logger}
}

// Read loads the whole file, dispatching on the lowercased extension.
func (r *Reader) Read(ctx context.Context, path string, csvOpts tabload.CSVOptions) (*tabload.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access source file: %w", err)
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	source := &tabload.Source{
		Path:   path,
		Format: format,
		Bytes:  info.Size(),
	}

	handle, err := r.fs.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer handle.Close()

	switch format {
	case tabload.FormatCSV:
		table, err := parseDelimited(handle, csvOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		source.Tables = []tabload.Table{*table}

	case tabload.FormatXLSX:
		source.Tables, source.Skipped, err = parseXLSX(handle, csvOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

	case tabload.FormatXLS:
		source.Tables, source.Skipped, err = parseXLS(handle, csvOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	for _, skip := range source.Skipped {
		r.logger.Warn("Skipping unreadable sheet %q: %s", skip.Name, skip.Reason)
	}

	return source, nil
}

// OpenRows streams a delimited file for chunked loading. Only delimited text
// supports streaming; workbook formats must be loaded whole.
func (r *Reader) OpenRows(ctx context.Context, path string, csvOpts tabload.CSVOptions) ([]string, tabload.RowSource, func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if !format.Delimited() {
		return nil, nil, nil, fmt.Errorf("cannot stream %s sources: %w", format, tabload.ErrUnsupportedFormat)
	}

	handle, err := r.fs.OpenFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open source file: %w", err)
	}

	header, rows, err := openDelimitedStream(handle, csvOpts)
	if err != nil {
		handle.Close()
		return nil, nil, nil, fmt.Errorf("failed to read header row: %w", err)
	}

	return header, rows, handle.Close, nil
}

// detectFormat maps a file extension to a source format, case-insensitively.
func detectFormat(path string) (tabload.SourceFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return tabload.FormatCSV, nil
	case ".xlsx":
		return tabload.FormatXLSX, nil
	case ".xls":
		return tabload.FormatXLS, nil
	default:
		return 0, fmt.Errorf("unsupported file type %q, only .csv, .xlsx and .xls are supported: %w", ext, tabload.ErrUnsupportedFormat)
	}
}

// Compile-time check that Reader satisfies the public interface.
var _ tabload.SourceReader = (*Reader)(nil)
