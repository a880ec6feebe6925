package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo aliases fs.FileInfo so callers stay compatible with the fs.FS
// ecosystem.
type FileInfo = fs.FileInfo

// FileSystemProvider abstracts file access so readers can run against the
// real filesystem in production and an in-memory one in tests.
type FileSystemProvider interface {
	// OpenFile opens a file for streaming reads. Workbook parsing needs
	// seeking, so the handle is a ReadSeekCloser.
	OpenFile(path string) (io.ReadSeekCloser, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// File is one entry yielded by a Directory walk.
type File interface {
	// Path is the full path of the file within its filesystem.
	Path() string

	// RelativePath is the path relative to the walked root, with forward
	// slashes.
	RelativePath() string

	Info() FileInfo
	ReadContent() ([]byte, error)
}

// Directory is a walkable tree, used for enumerating embedded template
// files.
type Directory interface {
	Path() string

	// Walk visits every entry under the directory. Traversal errors are
	// passed to fn with a nil File; fn returning an error stops the walk.
	Walk(fn func(File, error) error) error
}
