package filesystem

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// EmbedFileSystem exposes a subtree of an embed.FS. Paths passed to its
// methods resolve relative to the configured root; backslashes are accepted
// and normalized since embed.FS only understands forward slashes.
type EmbedFileSystem struct {
	embedFS embed.FS
	root    string
}

// NewEmbedFileSystem wraps embedFS, treating root as the top of the tree.
func NewEmbedFileSystem(embedFS embed.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{
		embedFS: embedFS,
		root:    path.Clean(root),
	}
}

// resolve maps a caller-supplied path onto the embed.FS namespace.
func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	switch {
	case p == "" || p == ".":
		return efs.root
	case strings.HasPrefix(p, "/") || path.IsAbs(p):
		return path.Clean(p)
	default:
		return path.Clean(path.Join(efs.root, p))
	}
}

// Open returns a walkable handle on a directory within the embedded tree.
func (efs *EmbedFileSystem) Open(openPath string) (Directory, error) {
	absPath := efs.resolve(openPath)

	// ReadDir doubles as the existence-and-is-directory check.
	if _, err := efs.embedFS.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}

	return &embedDirectory{
		embedFS: &efs.embedFS,
		absPath: absPath,
		root:    efs.root,
	}, nil
}

func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := efs.embedFS.ReadFile(efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.embedFS, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}

type embedDirectory struct {
	embedFS *embed.FS
	absPath string
	root    string
}

func (d *embedDirectory) Path() string { return d.absPath }

func (d *embedDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.embedFS, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}

		relPath, err := filepath.Rel(d.root, filePath)
		if err != nil {
			return fn(nil, fmt.Errorf("failed to calculate relative path: %w", err))
		}

		return fn(&embedFile{
			embedFS: d.embedFS,
			absPath: filePath,
			relPath: filepath.ToSlash(relPath),
			info:    info,
		}, nil)
	})
}

type embedFile struct {
	embedFS *embed.FS
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *embedFile) Path() string         { return f.absPath }
func (f *embedFile) RelativePath() string { return f.relPath }
func (f *embedFile) Info() FileInfo       { return f.info }

func (f *embedFile) ReadContent() ([]byte, error) {
	return f.embedFS.ReadFile(f.absPath)
}
