package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryHandle adapts a bytes.Reader to io.ReadSeekCloser
type memoryHandle struct {
	*bytes.Reader
}

func (h *memoryHandle) Close() error { return nil }

// MemoryFileSystem implements FileSystemProvider backed by a map.
// Intended for tests; not safe for concurrent mutation.
type MemoryFileSystem struct {
	files   map[string][]byte
	modTime time.Time
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files:   make(map[string][]byte),
		modTime: time.Now(),
	}
}

// AddFile registers content under the given path, replacing any previous content.
func (m *MemoryFileSystem) AddFile(filePath string, content []byte) {
	m.files[path.Clean(filePath)] = content
}

func (m *MemoryFileSystem) OpenFile(filePath string) (io.ReadSeekCloser, error) {
	content, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return &memoryHandle{bytes.NewReader(content)}, nil
}

func (m *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return content, nil
}

func (m *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	content, ok := m.files[path.Clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return &memoryFileInfo{
		name:    path.Base(filePath),
		size:    int64(len(content)),
		mode:    0o644,
		modTime: m.modTime,
	}, nil
}
