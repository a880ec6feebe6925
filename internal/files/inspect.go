package files

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dexhamter/tabload/internal/checksum"
	"github.com/dexhamter/tabload/internal/files/filesystem"
)

// SourceInfo describes one source file before import. The checksum identifies
// the exact bytes the run saw, for the audit log.
type SourceInfo struct {
	Path      string
	Extension string
	Bytes     int64
	ModTime   time.Time
	SHA256    string
}

// Inspector gathers provenance details about a source file.
// Inspector is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Inspector struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewInspector creates a new file inspector with the given checksum calculator.
// Uses OS filesystem by default.
// Panics if calculator is nil.
func NewInspector(calculator checksum.Calculator) *Inspector {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Inspector{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewInspectorWithFS creates a new file inspector with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if calculator or fsProvider is nil.
func NewInspectorWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Inspector {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Inspector{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// Inspect stats and hashes the file at path. The file is streamed through the
// checksum calculator, never buffered whole.
func (i *Inspector) Inspect(path string) (*SourceInfo, error) {
	info, err := i.fsProvider.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source file: %w", err)
	}

	f, err := i.fsProvider.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	sum, err := i.calculator.CalculateReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to hash source file: %w", err)
	}

	return &SourceInfo{
		Path:      path,
		Extension: strings.ToLower(filepath.Ext(path)),
		Bytes:     info.Size(),
		ModTime:   info.ModTime(),
		SHA256:    sum,
	}, nil
}
