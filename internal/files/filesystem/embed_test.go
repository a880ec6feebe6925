package filesystem

import (
	"embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed testdata
var testdataFS embed.FS

// normalizeLineEndings strips Windows CRLF so content checks pass regardless
// of how the checkout translated line endings.
func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func TestEmbedFileSystem_Open(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	for _, tt := range []struct {
		name      string
		path      string
		expectErr bool
	}{
		{name: "root directory", path: "."},
		{name: "empty path resolves to root", path: ""},
		{name: "subdirectory", path: "subdir"},
		{name: "missing directory", path: "nonexistent", expectErr: true},
		{name: "file is not a directory", path: "orders.csv", expectErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := efs.Open(tt.path)
			if tt.expectErr {
				require.Error(t, err)
				require.Nil(t, dir)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, dir)
		})
	}
}

func TestEmbedFileSystem_ReadFile(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	content, err := efs.ReadFile("orders.csv")
	require.NoError(t, err)
	require.Equal(t, "id,name\n1,alpha\n", normalizeLineEndings(string(content)))

	content, err = efs.ReadFile("subdir/nested.csv")
	require.NoError(t, err)
	require.Equal(t, "sku,qty\nA1,3\n", normalizeLineEndings(string(content)))

	_, err = efs.ReadFile("nonexistent.csv")
	require.Error(t, err)
}

func TestEmbedFileSystem_Stat(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	for _, tt := range []struct {
		name      string
		path      string
		isDir     bool
		expectErr bool
	}{
		{name: "root directory", path: ".", isDir: true},
		{name: "file at root", path: "orders.csv"},
		{name: "subdirectory", path: "subdir", isDir: true},
		{name: "nested file", path: "subdir/nested.csv"},
		{name: "missing path", path: "nonexistent", expectErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			info, err := efs.Stat(tt.path)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.isDir, info.IsDir())
		})
	}
}

func TestEmbedFileSystem_Walk(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	dir, err := efs.Open(".")
	require.NoError(t, err)

	var files, dirs []string
	err = dir.Walk(func(file File, walkErr error) error {
		require.NoError(t, walkErr)
		if file.Info().IsDir() {
			dirs = append(dirs, file.RelativePath())
		} else {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"orders.csv", "subdir/nested.csv"}, files)
	require.ElementsMatch(t, []string{".", "subdir"}, dirs)
}

func TestEmbedFileSystem_WalkReadContent(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	dir, err := efs.Open(".")
	require.NoError(t, err)

	var found bool
	err = dir.Walk(func(file File, walkErr error) error {
		require.NoError(t, walkErr)
		if file.Info().IsDir() || file.RelativePath() != "orders.csv" {
			return nil
		}
		found = true

		content, err := file.ReadContent()
		require.NoError(t, err)
		require.Equal(t, "id,name\n1,alpha\n", normalizeLineEndings(string(content)))

		require.Equal(t, "orders.csv", file.Info().Name())
		require.Greater(t, file.Info().Size(), int64(0))
		return nil
	})
	require.NoError(t, err)
	require.True(t, found, "walk should visit orders.csv")
}

// Windows-style and ./-prefixed paths must resolve to the same embedded file.
func TestEmbedFileSystem_PathNormalization(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	for _, p := range []string{
		"subdir/nested.csv",
		"subdir\\nested.csv",
		"./subdir/nested.csv",
	} {
		content, err := efs.ReadFile(p)
		require.NoError(t, err, "path %q", p)
		require.Equal(t, "sku,qty\nA1,3\n", normalizeLineEndings(string(content)))
	}
}

func TestEmbedFileSystem_RelativePathsUseForwardSlashes(t *testing.T) {
	efs := NewEmbedFileSystem(testdataFS, "testdata")

	dir, err := efs.Open(".")
	require.NoError(t, err)

	err = dir.Walk(func(file File, walkErr error) error {
		require.NoError(t, walkErr)
		require.NotContains(t, file.RelativePath(), "\\")
		return nil
	})
	require.NoError(t, err)
}
