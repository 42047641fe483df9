package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fastcheck.dev/pkg/fastcheck/internal/model"
)

func TestLocalSourceFSAdapter_Enumerate(t *testing.T) {
	ctx := context.Background()

	t.Run("walks nested directories", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)

		writeTestFile(t, filepath.Join(root, "a.txt"), "a")
		mustMkdir(t, filepath.Join(root, "sub"))
		mustMkdir(t, filepath.Join(root, "sub", "deeper"))
		writeTestFile(t, filepath.Join(root, "sub", "b.txt"), "b")
		writeTestFile(t, filepath.Join(root, "sub", "deeper", "c.txt"), "c")

		paths, err := adapter.Enumerate(ctx, m.Path(root), EnumerateOptions{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []m.Path{
			m.Path(filepath.Join(root, "a.txt")),
			m.Path(filepath.Join(root, "sub", "b.txt")),
			m.Path(filepath.Join(root, "sub", "deeper", "c.txt")),
		}, paths)
	})

	t.Run("single file root", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)
		file := filepath.Join(root, "only.bin")
		writeTestFile(t, file, "x")

		paths, err := adapter.Enumerate(ctx, m.Path(file), EnumerateOptions{})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(file)}, paths)
	})

	t.Run("resolves dot segments", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)
		mustMkdir(t, filepath.Join(root, "sub"))
		writeTestFile(t, filepath.Join(root, "a.txt"), "a")

		paths, err := adapter.Enumerate(ctx, m.Path(filepath.Join(root, "sub", "..", "a.txt")), EnumerateOptions{})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "a.txt"))}, paths)
	})

	t.Run("empty root means working directory", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)
		writeTestFile(t, filepath.Join(root, "cwd.txt"), "x")
		t.Chdir(root)

		for _, r := range []m.Path{"", "./"} {
			paths, err := adapter.Enumerate(ctx, r, EnumerateOptions{})
			require.NoError(t, err)
			assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "cwd.txt"))}, paths)
		}
	})

	t.Run("missing root is not found", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		_, err := adapter.Enumerate(ctx, m.Path(filepath.Join(t.TempDir(), "nope")), EnumerateOptions{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty directory", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		paths, err := adapter.Enumerate(ctx, m.Path(t.TempDir()), EnumerateOptions{})
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("symlink cycles terminate and files are reported once", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)
		mustMkdir(t, filepath.Join(root, "sub"))
		writeTestFile(t, filepath.Join(root, "sub", "f.txt"), "f")
		mustSymlink(t, root, filepath.Join(root, "sub", "loop"))
		mustSymlink(t, filepath.Join(root, "sub", "f.txt"), filepath.Join(root, "alias.txt"))

		paths, err := adapter.Enumerate(ctx, m.Path(root), EnumerateOptions{})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "sub", "f.txt"))}, paths)
	})

	t.Run("broken symlink fails strict enumeration", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)
		writeTestFile(t, filepath.Join(root, "ok.txt"), "ok")
		mustSymlink(t, filepath.Join(root, "gone"), filepath.Join(root, "dangling"))

		_, err := adapter.Enumerate(ctx, m.Path(root), EnumerateOptions{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)

		paths, err := adapter.Enumerate(ctx, m.Path(root), EnumerateOptions{SkipUnresolvable: true})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "ok.txt"))}, paths)
	})

	t.Run("exclude prunes directories and files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		root := canonicalTempDir(t)
		mustMkdir(t, filepath.Join(root, ".git"))
		writeTestFile(t, filepath.Join(root, ".git", "HEAD"), "ref")
		writeTestFile(t, filepath.Join(root, "keep.txt"), "k")
		writeTestFile(t, filepath.Join(root, "drop.log"), "d")

		paths, err := adapter.Enumerate(ctx, m.Path(root), EnumerateOptions{Exclude: []string{`/\.git$`, `\.log$`}})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "keep.txt"))}, paths)
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		_, err := adapter.Enumerate(ctx, m.Path(t.TempDir()), EnumerateOptions{Exclude: []string{"("}})
		assert.Error(t, err)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := adapter.Enumerate(cancelled, m.Path(t.TempDir()), EnumerateOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := filepath.Join(t.TempDir(), "data.txt")
	writeTestFile(t, path, "Lorem ipsum")

	data, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "Lorem ipsum", string(data))

	_, err = adapter.ReadFile(m.Path(path + ".missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := filepath.Join(t.TempDir(), "sized.bin")
	writeTestBytes(t, path, make([]byte, 42))

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Size())
	assert.False(t, info.IsDir())
}

func canonicalTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func mustSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
}
