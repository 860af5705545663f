package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreFormat(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, s.Save(context.Background(), []User{
		{ID: 1, Name: "Ann", Email: "a@x.com", Address: "2 St", Phone: "111"},
	}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "id": 1,
    "name": "Ann",
    "email": "a@x.com",
    "address": "2 St",
    "phone": "111"
  }
]
`, string(data))
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "users.json"))

	for i := range 3 {
		require.NoError(t, s.Save(context.Background(), []User{{ID: i + 1}}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestFileStoreSaveIntoMissingDirectory(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "users.json"))

	err := s.Save(context.Background(), []User{{ID: 1}})
	assert.Error(t, err)
	_, statErr := os.Stat(s.Path())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestFileStoreInit(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "data", "users.json"))

	require.NoError(t, s.Init(ctx))
	users, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestFileStoreInitKeepsExistingFile(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, s.Save(ctx, []User{{ID: 1, Name: "Ann"}}))

	require.NoError(t, s.Init(ctx))

	users, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestFileStoreLoadNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	users, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFileStoreSaveKeepsFileMode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o600))

	_, err := New(NewFileStore(path)).Append(ctx, NewUser{Name: "Ann"})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreNewFileMode(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, s.Init(context.Background()))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileStoreSaveFollowsSymlink(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	target := filepath.Join(dir, "target", "users.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("[]\n"), 0o640))

	link := filepath.Join(dir, "users.json")
	require.NoError(t, os.Symlink(target, link))

	_, err := New(NewFileStore(link)).Append(ctx, NewUser{Name: "Ann"})
	require.NoError(t, err)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "store path is no longer a symlink")

	users, err := NewFileStore(target).Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)

	targetInfo, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), targetInfo.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
