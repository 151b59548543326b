package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fedctl", ConfigFileName))
	require.NoError(t, err)
	return s
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fedctl", "config.json"), path)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s := tempStore(t)
	assert.Empty(t, s.Names())

	_, _, err := s.Current()
	assert.ErrorIs(t, err, ErrNoCurrentContext)
}

func TestStoreLifecycle(t *testing.T) {
	s := tempStore(t)

	require.NoError(t, s.Set("local", &Context{ServerURL: "http://localhost:8080", Realm: "master"}))
	require.NoError(t, s.Set("prod", &Context{ServerURL: "https://sso.example", Realm: "acme"}))

	name, ctx, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "local", name, "the first context becomes current")
	assert.Equal(t, "master", ctx.Realm)
	assert.Equal(t, []string{"local", "prod"}, s.Names())

	require.NoError(t, s.Use("prod"))
	require.NoError(t, s.SetToken("tok", time.Time{}))

	reopened, err := Open(s.Path())
	require.NoError(t, err)
	name, ctx, err = reopened.Current()
	require.NoError(t, err)
	assert.Equal(t, "prod", name)
	assert.Equal(t, "tok", ctx.AccessToken)

	require.NoError(t, reopened.Delete("prod"))
	assert.Empty(t, reopened.CurrentName())
	assert.ErrorIs(t, reopened.Use("prod"), ErrContextNotFound)
}

func TestStoreFilePermissions(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Set("local", &Context{ServerURL: "http://localhost:8080", Realm: "master"}))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePermissions), info.Mode().Perm())
}

func TestSetRejectsIncompleteContext(t *testing.T) {
	s := tempStore(t)
	assert.ErrorIs(t, s.Set("x", &Context{ServerURL: "http://localhost:8080"}), ErrInvalidContext)
	assert.ErrorIs(t, s.Set("x", &Context{Realm: "master"}), ErrInvalidContext)
	assert.Empty(t, s.Names())
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&Context{}).TokenExpired(now), "unknown expiry")
	assert.True(t, (&Context{TokenExpiresAt: now.Add(30 * time.Second)}).TokenExpired(now))
	assert.False(t, (&Context{TokenExpiresAt: now.Add(time.Hour)}).TokenExpired(now))
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), FilePermissions))

	_, err := Open(path)
	assert.Error(t, err)
}
