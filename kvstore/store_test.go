package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/kvstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]kvstore.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	return map[string]kvstore.Store{
		"memory": kvstore.NewMemoryStore(),
		"file":   kvstore.NewFileStore(filepath.Join(t.TempDir(), "nested", "store.json")),
		"redis":  kvstore.NewRedisStore(rc, "test:"),
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get(ctx, "access_token")
			require.NoError(t, err)
			require.False(t, found)

			err = store.SetMany(ctx, map[string]string{"access_token": "T1", "user": `{"id":"1"}`})
			require.NoError(t, err)

			v, found, err := store.Get(ctx, "access_token")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, "T1", v)

			v, found, err = store.Get(ctx, "user")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, `{"id":"1"}`, v)

			err = store.SetMany(ctx, map[string]string{"access_token": "T2"})
			require.NoError(t, err)
			v, _, _ = store.Get(ctx, "access_token")
			require.Equal(t, "T2", v)

			require.NoError(t, store.Delete(ctx, "access_token", "user"))
			_, found, _ = store.Get(ctx, "user")
			require.False(t, found)

			// Deleting missing keys is a no-op.
			require.NoError(t, store.Delete(ctx, "access_token", "user"))
		})
	}
}

func TestFileStore_SharedBetweenInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")

	a := kvstore.NewFileStore(path)
	b := kvstore.NewFileStore(path)

	require.NoError(t, a.SetMany(ctx, map[string]string{"access_token": "shared"}))
	v, found, err := b.Get(ctx, "access_token")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "shared", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	fs := kvstore.NewFileStore(path)

	_, _, err := fs.Get(ctx, "user")
	require.ErrorIs(t, err, errors.ErrCorruptSnapshot)

	t.Run("delete recovers", func(t *testing.T) {
		require.NoError(t, fs.Delete(ctx, "user"))
		_, found, err := fs.Get(ctx, "user")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))
		require.NoError(t, fs.SetMany(ctx, map[string]string{"access_token": "T"}))
		v, found, err := fs.Get(ctx, "access_token")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "T", v)
	})
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()

	store := kvstore.NewRedisStore(rc, "ukci:")
	require.NoError(t, store.SetMany(ctx, map[string]string{"access_token": "T1"}))

	raw, err := mr.Get("ukci:access_token")
	require.NoError(t, err)
	require.Equal(t, "T1", raw)
}
