package settings_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/bravia"
	"sonyremote/internal/settings"
)

func openTestStore(t *testing.T) (*settings.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	store, err := settings.OpenStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields an unconfigured endpoint", func(t *testing.T) {
		store, _ := openTestStore(t)

		endpoint, err := store.Endpoint(ctx)
		require.NoError(t, err)
		assert.False(t, endpoint.Configured())
	})

	t.Run("saves and reloads the endpoint", func(t *testing.T) {
		store, path := openTestStore(t)
		want := bravia.Endpoint{Address: "192.168.1.100", PSK: "a&b<c>"}

		require.NoError(t, store.SaveEndpoint(ctx, want))
		require.NoError(t, store.Close())

		reopened, err := settings.OpenStore(path)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.Endpoint(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("later saves replace earlier ones", func(t *testing.T) {
		store, _ := openTestStore(t)

		require.NoError(t, store.SaveEndpoint(ctx, bravia.Endpoint{Address: "10.0.0.1", PSK: "1111"}))
		require.NoError(t, store.SaveEndpoint(ctx, bravia.Endpoint{Address: "10.0.0.2", PSK: "2222"}))

		got, err := store.Endpoint(ctx)
		require.NoError(t, err)
		assert.Equal(t, bravia.Endpoint{Address: "10.0.0.2", PSK: "2222"}, got)
	})

	t.Run("refuses incomplete endpoints", func(t *testing.T) {
		store, _ := openTestStore(t)
		require.NoError(t, store.SaveEndpoint(ctx, bravia.Endpoint{Address: "10.0.0.1", PSK: "1111"}))

		err := store.SaveEndpoint(ctx, bravia.Endpoint{Address: "10.0.0.9"})
		assert.ErrorIs(t, err, settings.ErrIncompleteEndpoint)

		got, err := store.Endpoint(ctx)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.1", got.Address)
	})

	t.Run("generic keys", func(t *testing.T) {
		store, _ := openTestStore(t)

		_, ok, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Set(ctx, "theme", "dark"))
		value, ok, err := store.Get(ctx, "theme")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "dark", value)
	})
}

type failingProvider struct{}

func (failingProvider) Endpoint(context.Context) (bravia.Endpoint, error) {
	return bravia.Endpoint{}, errors.New("disk gone")
}

func TestOverlay(t *testing.T) {
	ctx := context.Background()
	base := settings.Static{Address: "10.0.0.1", PSK: "1111"}

	got, err := settings.Overlay{Base: base, Override: bravia.Endpoint{Address: "10.0.0.2"}}.Endpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, bravia.Endpoint{Address: "10.0.0.2", PSK: "1111"}, got)

	got, err = settings.Overlay{Override: bravia.Endpoint{PSK: "9999"}}.Endpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, bravia.Endpoint{PSK: "9999"}, got)

	_, err = settings.Overlay{Base: failingProvider{}}.Endpoint(ctx)
	assert.Error(t, err)
}

func TestMaskPSK(t *testing.T) {
	assert.Equal(t, "****", settings.MaskPSK(""))
	assert.Equal(t, "****", settings.MaskPSK("12"))
	assert.Equal(t, "****34", settings.MaskPSK("1234"))
}
