package main

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hierarchyservice "ledgerguard/internal/hierarchy/service"
	hierarchystore "ledgerguard/internal/hierarchy/store"
	"ledgerguard/internal/platform/config"
)

func TestNewCipher(t *testing.T) {
	t.Run("dev seed outside production", func(t *testing.T) {
		c, err := newCipher(config.PIIConfig{DevSeed: "seed"}, false)
		require.NoError(t, err)
		ct, err := c.Encrypt("ABCDE1234F")
		require.NoError(t, err)
		pt, err := c.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, "ABCDE1234F", pt)
	})

	t.Run("production requires an explicit key", func(t *testing.T) {
		_, err := newCipher(config.PIIConfig{DevSeed: "seed"}, true)
		assert.Error(t, err)
	})

	t.Run("explicit key", func(t *testing.T) {
		key := base64.StdEncoding.EncodeToString(make([]byte, 32))
		_, err := newCipher(config.PIIConfig{EncryptionKey: key}, true)
		assert.NoError(t, err)
	})
}

func TestBootstrapRoot(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := hierarchystore.NewInMemory()
	svc, err := hierarchyservice.New(store, hierarchyservice.WithLogger(log))
	require.NoError(t, err)

	require.NoError(t, bootstrapRoot(ctx, svc, "", log), "no login is a no-op")

	require.NoError(t, bootstrapRoot(ctx, svc, "ops-root", log))
	first, err := svc.ResolveActorByLogin(ctx, "ops-root")
	require.NoError(t, err)

	require.NoError(t, bootstrapRoot(ctx, svc, "ops-root", log), "second start finds the existing root")
	second, err := svc.ResolveActorByLogin(ctx, "ops-root")
	require.NoError(t, err)
	assert.Equal(t, first.Node().ID, second.Node().ID)
	assert.True(t, second.Node().IsRoot())
}
