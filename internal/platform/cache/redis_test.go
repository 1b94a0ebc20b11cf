package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, cleanup := Connect(context.Background(), Config{Addr: mr.Addr()}, logger)
	require.NotNil(t, client)
	defer cleanup()
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestConnect_DisabledOrUnreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, cleanup := Connect(context.Background(), Config{}, logger)
	cleanup()
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	client, cleanup = Connect(context.Background(), Config{Addr: addr}, logger)
	cleanup()
	assert.Nil(t, client)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", " localhost:6379 ")
	t.Setenv("REDIS_DB", "2")
	cfg := ConfigFromEnv()
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, 2, cfg.DB)
}
