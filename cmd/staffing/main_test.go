package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/staffing/internal/cache"
	"github.com/garnizeh/staffing/internal/config"
)

func newTestApp(t *testing.T) (*app, *miniredis.Miniredis) {
	t.Helper()
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Database.DSN = ":memory:"
	cfg.Redis.Addr = mr.Addr()

	a, err := open(ctx, cfg, slog.Default(), true)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NotNil(t, a.redis)
	return a, mr
}

func TestDemoRefreshesCachedCatalog(t *testing.T) {
	ctx := context.Background()
	a, mr := newTestApp(t)

	// Prime the cache while the database is still empty.
	stale := cache.NewCatalog(a.redis, a.store, a.cfg.Redis.TTL, a.logger)
	skills, err := stale.Skills(ctx)
	require.NoError(t, err)
	require.Empty(t, skills)
	_, err = stale.Roles(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() { stdout = os.Stdout })
	require.NoError(t, demo(ctx, a))

	var out struct {
		Individuals []struct {
			Skills []struct {
				Skill string `json:"skill"`
			} `json:"skills"`
			Roles []struct {
				Role string `json:"role"`
			} `json:"roles"`
		} `json:"individuals"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Individuals, 1)
	require.Len(t, out.Individuals[0].Skills, 1)
	assert.Equal(t, "Python", out.Individuals[0].Skills[0].Skill)
	require.Len(t, out.Individuals[0].Roles, 1)
	assert.Equal(t, "Senior Python Developer", out.Individuals[0].Roles[0].Role)

	cached, err := mr.Get("staffing:catalog:skills")
	require.NoError(t, err)
	assert.Contains(t, cached, "Python")
}

func TestOpenWithoutRedis(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Database.DSN = ":memory:"
	cfg.Redis.Addr = "127.0.0.1:1"

	a, err := open(context.Background(), cfg, slog.Default(), true)
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.redis)
	// No cache configured: invalidation is a no-op.
	a.invalidateCatalog(context.Background())
}
