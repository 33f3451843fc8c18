package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/hiring-assistant/internal/config"
	"alfredoptarigan/hiring-assistant/internal/services"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "hiring-assistant version: unknown\n", out.String())
}

func TestBuildCacheMemory(t *testing.T) {
	cache, closeFn, err := buildCache(context.Background(), config.CacheConfig{Backend: "memory"}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	_, ok := cache.(*services.MemoryCache)
	assert.True(t, ok)
}

func TestBuildCacheRedisBadURL(t *testing.T) {
	_, _, err := buildCache(context.Background(), config.CacheConfig{Backend: "redis", RedisURL: "://bad"}, zap.NewNop())
	assert.Error(t, err)
}
