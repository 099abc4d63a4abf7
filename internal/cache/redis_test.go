package cache

import (
	"context"
	"testing"

	"cinelist/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := Connect(ctx, mr.Addr())
		require.NotNil(t, c)
		defer c.Close()
		assert.NoError(t, c.Ping(ctx).Err())
	})

	t.Run("url form", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := Connect(ctx, "redis://"+mr.Addr()+"/0")
		require.NotNil(t, c)
		c.Close()
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Connect(ctx, "  "))
	})

	t.Run("malformed url", func(t *testing.T) {
		assert.Nil(t, Connect(ctx, "redis://localhost:notaport"))
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		assert.Nil(t, Connect(ctx, addr))
	})
}

func TestErrorCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewClient(mr.Addr())
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	getErrors := middleware.RedisErrors.WithLabelValues("get")
	before := promtest.ToFloat64(getErrors)

	// A miss is not an error.
	_, err = c.Get(ctx, "missing").Result()
	require.Error(t, err)
	assert.Equal(t, before, promtest.ToFloat64(getErrors))

	mr.SetError("ERR injected")
	_, err = c.Get(ctx, "missing").Result()
	require.Error(t, err)
	assert.Equal(t, before+1, promtest.ToFloat64(getErrors))
}
