package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erenasiroglu/persona-backend/internal/service"
)

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := NewUserCache(nil, 0)
	ctx := context.Background()

	_, hit := c.Get(ctx, 1)
	require.False(t, hit)

	// Set and Invalidate must not panic without a client.
	c.Set(ctx, service.PublicUser{ID: 1, Email: "a@x.com"})
	c.Invalidate(ctx, 1)

	var nilCache *UserCache
	_, hit = nilCache.Get(ctx, 1)
	require.False(t, hit)
}
