package menu_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/slice-labs/backend-pizzeria/internal/menu"
)

func TestCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := menu.NewCache(client, time.Minute)
	ctx := context.Background()

	items := seedItems()
	require.NoError(t, cache.SetJSON(ctx, "menu:all", items))

	var got []menu.Item
	hit, err := cache.GetJSON(ctx, "menu:all", &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 2)
	require.True(t, got[0].Price.Equal(decimal.RequireFromString("14.99")))
}

func TestCacheMiss(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := menu.NewCache(client, time.Minute)
	var got []menu.Item
	hit, err := cache.GetJSON(context.Background(), "menu:absent", &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheDisabledWithNilClient(t *testing.T) {
	cache := menu.NewCache(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "menu:all", seedItems()))
	var got []menu.Item
	hit, err := cache.GetJSON(ctx, "menu:all", &got)
	require.NoError(t, err)
	require.False(t, hit)
}
