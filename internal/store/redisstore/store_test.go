package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suPer8Hu/goldsmith-storefront/internal/pricing"
)

var _ pricing.QuoteCache = (*Store)(nil)

func TestStore_Unreachable(t *testing.T) {
	s := New("127.0.0.1:1", "", 0)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, ok, err := s.GetLivePrice(ctx)
	assert.Error(t, err)
	assert.False(t, ok)

	allowed, err := s.Allow(ctx, "contact", "10.0.0.1", 1, time.Minute)
	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestStore_AllowDisabled(t *testing.T) {
	s := New("127.0.0.1:1", "", 0)
	defer s.Close()

	allowed, err := s.Allow(context.Background(), "contact", "10.0.0.1", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

// Runs against a real server when REDIS_ADDR is set.
func TestStore_Live(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	s := New(addr, os.Getenv("REDIS_PASSWORD"), 0)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, s.SetLivePrice(ctx, 6500.25, time.Minute))
	price, ok, err := s.GetLivePrice(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 6500.25, price)

	client := "test-" + time.Now().Format("150405.000000000")
	for i := 0; i < 2; i++ {
		allowed, err := s.Allow(ctx, "order-intent", client, 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := s.Allow(ctx, "order-intent", client, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}
