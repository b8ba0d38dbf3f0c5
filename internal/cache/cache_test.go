package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/flexprice/offerpricing/internal/config"
	"github.com/flexprice/offerpricing/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(enabled bool) *InMemoryCache {
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = enabled
	return NewInMemoryCache(cfg, logger.NewNoopLogger()).(*InMemoryCache)
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(true)

	c.Set(ctx, PrefixPricePreview+"a", 1, 0)
	c.Set(ctx, PrefixPricePreview+"b", 2, time.Minute)
	c.Set(ctx, PrefixBillingProjection+"a", 3, 0)

	v, ok := c.Get(ctx, PrefixPricePreview+"a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = c.Get(ctx, PrefixBillingProjection+"a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = c.Get(ctx, PrefixPricePreview+"missing")
	assert.False(t, ok)
	assert.Equal(t, 3, c.ItemCount())
}

func TestDisabledCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(false)

	c.Set(ctx, "k", "v", 0)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.ItemCount())
}

func TestHashKeyIsCanonical(t *testing.T) {
	a := map[string]string{"b": "2", "a": "1", "c": "3"}
	b := map[string]string{"c": "3", "a": "1", "b": "2"}

	ka, err := HashKey(PrefixPricePreview, a, "tier")
	require.NoError(t, err)
	kb, err := HashKey(PrefixPricePreview, b, "tier")
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
	assert.True(t, strings.HasPrefix(ka, PrefixPricePreview))

	kc, err := HashKey(PrefixPricePreview, a, "other")
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc)
}
