package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Korolev91/estatehub/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheWithClient(client, time.Minute), mr
}

func TestActivePropertiesRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	properties := []domain.Property{
		{ID: 1, Title: "Seafront apartment", Location: "Limassol", Status: domain.PropertyStatusActive},
		{ID: 2, Title: "Office floor", Location: "Nicosia", Status: domain.PropertyStatusActive},
	}

	assert.NoError(t, c.SetActiveProperties(ctx, properties))

	got, err := c.GetActiveProperties(ctx)
	assert.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, properties[0].Title, got[0].Title)
}

func TestGetActiveProperties_MissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetActiveProperties(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidateActiveProperties(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.SetActiveProperties(ctx, []domain.Property{{ID: 1}}))
	assert.NoError(t, c.InvalidateActiveProperties(ctx))

	got, err := c.GetActiveProperties(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestActivePropertiesTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.SetActiveProperties(ctx, []domain.Property{{ID: 1}}))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetActiveProperties(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
