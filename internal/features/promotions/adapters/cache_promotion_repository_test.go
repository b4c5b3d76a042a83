package adapters

import (
	"context"
	"testing"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/features/promotions/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePromotionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	repo := NewCachePromotionRepository(store)
	ctx := context.Background()

	t.Run("EmptyIsNil", func(t *testing.T) {
		p, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("SaveWithTTL", func(t *testing.T) {
		p, err := domain.NewPromotion("Weekend sale", "20% off", domain.KindDeal, "SAVE20", 120, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))

		assert.Equal(t, 120*time.Second, mr.TTL(promotionCacheKey))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Weekend sale", got.Title)
		assert.Equal(t, "SAVE20", got.CouponCode)

		mr.FastForward(121 * time.Second)
		got, err = repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("PermanentAndDelete", func(t *testing.T) {
		p, err := domain.NewPromotion("Now open", "", domain.KindInfo, "", 0, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
		assert.Zero(t, mr.TTL(promotionCacheKey))

		require.NoError(t, repo.Delete(ctx))
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCachePromotionRepository_CorruptData(t *testing.T) {
	store := cache.NewMemoryAdapter()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, promotionCacheKey, []byte("not json"), 0))

	_, err := NewCachePromotionRepository(store).Get(ctx)
	assert.Error(t, err)
}
