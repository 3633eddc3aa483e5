package planning_test

import (
	"testing"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectionInputs struct {
	UserID  string
	Balance string
	Horizon int
}

func TestCacheKey_Deterministic(t *testing.T) {
	a, err := planning.CacheKey(projectionInputs{UserID: "u1", Balance: "1000", Horizon: 12})
	require.NoError(t, err)
	b, err := planning.CacheKey(projectionInputs{UserID: "u1", Balance: "1000", Horizon: 12})
	require.NoError(t, err)
	c, err := planning.CacheKey(projectionInputs{UserID: "u1", Balance: "1000", Horizon: 13})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestProjectionCache_PutGet(t *testing.T) {
	cache := planning.NewProjectionCache(time.Minute, 10)
	now := date(2025, time.June, 1)
	points := []domain.ProjectionPoint{{MonthIndex: 1, ProjectedBalance: decimal.NewFromInt(100)}}

	_, ok := cache.Get(42, now)
	assert.False(t, ok)

	cache.Put(42, points, now)
	got, ok := cache.Get(42, now.Add(30*time.Second))
	require.True(t, ok)
	assert.Len(t, got, 1)
	assert.True(t, got[0].ProjectedBalance.Equal(decimal.NewFromInt(100)))
}

func TestProjectionCache_GetIsolatesCallers(t *testing.T) {
	cache := planning.NewProjectionCache(time.Minute, 10)
	now := date(2025, time.June, 1)
	cache.Put(42, []domain.ProjectionPoint{{MonthIndex: 1, ProjectedBalance: decimal.NewFromInt(100)}}, now)

	first, ok := cache.Get(42, now)
	require.True(t, ok)
	first[0].ProjectedBalance = decimal.NewFromInt(-1)

	second, ok := cache.Get(42, now)
	require.True(t, ok)
	assert.True(t, second[0].ProjectedBalance.Equal(decimal.NewFromInt(100)))
}

func TestProjectionCache_TTLExpiry(t *testing.T) {
	cache := planning.NewProjectionCache(time.Minute, 10)
	now := date(2025, time.June, 1)
	cache.Put(7, []domain.ProjectionPoint{{MonthIndex: 1}}, now)

	_, ok := cache.Get(7, now.Add(2*time.Minute))
	assert.False(t, ok)
}

func TestProjectionCache_BoundedSize(t *testing.T) {
	cache := planning.NewProjectionCache(time.Hour, 3)
	now := date(2025, time.June, 1)

	for i := 0; i < 10; i++ {
		cache.Put(uint64(i), []domain.ProjectionPoint{{MonthIndex: i}}, now.Add(time.Duration(i)*time.Second))
	}

	// The newest entry always survives eviction.
	_, ok := cache.Get(9, now.Add(time.Minute))
	assert.True(t, ok)

	// The oldest entries are gone.
	_, ok = cache.Get(0, now.Add(time.Minute))
	assert.False(t, ok)
}
