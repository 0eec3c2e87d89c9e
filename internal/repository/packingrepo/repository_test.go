package packingrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotrace/internal/domain"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/repository/packingrepo"
)

// MockCache é uma implementação mock de cache.Client.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}
func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCache) Expire(ctx context.Context, key string, exp time.Duration) error {
	return m.Called(ctx, key, exp).Error(0)
}
func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *MockCache) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	a := m.Called(ctx, script, keys, args)
	return a.Get(0), a.Error(1)
}
func (m *MockCache) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

// Em cache HIT o banco não é consultado (DB nil).
func TestFindRule_CacheHit(t *testing.T) {
	cached := domain.PackingRule{CompanyID: "acme", SKU: "SKU-1", CompanyPrefix: "0614141", ExtensionDigit: 1}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, "packing-rule:acme:SKU-1").Return(string(raw), nil)

	repo := packingrepo.NewPackingRuleRepository(nil, mockCache, time.Second, time.Minute, logger.Nop())
	rule, err := repo.FindRule(context.Background(), "acme", "SKU-1")

	assert.NoError(t, err)
	assert.Equal(t, cached, rule)
	mockCache.AssertExpectations(t)
}

func TestInvalidate(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Delete", mock.Anything, "packing-rule:acme:SKU-1").Return(nil)

	repo := packingrepo.NewPackingRuleRepository(nil, mockCache, time.Second, time.Minute, logger.Nop())
	assert.NoError(t, repo.Invalidate(context.Background(), "acme", "SKU-1"))
	mockCache.AssertExpectations(t)
}
