package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/neighbourgood/booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) List(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

type fakeCache struct {
	resources []domain.Resource
	byID      map[int64]*domain.Resource
}

func newFakeCache() *fakeCache {
	return &fakeCache{byID: map[int64]*domain.Resource{}}
}

func (c *fakeCache) GetResources(context.Context) ([]domain.Resource, error) {
	return c.resources, nil
}

func (c *fakeCache) SetResources(_ context.Context, resources []domain.Resource) error {
	c.resources = resources
	return nil
}

func (c *fakeCache) GetResource(_ context.Context, id int64) (*domain.Resource, error) {
	return c.byID[id], nil
}

func (c *fakeCache) SetResource(_ context.Context, resource *domain.Resource) error {
	c.byID[resource.ID] = resource
	return nil
}

func TestCatalogService_ListFillsCache(t *testing.T) {
	repo := &MockResourceRepository{}
	cache := newFakeCache()
	svc := NewCatalogService(repo, cache)
	ctx := context.Background()

	stored := []domain.Resource{{ID: 10, Title: "Cordless drill", OwnerID: 1, IsAvailable: true}}
	repo.On("List", ctx).Return(stored, nil).Once()

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	// second call is served from cache, no extra repo hit
	got, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestCatalogService_GetByIDFillsCache(t *testing.T) {
	repo := &MockResourceRepository{}
	cache := newFakeCache()
	svc := NewCatalogService(repo, cache)
	ctx := context.Background()

	stored := &domain.Resource{ID: 10, Title: "Cordless drill", OwnerID: 1, IsAvailable: true}
	repo.On("GetByID", ctx, int64(10)).Return(stored, nil).Once()

	got, err := svc.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	got, err = svc.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCatalogService_NilCache(t *testing.T) {
	repo := &MockResourceRepository{}
	svc := NewCatalogService(repo, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(10)).Return(&domain.Resource{ID: 10}, nil)
	_, err := svc.GetByID(ctx, 10)
	assert.NoError(t, err)
}

func TestCatalogService_NotFoundPassesThrough(t *testing.T) {
	repo := &MockResourceRepository{}
	svc := NewCatalogService(repo, newFakeCache())
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(999)).Return(nil, domain.NotFoundf("resource 999"))
	_, err := svc.GetByID(ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
