package catalog

import (
	"context"

	"github.com/neighbourgood/booking/internal/domain"
	"github.com/neighbourgood/booking/internal/repository"
)

// CatalogUseCase is the narrow read capability the reservation engine
// consumes: resource ownership, listed-availability, and the title used
// for the booking snapshot. Catalog writes live in another subsystem.
type CatalogUseCase interface {
	List(ctx context.Context) ([]domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

type Cache interface {
	GetResources(ctx context.Context) ([]domain.Resource, error)
	SetResources(ctx context.Context, resources []domain.Resource) error
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
	SetResource(ctx context.Context, resource *domain.Resource) error
}

type CatalogService struct {
	repo  repository.ResourceRepository
	cache Cache
}

func NewCatalogService(repo repository.ResourceRepository, cache Cache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Resource, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetResources(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	resources, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetResources(ctx, resources)
	}
	return resources, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetResource(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetResource(ctx, resource)
	}
	return resource, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
