package material

import (
	"context"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/numerator"
	"cotizador/internal/core/tx"
	"cotizador/internal/domain"
)

// Service provides business logic for the Material catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Material]
	repo Repository
}

// NewService creates a new Material service.
func NewService(repo Repository, txManager tx.Manager, num numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Material]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "material",
		CodePrefix: "MAT",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)

	return svc
}

// checkCodeUnique rejects an explicit code already taken by another material.
func (s *Service) checkCodeUnique(ctx context.Context, item *Material) error {
	if item.Code == "" {
		return nil
	}
	exists, err := s.repo.ExistsByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflict("material with this code already exists").
			WithDetail("code", item.Code)
	}
	return nil
}

// FindByCategory retrieves materials of one category.
func (s *Service) FindByCategory(ctx context.Context, category MaterialCategory, filter domain.ListFilter) (domain.ListResult[*Material], error) {
	return s.repo.FindByCategory(ctx, category, filter)
}
