package product

import (
	"context"

	"cotizador/internal/core/id"
	"cotizador/internal/core/numerator"
	"cotizador/internal/core/tx"
	"cotizador/internal/core/types"
	"cotizador/internal/domain"
)

// Service provides business logic for the Product catalog.
// It also backs catalog-backed quotation lines as their price source.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, num numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "product",
		CodePrefix: "PRD",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// GetUnitPrice implements quotation.ProductLookup: resolves the name and
// base price of a product for a catalog-backed line.
func (s *Service) GetUnitPrice(ctx context.Context, productID id.ID) (string, types.Money, error) {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return "", types.Zero(), err
	}
	return p.Name, p.BasePrice, nil
}
