package serviceitem

import (
	"cotizador/internal/core/numerator"
	"cotizador/internal/core/tx"
	"cotizador/internal/domain"
)

// Service provides business logic for the ServiceItem catalog.
type Service struct {
	*domain.CatalogService[*ServiceItem]
	repo Repository
}

// NewService creates a new ServiceItem service.
func NewService(repo Repository, txManager tx.Manager, num numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*ServiceItem]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "service_item",
		CodePrefix: "SRV",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
