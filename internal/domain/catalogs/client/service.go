package client

import (
	"context"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/core/numerator"
	"cotizador/internal/core/tx"
	"cotizador/internal/domain"
)

// Service provides business logic for the Client catalog.
type Service struct {
	*domain.CatalogService[*Client]
	repo Repository
}

// NewService creates a new Client service.
func NewService(repo Repository, txManager tx.Manager, num numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "client",
		CodePrefix: "CLI",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkTaxIDUnique)
	base.Hooks().OnBeforeUpdate(svc.checkTaxIDUnique)

	return svc
}

// FindByTaxID retrieves a client by fiscal identifier.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*Client, error) {
	return s.repo.FindByTaxID(ctx, taxID)
}

func (s *Service) checkTaxIDUnique(ctx context.Context, item *Client) error {
	if item.TaxID == "" {
		return nil
	}
	existing, err := s.repo.FindByTaxID(ctx, item.TaxID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != item.ID && !id.IsNil(existing.ID) {
		return apperror.NewConflict("client with this tax id already exists").
			WithDetail("taxId", item.TaxID)
	}
	return nil
}
