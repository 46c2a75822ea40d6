package expense

import (
	"context"

	"cotizador/internal/core/numerator"
	"cotizador/internal/core/tx"
	"cotizador/internal/core/types"
	"cotizador/internal/domain"
)

// Service provides business logic for the FixedExpense catalog.
type Service struct {
	*domain.CatalogService[*FixedExpense]
	repo Repository
}

// NewService creates a new FixedExpense service.
func NewService(repo Repository, txManager tx.Manager, num numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*FixedExpense]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "fixed_expense",
		CodePrefix: "FEX",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// MonthlyTotal returns the sum of active monthly expenses.
func (s *Service) MonthlyTotal(ctx context.Context) (types.Money, error) {
	return s.repo.SumActive(ctx)
}
