package expense

import (
	"context"

	"cotizador/internal/core/types"
	"cotizador/internal/domain"
)

// Repository defines the interface for FixedExpense persistence.
type Repository interface {
	domain.CatalogRepository[*FixedExpense]

	// SumActive returns the total monthly amount of active expenses.
	SumActive(ctx context.Context) (types.Money, error)
}
