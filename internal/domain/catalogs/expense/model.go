// Package expense provides the FixedExpense catalog: recurring monthly
// costs of the workshop (rent, utilities) shown on the dashboard.
package expense

import (
	"context"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
)

// ExpenseKind categorizes a fixed expense.
type ExpenseKind string

const (
	KindRent      ExpenseKind = "rent"
	KindUtilities ExpenseKind = "utilities"
	KindSalaries  ExpenseKind = "salaries"
	KindOther     ExpenseKind = "other"
)

// FixedExpense represents a recurring monthly cost.
type FixedExpense struct {
	entity.Catalog

	MonthlyAmount types.Money `db:"monthly_amount" json:"monthlyAmount"`
	Kind          ExpenseKind `db:"kind" json:"kind"`

	// Active expenses are included in dashboard totals
	Active bool `db:"active" json:"active"`
}

// New creates a FixedExpense with required fields.
func New(code, name string, monthlyAmount types.Money, kind ExpenseKind) *FixedExpense {
	return &FixedExpense{
		Catalog:       entity.NewCatalog(code, name),
		MonthlyAmount: monthlyAmount,
		Kind:          kind,
		Active:        true,
	}
}

// Validate implements entity.Validatable.
func (e *FixedExpense) Validate(ctx context.Context) error {
	if err := e.Catalog.Validate(ctx); err != nil {
		return err
	}

	if e.IsFolder {
		return nil
	}

	if e.MonthlyAmount.IsNegative() {
		return apperror.NewValidation("monthly amount cannot be negative").
			WithDetail("field", "monthlyAmount")
	}
	switch e.Kind {
	case KindRent, KindUtilities, KindSalaries, KindOther:
	default:
		return apperror.NewValidation("invalid expense kind").
			WithDetail("field", "kind").
			WithDetail("value", string(e.Kind))
	}

	return nil
}
