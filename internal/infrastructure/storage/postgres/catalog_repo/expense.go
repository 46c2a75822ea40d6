package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"cotizador/internal/core/types"
	"cotizador/internal/domain/catalogs/expense"
	"cotizador/internal/infrastructure/storage/postgres"
)

const fixedExpenseTable = "cat_fixed_expenses"

// FixedExpenseRepo implements expense.Repository.
type FixedExpenseRepo struct {
	*BaseCatalogRepo[*expense.FixedExpense]
}

// NewFixedExpenseRepo creates a new fixed expense repository.
func NewFixedExpenseRepo(txManager *postgres.TxManager) *FixedExpenseRepo {
	return &FixedExpenseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*expense.FixedExpense](
			txManager,
			fixedExpenseTable,
			postgres.ExtractDBColumns[expense.FixedExpense](),
			func() *expense.FixedExpense { return &expense.FixedExpense{} },
		),
	}
}

// SumActive returns the total monthly amount of active expenses.
func (r *FixedExpenseRepo) SumActive(ctx context.Context) (types.Money, error) {
	q := r.Builder().
		Select("COALESCE(SUM(monthly_amount), 0)").
		From(fixedExpenseTable).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_folder": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build query: %w", err)
	}

	var total decimal.Decimal
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum active expenses: %w", err)
	}

	return total, nil
}
