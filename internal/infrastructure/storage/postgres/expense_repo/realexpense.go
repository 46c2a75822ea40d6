// Package expense_repo provides the PostgreSQL implementation for
// real-expense records.
package expense_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/domain"
	"cotizador/internal/domain/expenses/realexpense"
	"cotizador/internal/infrastructure/storage/postgres"
)

const realExpensesTable = "real_expenses"

// RealExpenseRepo implements realexpense.Repository.
type RealExpenseRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRealExpenseRepo creates a new real-expense repository.
func NewRealExpenseRepo(txManager *postgres.TxManager) *RealExpenseRepo {
	return &RealExpenseRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[realexpense.Record](),
	}
}

func (r *RealExpenseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *RealExpenseRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(realExpensesTable)
}

// Create inserts a record.
func (r *RealExpenseRepo) Create(ctx context.Context, rec *realexpense.Record) error {
	data := postgres.StructToMap(rec)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(realExpensesTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert real expense: %w", err)
	}

	return nil
}

// GetByID retrieves a record by ID.
func (r *RealExpenseRepo) GetByID(ctx context.Context, recID id.ID) (*realexpense.Record, error) {
	rec := &realexpense.Record{}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": recID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("real_expense", recID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	return rec, nil
}

// Update modifies a record with optimistic locking.
func (r *RealExpenseRepo) Update(ctx context.Context, rec *realexpense.Record) error {
	data := postgres.StructToMap(rec)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" || col == "created_at" || col == "created_by" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Update(realExpensesTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": rec.ID}).
		Where(squirrel.Eq{"version": rec.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update real expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(realExpensesTable, rec.ID)
	}

	return nil
}

// Delete removes a record.
func (r *RealExpenseRepo) Delete(ctx context.Context, recID id.ID) error {
	q := r.builder().
		Delete(realExpensesTable).
		Where(squirrel.Eq{"id": recID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete real expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("real_expense", recID.String())
	}

	return nil
}

// ListByQuotation returns all records of a quotation ordered by purchase date.
func (r *RealExpenseRepo) ListByQuotation(ctx context.Context, quotationID id.ID) ([]*realexpense.Record, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"quotation_id": quotationID}).
		OrderBy("purchase_date ASC, created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []*realexpense.Record
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list by quotation: %w", err)
	}

	return records, nil
}

// ListByLine returns the records of one quotation line.
func (r *RealExpenseRepo) ListByLine(ctx context.Context, quotationID, lineID id.ID) ([]*realexpense.Record, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"quotation_id": quotationID}).
		Where(squirrel.Eq{"line_id": lineID}).
		OrderBy("purchase_date ASC, created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []*realexpense.Record
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list by line: %w", err)
	}

	return records, nil
}

// List retrieves records with filtering and pagination.
func (r *RealExpenseRepo) List(ctx context.Context, filter realexpense.ListFilter) (domain.ListResult[*realexpense.Record], error) {
	result := domain.ListResult[*realexpense.Record]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.QuotationID != nil {
		q = q.Where(squirrel.Eq{"quotation_id": *filter.QuotationID})
	}
	if filter.LineID != nil {
		q = q.Where(squirrel.Eq{"line_id": *filter.LineID})
	}
	if filter.Provider != "" {
		q = q.Where(squirrel.ILike{"provider": "%" + filter.Provider + "%"})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"purchase_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"purchase_date": *filter.DateTo})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"material_name": "%" + filter.Search + "%"})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("purchase_date DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}
