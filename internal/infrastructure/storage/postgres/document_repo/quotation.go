package document_repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
	"cotizador/internal/domain"
	"cotizador/internal/domain/documents/quotation"
	"cotizador/internal/domain/pricing"
	"cotizador/internal/infrastructure/storage/postgres"
)

const (
	quotationsTable     = "doc_quotations"
	quotationLinesTable = "doc_quotation_lines"
)

// QuotationRepo implements quotation.Repository.
type QuotationRepo struct {
	*BaseDocumentRepo[*quotation.Quotation]
}

// NewQuotationRepo creates a new quotation repository.
func NewQuotationRepo(txManager *postgres.TxManager) *QuotationRepo {
	return &QuotationRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*quotation.Quotation](
			txManager,
			quotationsTable,
			postgres.ExtractDBColumns[quotation.Quotation](),
			func() *quotation.Quotation { return &quotation.Quotation{} },
		),
	}
}

// quotationLineRow is the storage shape of a line. Manual cost input and the
// price breakdown are JSONB payloads.
type quotationLineRow struct {
	LineID           id.ID           `db:"line_id"`
	LineNo           int             `db:"line_no"`
	Kind             string          `db:"kind"`
	Name             string          `db:"name"`
	Description      string          `db:"description"`
	Quantity         int             `db:"quantity"`
	ProductID        id.ID           `db:"product_id"`
	SelectedColor    string          `db:"selected_color"`
	SelectedMaterial string          `db:"selected_material"`
	Manual           json.RawMessage `db:"manual"`
	UnitPrice        types.Money     `db:"unit_price"`
	LineTotal        types.Money     `db:"line_total"`
	Breakdown        json.RawMessage `db:"breakdown"`
}

func (row *quotationLineRow) toLine() (quotation.Line, error) {
	line := quotation.Line{
		LineID:           row.LineID,
		LineNo:           row.LineNo,
		Kind:             quotation.LineKind(row.Kind),
		Name:             row.Name,
		Description:      row.Description,
		Quantity:         row.Quantity,
		ProductID:        row.ProductID,
		SelectedColor:    row.SelectedColor,
		SelectedMaterial: row.SelectedMaterial,
		UnitPrice:        row.UnitPrice,
		LineTotal:        row.LineTotal,
	}
	if len(row.Manual) > 0 {
		var manual pricing.ManualItemInput
		if err := json.Unmarshal(row.Manual, &manual); err != nil {
			return line, fmt.Errorf("decode manual payload: %w", err)
		}
		line.Manual = &manual
	}
	if len(row.Breakdown) > 0 {
		if err := json.Unmarshal(row.Breakdown, &line.Breakdown); err != nil {
			return line, fmt.Errorf("decode breakdown payload: %w", err)
		}
	}
	return line, nil
}

func lineToRowValues(docID id.ID, line quotation.Line) ([]any, error) {
	var manualJSON, breakdownJSON []byte
	var err error
	if line.Manual != nil {
		manualJSON, err = json.Marshal(line.Manual)
		if err != nil {
			return nil, fmt.Errorf("encode manual payload: %w", err)
		}
	}
	breakdownJSON, err = json.Marshal(line.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("encode breakdown payload: %w", err)
	}
	return []any{
		line.LineID, docID, line.LineNo, string(line.Kind),
		line.Name, line.Description, line.Quantity,
		line.ProductID, line.SelectedColor, line.SelectedMaterial,
		manualJSON, line.UnitPrice, line.LineTotal, breakdownJSON,
	}, nil
}

// GetLines retrieves lines for a quotation.
func (r *QuotationRepo) GetLines(ctx context.Context, docID id.ID) ([]quotation.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "kind", "name", "description", "quantity",
			"product_id", "selected_color", "selected_material",
			"manual", "unit_price", "line_total", "breakdown",
		).
		From(quotationLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []quotationLineRow
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	lines := make([]quotation.Line, 0, len(rows))
	for i := range rows {
		line, err := rows[i].toLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// SaveLines saves lines for a quotation (delete existing + insert new).
func (r *QuotationRepo) SaveLines(ctx context.Context, docID id.ID, lines []quotation.Line) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	// Delete existing lines
	deleteSQL := "DELETE FROM " + quotationLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	// Insert new lines
	q := r.Builder().
		Insert(quotationLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "kind",
			"name", "description", "quantity",
			"product_id", "selected_color", "selected_material",
			"manual", "unit_price", "line_total", "breakdown",
		)

	for _, line := range lines {
		values, err := lineToRowValues(docID, line)
		if err != nil {
			return err
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// SetDeletionMark sets or clears the deletion mark.
func (r *QuotationRepo) SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error {
	q := r.Builder().
		Update(quotationsTable).
		Set("deletion_mark", marked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("quotation %s not found", docID)
	}

	return nil
}

// List retrieves quotations with filtering.
func (r *QuotationRepo) List(ctx context.Context, filter quotation.ListFilter) (domain.ListResult[*quotation.Quotation], error) {
	result := domain.ListResult[*quotation.Quotation]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"client_name": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy := "date DESC"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	q = q.OrderBy(orderBy)

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
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
