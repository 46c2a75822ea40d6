// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"cotizador/internal/domain/reports"
	"cotizador/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository with raw aggregate queries.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetDashboard generates the landing page summary.
func (r *ReportRepo) GetDashboard(ctx context.Context, filter reports.DashboardFilter) (*reports.Dashboard, error) {
	dashboard := &reports.Dashboard{
		FromDate: *filter.FromDate,
		ToDate:   *filter.ToDate,
	}

	querier := r.txManager.GetQuerier(ctx)

	summarySQL := `
		SELECT
			COUNT(*) as quotation_count,
			COALESCE(SUM(total), 0) as quoted_total,
			COALESCE(SUM(total) FILTER (WHERE status = 'accepted'), 0) as accepted_total
		FROM doc_quotations
		WHERE deletion_mark = false AND date >= $1 AND date <= $2
	`
	err := querier.QueryRow(ctx, summarySQL, *filter.FromDate, *filter.ToDate).
		Scan(&dashboard.QuotationCount, &dashboard.QuotedTotal, &dashboard.AcceptedTotal)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	statusSQL := `
		SELECT COALESCE(NULLIF(status, ''), 'draft') as status, COUNT(*) as count
		FROM doc_quotations
		WHERE deletion_mark = false AND date >= $1 AND date <= $2
		GROUP BY 1
		ORDER BY 1
	`
	if err := pgxscan.Select(ctx, querier, &dashboard.ByStatus, statusSQL, *filter.FromDate, *filter.ToDate); err != nil {
		return nil, fmt.Errorf("dashboard status counts: %w", err)
	}

	expensesSQL := `
		SELECT COALESCE(SUM(monthly_amount), 0)
		FROM cat_fixed_expenses
		WHERE active = true AND deletion_mark = false AND is_folder = false
	`
	if err := querier.QueryRow(ctx, expensesSQL).Scan(&dashboard.MonthlyFixedExpenses); err != nil {
		return nil, fmt.Errorf("dashboard fixed expenses: %w", err)
	}

	return dashboard, nil
}

// GetMonthlyQuoted generates the month-by-month quoted series.
func (r *ReportRepo) GetMonthlyQuoted(ctx context.Context, filter reports.MonthlyQuotedFilter) (*reports.MonthlyQuotedReport, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM date)::int as year,
			EXTRACT(MONTH FROM date)::int as month,
			COUNT(*) as quotation_count,
			COALESCE(SUM(total), 0) as quoted_total
		FROM doc_quotations
		WHERE deletion_mark = false AND date >= $1 AND date <= $2
	`
	args := []any{*filter.FromDate, *filter.ToDate}

	if filter.OnlyAccepted {
		query += " AND status = 'accepted'"
	}

	query += `
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	var items []reports.MonthlyQuotedItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("monthly quoted report: %w", err)
	}

	return &reports.MonthlyQuotedReport{
		FromDate: *filter.FromDate,
		ToDate:   *filter.ToDate,
		Items:    items,
	}, nil
}

// GetTopMaterials ranks materials by budgeted spend across manual lines.
// Material usages live inside the line's JSONB cost payload.
func (r *ReportRepo) GetTopMaterials(ctx context.Context, filter reports.TopMaterialsFilter) (*reports.TopMaterialsReport, error) {
	query := `
		SELECT
			m->>'name' as name,
			SUM((m->>'quantity')::numeric * l.quantity) as total_quantity,
			SUM((m->>'quantity')::numeric * (m->>'unitPrice')::numeric * l.quantity) as total_cost,
			COUNT(DISTINCT l.line_id) as line_count
		FROM doc_quotation_lines l
		JOIN doc_quotations d ON d.id = l.document_id
		CROSS JOIN LATERAL jsonb_array_elements(l.manual->'materials') m
		WHERE d.deletion_mark = false
		  AND l.kind = 'manual'
		  AND d.date >= $1 AND d.date <= $2
		GROUP BY 1
		ORDER BY total_cost DESC
		LIMIT $3
	`

	var items []reports.TopMaterialItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, *filter.FromDate, *filter.ToDate, filter.Limit); err != nil {
		return nil, fmt.Errorf("top materials report: %w", err)
	}

	return &reports.TopMaterialsReport{
		FromDate: *filter.FromDate,
		ToDate:   *filter.ToDate,
		Items:    items,
	}, nil
}

// GetBudgetVsActual compares budgeted material cost against registered real
// expenses per quotation. Actual totals honor the record's allocation scope;
// records without a scope count once (legacy data).
func (r *ReportRepo) GetBudgetVsActual(ctx context.Context, filter reports.BudgetVsActualFilter) (*reports.BudgetVsActualReport, error) {
	query := `
		WITH budget AS (
			SELECT
				d.id as quotation_id,
				COALESCE(SUM((m->>'quantity')::numeric * (m->>'unitPrice')::numeric * l.quantity), 0) as budgeted_total
			FROM doc_quotations d
			JOIN doc_quotation_lines l ON l.document_id = d.id AND l.kind = 'manual'
			CROSS JOIN LATERAL jsonb_array_elements(l.manual->'materials') m
			GROUP BY d.id
		),
		actual AS (
			SELECT
				e.quotation_id,
				COALESCE(SUM(
					e.actual_quantity * e.actual_unit_price *
					CASE e.scope
						WHEN 'perUnit' THEN l.quantity
						WHEN 'partial' THEN e.applied_unit_count
						ELSE 1
					END
				), 0) as actual_total,
				COUNT(*) as record_count
			FROM real_expenses e
			JOIN doc_quotation_lines l ON l.line_id = e.line_id
			GROUP BY e.quotation_id
		)
		SELECT
			d.id as quotation_id,
			d.number as quotation_number,
			d.client_name,
			d.date,
			COALESCE(b.budgeted_total, 0) as budgeted_total,
			COALESCE(a.actual_total, 0) as actual_total,
			COALESCE(a.actual_total, 0) - COALESCE(b.budgeted_total, 0) as variance,
			CASE WHEN COALESCE(b.budgeted_total, 0) = 0 THEN 0
				ELSE (COALESCE(a.actual_total, 0) - b.budgeted_total) / b.budgeted_total * 100
			END as variance_percent,
			COALESCE(a.record_count, 0) as record_count
		FROM doc_quotations d
		LEFT JOIN budget b ON b.quotation_id = d.id
		LEFT JOIN actual a ON a.quotation_id = d.id
		WHERE d.deletion_mark = false
		  AND d.date >= $1 AND d.date <= $2
	`
	args := []any{*filter.FromDate, *filter.ToDate}

	if filter.ClientID != nil {
		query += " AND d.client_id = $3"
		args = append(args, *filter.ClientID)
	}

	query += " ORDER BY d.date DESC"

	var items []reports.BudgetVsActualItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("budget vs actual report: %w", err)
	}

	report := &reports.BudgetVsActualReport{
		FromDate: *filter.FromDate,
		ToDate:   *filter.ToDate,
		Items:    items,
	}
	for _, item := range items {
		report.BudgetedTotal = report.BudgetedTotal.Add(item.BudgetedTotal)
		report.ActualTotal = report.ActualTotal.Add(item.ActualTotal)
	}
	report.Variance = report.ActualTotal.Sub(report.BudgetedTotal)

	return report, nil
}
