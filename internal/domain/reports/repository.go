package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	GetDashboard(ctx context.Context, filter DashboardFilter) (*Dashboard, error)
	GetMonthlyQuoted(ctx context.Context, filter MonthlyQuotedFilter) (*MonthlyQuotedReport, error)
	GetTopMaterials(ctx context.Context, filter TopMaterialsFilter) (*TopMaterialsReport, error)
	GetBudgetVsActual(ctx context.Context, filter BudgetVsActualFilter) (*BudgetVsActualReport, error)
}
