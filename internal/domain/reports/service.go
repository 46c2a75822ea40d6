package reports

import (
	"context"
	"fmt"
	"time"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// defaultPeriod fills missing dates with the last 12 months.
func defaultPeriod(from, to *time.Time) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	f := now.AddDate(-1, 0, 0)
	t := now
	if from != nil {
		f = *from
	}
	if to != nil {
		t = *to
	}
	if f.After(t) {
		return f, t, fmt.Errorf("fromDate must be before toDate")
	}
	return f, t, nil
}

// GetDashboard generates the landing page summary.
func (s *Service) GetDashboard(ctx context.Context, filter DashboardFilter) (*Dashboard, error) {
	from, to, err := defaultPeriod(filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, err
	}
	filter.FromDate = &from
	filter.ToDate = &to

	report, err := s.repo.GetDashboard(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	return report, nil
}

// GetMonthlyQuoted generates the month-by-month quoted series.
func (s *Service) GetMonthlyQuoted(ctx context.Context, filter MonthlyQuotedFilter) (*MonthlyQuotedReport, error) {
	from, to, err := defaultPeriod(filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, err
	}
	filter.FromDate = &from
	filter.ToDate = &to

	report, err := s.repo.GetMonthlyQuoted(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get monthly quoted: %w", err)
	}
	return report, nil
}

// GetTopMaterials ranks materials by budgeted spend.
func (s *Service) GetTopMaterials(ctx context.Context, filter TopMaterialsFilter) (*TopMaterialsReport, error) {
	from, to, err := defaultPeriod(filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, err
	}
	filter.FromDate = &from
	filter.ToDate = &to

	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	report, err := s.repo.GetTopMaterials(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get top materials: %w", err)
	}
	return report, nil
}

// GetBudgetVsActual compares budgeted material cost against real expenses
// per quotation.
func (s *Service) GetBudgetVsActual(ctx context.Context, filter BudgetVsActualFilter) (*BudgetVsActualReport, error) {
	from, to, err := defaultPeriod(filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, err
	}
	filter.FromDate = &from
	filter.ToDate = &to

	report, err := s.repo.GetBudgetVsActual(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get budget vs actual: %w", err)
	}
	return report, nil
}
