package dto

import (
	"time"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/domain/reports"
)

// --- Requests ---

// PeriodRequest carries the common from/to query parameters.
type PeriodRequest struct {
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
}

// DashboardRequest represents query parameters of the dashboard report.
type DashboardRequest struct {
	PeriodRequest
}

// ToFilter converts the request to a domain filter.
func (r *DashboardRequest) ToFilter() reports.DashboardFilter {
	return reports.DashboardFilter{FromDate: r.FromDate, ToDate: r.ToDate}
}

// MonthlyQuotedRequest represents query parameters of the monthly series.
type MonthlyQuotedRequest struct {
	PeriodRequest
	OnlyAccepted bool `form:"onlyAccepted"`
}

// ToFilter converts the request to a domain filter.
func (r *MonthlyQuotedRequest) ToFilter() reports.MonthlyQuotedFilter {
	return reports.MonthlyQuotedFilter{
		FromDate:     r.FromDate,
		ToDate:       r.ToDate,
		OnlyAccepted: r.OnlyAccepted,
	}
}

// TopMaterialsRequest represents query parameters of the material ranking.
type TopMaterialsRequest struct {
	PeriodRequest
	Limit int `form:"limit"`
}

// ToFilter converts the request to a domain filter.
func (r *TopMaterialsRequest) ToFilter() reports.TopMaterialsFilter {
	return reports.TopMaterialsFilter{
		FromDate: r.FromDate,
		ToDate:   r.ToDate,
		Limit:    r.Limit,
	}
}

// BudgetVsActualRequest represents query parameters of the variance report.
type BudgetVsActualRequest struct {
	PeriodRequest
	ClientID string `form:"clientId"`
}

// ToFilter converts the request to a domain filter.
func (r *BudgetVsActualRequest) ToFilter() (reports.BudgetVsActualFilter, error) {
	filter := reports.BudgetVsActualFilter{FromDate: r.FromDate, ToDate: r.ToDate}
	if r.ClientID != "" {
		clientID, err := id.Parse(r.ClientID)
		if err != nil {
			return filter, apperror.NewValidation("invalid clientId format")
		}
		filter.ClientID = &clientID
	}
	return filter, nil
}
