// Package reports provides report generation services for the dashboard.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
)

// --- Dashboard ---

// DashboardFilter defines the period for the dashboard summary.
type DashboardFilter struct {
	// FromDate/ToDate default to the last 12 months
	FromDate *time.Time
	ToDate   *time.Time
}

// StatusCount is the number of quotations per status in the period.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	QuotationCount int         `json:"quotationCount"`
	QuotedTotal    types.Money `json:"quotedTotal"`
	AcceptedTotal  types.Money `json:"acceptedTotal"`

	ByStatus []StatusCount `json:"byStatus"`

	// Fixed monthly expense baseline from the catalog
	MonthlyFixedExpenses types.Money `json:"monthlyFixedExpenses"`
}

// --- Quoted by month ---

// MonthlyQuotedFilter defines the period for the monthly series.
type MonthlyQuotedFilter struct {
	FromDate *time.Time
	ToDate   *time.Time

	// OnlyAccepted restricts the series to accepted quotations
	OnlyAccepted bool
}

// MonthlyQuotedItem is one month of quoted volume.
type MonthlyQuotedItem struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	QuotationCount int         `json:"quotationCount"`
	QuotedTotal    types.Money `json:"quotedTotal"`
}

// MonthlyQuotedReport is the month-by-month quoted series.
type MonthlyQuotedReport struct {
	FromDate time.Time           `json:"fromDate"`
	ToDate   time.Time           `json:"toDate"`
	Items    []MonthlyQuotedItem `json:"items"`
}

// --- Top materials ---

// TopMaterialsFilter defines the period and size of the ranking.
type TopMaterialsFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
}

// TopMaterialItem is one material ranked by budgeted spend.
type TopMaterialItem struct {
	Name string `json:"name"`

	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalCost     types.Money     `json:"totalCost"`
	LineCount     int             `json:"lineCount"`
}

// TopMaterialsReport ranks materials used across manual quotation lines.
type TopMaterialsReport struct {
	FromDate time.Time         `json:"fromDate"`
	ToDate   time.Time         `json:"toDate"`
	Items    []TopMaterialItem `json:"items"`
}

// --- Budget vs actual ---

// BudgetVsActualFilter defines the period and optional client scope.
type BudgetVsActualFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	ClientID *id.ID
}

// BudgetVsActualItem compares one quotation's budgeted materials against
// registered real expenses.
type BudgetVsActualItem struct {
	QuotationID     id.ID           `json:"quotationId"`
	QuotationNumber string          `json:"quotationNumber"`
	ClientName      string          `json:"clientName"`
	Date            time.Time       `json:"date"`
	BudgetedTotal   types.Money     `json:"budgetedTotal"`
	ActualTotal     types.Money     `json:"actualTotal"`
	Variance        types.Money     `json:"variance"`
	VariancePercent decimal.Decimal `json:"variancePercent"`
	RecordCount     int             `json:"recordCount"`
}

// BudgetVsActualReport is the budgeted-vs-actual summary per quotation.
type BudgetVsActualReport struct {
	FromDate time.Time            `json:"fromDate"`
	ToDate   time.Time            `json:"toDate"`
	Items    []BudgetVsActualItem `json:"items"`

	BudgetedTotal types.Money `json:"budgetedTotal"`
	ActualTotal   types.Money `json:"actualTotal"`
	Variance      types.Money `json:"variance"`
}
