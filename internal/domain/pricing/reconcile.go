package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/types"
)

// AllocationScope describes how many physical units a single recorded
// purchase covers.
type AllocationScope string

const (
	// ScopePerUnit: the purchase covers exactly one unit; scale by line quantity.
	ScopePerUnit AllocationScope = "perUnit"
	// ScopePartial: the purchase covers AppliedUnitCount units.
	ScopePartial AllocationScope = "partial"
	// ScopeTotal: the purchase already covers the whole run.
	ScopeTotal AllocationScope = "total"
)

// RealExpense is the engine-side view of a recorded purchase for one material.
//
// Records created before allocation scopes existed have an empty Scope.
// Those are treated as ScopeTotal (multiplier 1): assuming "total" can
// understate a variance, while assuming "perUnit" would inflate historical
// data by the line quantity. Never double count.
type RealExpense struct {
	MaterialName     string          `json:"materialName"`
	ActualQuantity   decimal.Decimal `json:"actualQuantity"`
	ActualUnitPrice  types.Money     `json:"actualUnitPrice"`
	PurchaseDate     time.Time       `json:"purchaseDate"`
	Scope            AllocationScope `json:"allocationScope,omitempty"`
	AppliedUnitCount int             `json:"appliedUnitCount,omitempty"`
}

// AllocatedTotal returns the whole-line actual cost of the record under its
// allocation scope.
func (r RealExpense) AllocatedTotal(lineQuantity int) (types.Money, error) {
	if r.ActualQuantity.IsNegative() {
		return decimal.Zero, apperror.NewInvalidInput("actual quantity cannot be negative").
			WithDetail("material", r.MaterialName)
	}
	if r.ActualUnitPrice.IsNegative() {
		return decimal.Zero, apperror.NewInvalidInput("actual unit price cannot be negative").
			WithDetail("material", r.MaterialName)
	}

	base := r.ActualQuantity.Mul(r.ActualUnitPrice)

	switch r.Scope {
	case ScopePerUnit:
		return base.Mul(decimal.NewFromInt(int64(lineQuantity))), nil
	case ScopePartial:
		if r.AppliedUnitCount < 1 || r.AppliedUnitCount > lineQuantity {
			return decimal.Zero, apperror.NewInvalidInput(
				fmt.Sprintf("applied unit count must be between 1 and %d", lineQuantity)).
				WithDetail("material", r.MaterialName).
				WithDetail("appliedUnitCount", r.AppliedUnitCount)
		}
		return base.Mul(decimal.NewFromInt(int64(r.AppliedUnitCount))), nil
	case ScopeTotal, "":
		// Legacy records without a scope fall here on purpose.
		return base, nil
	default:
		return decimal.Zero, apperror.NewInvalidInput("unknown allocation scope").
			WithDetail("material", r.MaterialName).
			WithDetail("allocationScope", string(r.Scope))
	}
}

// MaterialVariance is the budgeted-vs-actual view of one budgeted material.
type MaterialVariance struct {
	Name              string          `json:"name"`
	BudgetedQuantity  decimal.Decimal `json:"budgetedQuantity"`
	BudgetedUnitPrice types.Money     `json:"budgetedUnitPrice"`
	BudgetedTotal     types.Money     `json:"budgetedTotal"`
	ActualQuantity    decimal.Decimal `json:"actualQuantity"`
	ActualUnitPrice   types.Money     `json:"actualUnitPrice"`
	ActualTotal       types.Money     `json:"actualTotal"`
	Variance          types.Money     `json:"variance"`
	VariancePercent   decimal.Decimal `json:"variancePercent"`
	RecordCount       int             `json:"recordCount"`
}

// Reconciliation is the result of comparing budgeted against actual cost for
// one line item.
type Reconciliation struct {
	BudgetedTotal   types.Money        `json:"budgetedTotal"`
	ActualTotal     types.Money        `json:"actualTotal"`
	Variance        types.Money        `json:"variance"`
	VariancePercent decimal.Decimal    `json:"variancePercent"`
	PerMaterial     []MaterialVariance `json:"perMaterial"`
	Unmatched       []string           `json:"unmatched,omitempty"`
}

func variancePercent(variance, budgeted types.Money) decimal.Decimal {
	if budgeted.IsZero() {
		return decimal.Zero
	}
	return variance.Div(budgeted).Mul(decimal.NewFromInt(100))
}

// ReconcileLineItem compares the line's budgeted materials (per-unit figures,
// scaled here to whole-line scale by lineQuantity) against recorded purchases.
//
// Multiple records for the same budgeted material are merged: quantities sum,
// the displayed unit price comes from the most recent record. Records whose
// name matches no budgeted material still count toward the actual total and
// are reported in Unmatched, never dropped silently.
func ReconcileLineItem(budgeted []MaterialUsage, lineQuantity int, records []RealExpense, matcher Matcher) (Reconciliation, error) {
	if lineQuantity < 1 {
		return Reconciliation{}, apperror.NewInvalidInput("line quantity must be at least 1").
			WithDetail("value", lineQuantity)
	}
	if matcher == nil {
		matcher = HeuristicMatcher{}
	}

	qty := decimal.NewFromInt(int64(lineQuantity))

	perMaterial := make([]MaterialVariance, len(budgeted))
	pool := make([]string, len(budgeted))
	for i, b := range budgeted {
		if b.Quantity.IsNegative() || b.UnitPrice.IsNegative() {
			return Reconciliation{}, apperror.NewInvalidInput("budgeted figures cannot be negative").
				WithDetail("material", b.Name)
		}
		budgetedQty := b.Quantity.Mul(qty)
		perMaterial[i] = MaterialVariance{
			Name:              b.Name,
			BudgetedQuantity:  budgetedQty,
			BudgetedUnitPrice: b.UnitPrice,
			BudgetedTotal:     budgetedQty.Mul(b.UnitPrice),
		}
		pool[i] = b.Name
	}

	actualTotal := decimal.Zero
	var unmatched []string
	// latestDate tracks, per budgeted material, which record supplied the
	// displayed unit price.
	latestDate := make([]time.Time, len(budgeted))

	for _, rec := range records {
		allocated, err := rec.AllocatedTotal(lineQuantity)
		if err != nil {
			return Reconciliation{}, err
		}
		actualTotal = actualTotal.Add(allocated)

		idx, ok := matcher.Match(rec.MaterialName, pool)
		if !ok {
			unmatched = append(unmatched, rec.MaterialName)
			continue
		}

		mv := &perMaterial[idx]
		mv.ActualQuantity = mv.ActualQuantity.Add(rec.ActualQuantity)
		mv.ActualTotal = mv.ActualTotal.Add(allocated)
		mv.RecordCount++
		if mv.RecordCount == 1 || !rec.PurchaseDate.Before(latestDate[idx]) {
			mv.ActualUnitPrice = rec.ActualUnitPrice
			latestDate[idx] = rec.PurchaseDate
		}
	}

	budgetedTotal := decimal.Zero
	for i := range perMaterial {
		mv := &perMaterial[i]
		budgetedTotal = budgetedTotal.Add(mv.BudgetedTotal)
		mv.Variance = mv.ActualTotal.Sub(mv.BudgetedTotal)
		mv.VariancePercent = variancePercent(mv.Variance, mv.BudgetedTotal)
	}

	variance := actualTotal.Sub(budgetedTotal)

	return Reconciliation{
		BudgetedTotal:   budgetedTotal,
		ActualTotal:     actualTotal,
		Variance:        variance,
		VariancePercent: variancePercent(variance, budgetedTotal),
		PerMaterial:     perMaterial,
		Unmatched:       unmatched,
	}, nil
}
