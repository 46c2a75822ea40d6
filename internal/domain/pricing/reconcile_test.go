package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/core/apperror"
)

func day(d int) time.Time {
	return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestAllocatedTotal_Scopes(t *testing.T) {
	rec := RealExpense{
		MaterialName:    "MDF 18mm",
		ActualQuantity:  dec("2"),
		ActualUnitPrice: dec("1000"),
	}
	const lineQuantity = 15

	rec.Scope = ScopePerUnit
	total, err := rec.AllocatedTotal(lineQuantity)
	require.NoError(t, err)
	assertDecEqual(t, "30000", total)

	rec.Scope = ScopeTotal
	total, err = rec.AllocatedTotal(lineQuantity)
	require.NoError(t, err)
	assertDecEqual(t, "2000", total)

	rec.Scope = ScopePartial
	rec.AppliedUnitCount = 5
	total, err = rec.AllocatedTotal(lineQuantity)
	require.NoError(t, err)
	assertDecEqual(t, "10000", total)
}

func TestAllocatedTotal_LegacyScopeIsTotal(t *testing.T) {
	rec := RealExpense{
		MaterialName:    "Tornillos",
		ActualQuantity:  dec("100"),
		ActualUnitPrice: dec("50"),
		// no scope: record predates allocation scopes
	}
	total, err := rec.AllocatedTotal(15)
	require.NoError(t, err)
	// Never inflated by the line quantity.
	assertDecEqual(t, "5000", total)
}

func TestAllocatedTotal_Invalid(t *testing.T) {
	rec := RealExpense{MaterialName: "x", ActualQuantity: dec("1"), ActualUnitPrice: dec("10")}

	rec.Scope = ScopePartial
	rec.AppliedUnitCount = 0
	_, err := rec.AllocatedTotal(15)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))

	rec.AppliedUnitCount = 16
	_, err = rec.AllocatedTotal(15)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))

	rec.Scope = "weird"
	rec.AppliedUnitCount = 1
	_, err = rec.AllocatedTotal(15)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))

	rec = RealExpense{MaterialName: "x", ActualQuantity: dec("-1"), ActualUnitPrice: dec("10")}
	_, err = rec.AllocatedTotal(1)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}

func TestReconcileLineItem_BudgetedScaledByLineQuantity(t *testing.T) {
	budgeted := []MaterialUsage{
		{Name: "MDF 18mm", Quantity: dec("2"), UnitPrice: dec("1000")},
	}
	result, err := ReconcileLineItem(budgeted, 15, nil, nil)
	require.NoError(t, err)

	// 2 per unit * 15 units * 1000
	assertDecEqual(t, "30000", result.BudgetedTotal)
	require.Len(t, result.PerMaterial, 1)
	assertDecEqual(t, "30", result.PerMaterial[0].BudgetedQuantity)
	assertDecEqual(t, "-30000", result.Variance)
	assertDecEqual(t, "-100", result.VariancePercent)
}

func TestReconcileLineItem_MergesRecordsByMaterial(t *testing.T) {
	budgeted := []MaterialUsage{
		{Name: "MDF 18mm", Quantity: dec("2"), UnitPrice: dec("1000")},
	}
	records := []RealExpense{
		{MaterialName: "MDF 18mm", ActualQuantity: dec("10"), ActualUnitPrice: dec("1100"), PurchaseDate: day(1), Scope: ScopeTotal},
		{MaterialName: "mdf 18 mm", ActualQuantity: dec("20"), ActualUnitPrice: dec("1200"), PurchaseDate: day(5), Scope: ScopeTotal},
	}

	result, err := ReconcileLineItem(budgeted, 15, records, nil)
	require.NoError(t, err)
	require.Empty(t, result.Unmatched)
	require.Len(t, result.PerMaterial, 1)

	mv := result.PerMaterial[0]
	assert.Equal(t, 2, mv.RecordCount)
	// Quantities sum across records.
	assertDecEqual(t, "30", mv.ActualQuantity)
	// Unit price from the most recent record.
	assertDecEqual(t, "1200", mv.ActualUnitPrice)
	// 10*1100 + 20*1200
	assertDecEqual(t, "35000", mv.ActualTotal)
	assertDecEqual(t, "5000", mv.Variance)
}

func TestReconcileLineItem_TokenMatchAcrossSpelling(t *testing.T) {
	budgeted := []MaterialUsage{
		{Name: "MDF 18mm", Quantity: dec("1"), UnitPrice: dec("1000")},
	}
	records := []RealExpense{
		{MaterialName: "mdf 18 mm", ActualQuantity: dec("1"), ActualUnitPrice: dec("900"), Scope: ScopeTotal},
	}

	result, err := ReconcileLineItem(budgeted, 1, records, HeuristicMatcher{})
	require.NoError(t, err)
	assert.Empty(t, result.Unmatched)
	assert.Equal(t, 1, result.PerMaterial[0].RecordCount)
}

func TestReconcileLineItem_UnmatchedReportedNotDropped(t *testing.T) {
	budgeted := []MaterialUsage{
		{Name: "Triplex 15mm", Quantity: dec("1"), UnitPrice: dec("2000")},
	}
	records := []RealExpense{
		{MaterialName: "Bisagras cierre lento", ActualQuantity: dec("4"), ActualUnitPrice: dec("500"), Scope: ScopeTotal},
	}

	result, err := ReconcileLineItem(budgeted, 1, records, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"Bisagras cierre lento"}, result.Unmatched)
	// The unmatched spend still counts toward the actual total.
	assertDecEqual(t, "2000", result.ActualTotal)
	assert.Equal(t, 0, result.PerMaterial[0].RecordCount)
}

func TestReconcileLineItem_VariancePercentZeroWhenNoBudget(t *testing.T) {
	records := []RealExpense{
		{MaterialName: "Imprevisto", ActualQuantity: dec("1"), ActualUnitPrice: dec("5000"), Scope: ScopeTotal},
	}
	result, err := ReconcileLineItem(nil, 1, records, nil)
	require.NoError(t, err)

	assert.True(t, result.BudgetedTotal.IsZero())
	assertDecEqual(t, "5000", result.Variance)
	assert.True(t, result.VariancePercent.IsZero())
}

func TestReconcileLineItem_InvalidLineQuantity(t *testing.T) {
	_, err := ReconcileLineItem(nil, 0, nil, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}
