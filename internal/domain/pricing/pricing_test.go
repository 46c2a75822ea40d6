package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/core/apperror"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual),
		"expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}

func baseItem() ManualItemInput {
	return ManualItemInput{
		Name:     "Closet 2 puertas",
		Quantity: 1,
		Materials: []MaterialUsage{
			{Name: "MDF 18mm", Quantity: dec("2"), UnitPrice: dec("1000"), Unit: "lamina"},
		},
		LaborMode:        LaborFixedAmount,
		FixedLaborAmount: dec("2000"),
		Indirect: IndirectCosts{
			Transport: dec("500"),
		},
		ExtraCharge:           ExtraCharge{Mode: ExtraPercentage, Value: dec("5")},
		ProfitMarginPercent:   dec("30"),
		LaborSurchargePercent: dec("10"),
	}
}

func TestPriceManualItem_EndToEnd(t *testing.T) {
	result, err := PriceManualItem(baseItem())
	require.NoError(t, err)

	assertDecEqual(t, "2000", result.Breakdown.MaterialsCost)
	assertDecEqual(t, "500", result.Breakdown.IndirectCosts)
	assertDecEqual(t, "2500", result.Breakdown.MarginBase)
	assertDecEqual(t, "750", result.Breakdown.MarginAmount)
	assertDecEqual(t, "2000", result.Breakdown.LaborWithPaint)
	assertDecEqual(t, "200", result.Breakdown.LaborSurcharge)
	assertDecEqual(t, "125", result.Breakdown.ExtraCharge)
	assertDecEqual(t, "5575", result.UnitPrice)
	assertDecEqual(t, "5575", result.LineTotal)
}

func TestPriceManualItem_LineTotalIsUnitPriceTimesQuantity(t *testing.T) {
	for _, qty := range []int{1, 3, 15} {
		item := baseItem()
		item.Quantity = qty
		result, err := PriceManualItem(item)
		require.NoError(t, err)

		expected := result.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		assert.True(t, expected.Equal(result.LineTotal),
			"quantity %d: lineTotal %s != unitPrice*qty %s", qty, result.LineTotal, expected)
	}
}

func TestPriceManualItem_MarginIgnoresLabor(t *testing.T) {
	item := baseItem()
	cheap, err := PriceManualItem(item)
	require.NoError(t, err)

	item.FixedLaborAmount = dec("999999")
	item.PaintingAmount = dec("5000")
	expensive, err := PriceManualItem(item)
	require.NoError(t, err)

	assert.True(t, cheap.Breakdown.MarginAmount.Equal(expensive.Breakdown.MarginAmount),
		"margin changed with labor: %s vs %s",
		cheap.Breakdown.MarginAmount, expensive.Breakdown.MarginAmount)
	assert.True(t, cheap.Breakdown.MarginBase.Equal(expensive.Breakdown.MarginBase))
}

func TestPriceManualItem_HourAndDayTasks(t *testing.T) {
	item := ManualItemInput{
		Name:      "Mesa de centro",
		Quantity:  2,
		LaborMode: LaborHours,
		LaborTasks: []LaborTask{
			{Name: "corte", Hours: dec("3")},
			{Name: "ensamble", Days: dec("2")},
			{Name: "pintura", Amount: dec("15000")},
		},
	}
	result, err := PriceManualItem(item)
	require.NoError(t, err)

	// 3h * 10000 + 2d * 80000 + 15000 flat
	assertDecEqual(t, "205000", result.Breakdown.LaborBase)
	assertDecEqual(t, "205000", result.UnitPrice)
	assertDecEqual(t, "410000", result.LineTotal)
}

func TestPriceManualItem_PaintingAddsToLaborPool(t *testing.T) {
	item := baseItem()
	item.PaintingAmount = dec("300")
	result, err := PriceManualItem(item)
	require.NoError(t, err)

	assertDecEqual(t, "2300", result.Breakdown.LaborWithPaint)
	// Surcharge applies to labor+painting.
	assertDecEqual(t, "230", result.Breakdown.LaborSurcharge)
	// Margin base is untouched by painting.
	assertDecEqual(t, "2500", result.Breakdown.MarginBase)
}

func TestPriceManualItem_FixedExtraChargeNotScaled(t *testing.T) {
	item := baseItem()
	item.ExtraCharge = ExtraCharge{Mode: ExtraFixedAmount, Value: dec("400")}
	result, err := PriceManualItem(item)
	require.NoError(t, err)

	assertDecEqual(t, "400", result.Breakdown.ExtraCharge)
	// 2500 + 750 + 2000 + 200 + 400
	assertDecEqual(t, "5850", result.UnitPrice)
}

func TestPriceManualItem_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ManualItemInput)
	}{
		{"zero quantity", func(in *ManualItemInput) { in.Quantity = 0 }},
		{"negative material price", func(in *ManualItemInput) {
			in.Materials[0].UnitPrice = dec("-1")
		}},
		{"negative material quantity", func(in *ManualItemInput) {
			in.Materials[0].Quantity = dec("-2")
		}},
		{"margin over 100", func(in *ManualItemInput) { in.ProfitMarginPercent = dec("101") }},
		{"negative margin", func(in *ManualItemInput) { in.ProfitMarginPercent = dec("-5") }},
		{"surcharge over 100", func(in *ManualItemInput) { in.LaborSurchargePercent = dec("150") }},
		{"negative labor", func(in *ManualItemInput) { in.FixedLaborAmount = dec("-10") }},
		{"negative indirect", func(in *ManualItemInput) { in.Indirect.Transport = dec("-1") }},
		{"extra charge percent out of range", func(in *ManualItemInput) {
			in.ExtraCharge = ExtraCharge{Mode: ExtraPercentage, Value: dec("120")}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := baseItem()
			tt.mutate(&item)
			_, err := PriceManualItem(item)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidInput(err), "expected INVALID_INPUT, got %v", err)
		})
	}
}

func TestPriceManualItem_PendingFlagsDoNotAffectArithmetic(t *testing.T) {
	item := baseItem()
	plain, err := PriceManualItem(item)
	require.NoError(t, err)

	item.Pending = PendingCostData{Materials: true, Labor: true, Indirect: true}
	flagged, err := PriceManualItem(item)
	require.NoError(t, err)

	assert.True(t, plain.UnitPrice.Equal(flagged.UnitPrice))
	assert.True(t, flagged.Pending.Materials)
	assert.True(t, flagged.Pending.Labor)
	assert.True(t, flagged.Pending.Indirect)
}

func TestAggregateQuotation_DiscountAndTax(t *testing.T) {
	totals, err := AggregateQuotation(
		[]decimal.Decimal{dec("60000"), dec("40000")},
		dec("10"), dec("19"),
	)
	require.NoError(t, err)

	assertDecEqual(t, "100000", totals.Subtotal)
	assertDecEqual(t, "10000", totals.DiscountAmount)
	assertDecEqual(t, "90000", totals.TaxableBase)
	assertDecEqual(t, "17100", totals.TaxAmount)
	assertDecEqual(t, "107100", totals.Total)
}

func TestAggregateQuotation_Idempotent(t *testing.T) {
	lines := []decimal.Decimal{dec("12345.67"), dec("9999.99"), dec("0.01")}

	first, err := AggregateQuotation(lines, dec("7.5"), DefaultTaxPercent)
	require.NoError(t, err)
	second, err := AggregateQuotation(lines, dec("7.5"), DefaultTaxPercent)
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestAggregateQuotation_EmptyAndInvalid(t *testing.T) {
	totals, err := AggregateQuotation(nil, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero())

	_, err = AggregateQuotation(nil, dec("101"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))

	_, err = AggregateQuotation(nil, decimal.Zero, dec("-1"))
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidInput(err))
}
