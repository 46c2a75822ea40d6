package quotation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
	"cotizador/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func manualInput() pricing.ManualItemInput {
	return pricing.ManualItemInput{
		Name:     "Closet 2 puertas",
		Quantity: 1,
		Materials: []pricing.MaterialUsage{
			{Name: "MDF 18mm", Quantity: dec("2"), UnitPrice: dec("1000")},
		},
		LaborMode:             pricing.LaborFixedAmount,
		FixedLaborAmount:      dec("2000"),
		Indirect:              pricing.IndirectCosts{Transport: dec("500")},
		ExtraCharge:           pricing.ExtraCharge{Mode: pricing.ExtraPercentage, Value: dec("5")},
		ProfitMarginPercent:   dec("30"),
		LaborSurchargePercent: dec("10"),
	}
}

func TestQuotation_RepriceFromLines(t *testing.T) {
	q := New(id.New(), "Muebles La Esquina")
	q.DiscountPercent = dec("10")
	q.TaxPercent = dec("19")

	line := q.AddManualLine(manualInput())
	require.Equal(t, 1, line.LineNo)

	require.NoError(t, q.Reprice())

	assert.True(t, dec("5575").Equal(q.Lines[0].UnitPrice), "unit price %s", q.Lines[0].UnitPrice)
	assert.True(t, dec("5575").Equal(q.Subtotal))
	assert.True(t, dec("557.5").Equal(q.DiscountAmount))
	// taxable 5017.5, tax 953.325
	assert.True(t, dec("953.325").Equal(q.TaxAmount))
	assert.True(t, dec("5970.825").Equal(q.Total))
}

func TestQuotation_RepriceIsIdempotent(t *testing.T) {
	q := New(id.New(), "Cliente")
	q.AddManualLine(manualInput())
	q.AddCatalogLine(id.New(), "Mesa auxiliar", 3, dec("45000"), "nogal", "roble")

	require.NoError(t, q.Reprice())
	firstTotal := q.Total
	firstSubtotal := q.Subtotal

	require.NoError(t, q.Reprice())
	assert.True(t, firstTotal.Equal(q.Total))
	assert.True(t, firstSubtotal.Equal(q.Subtotal))
}

func TestQuotation_CatalogLineTotal(t *testing.T) {
	q := New(id.New(), "Cliente")
	q.AddCatalogLine(id.New(), "Mesa auxiliar", 3, dec("45000"), "", "")

	require.NoError(t, q.Reprice())
	assert.True(t, dec("135000").Equal(q.Lines[0].LineTotal))
	// Default tax applies when not overridden.
	assert.True(t, pricing.DefaultTaxPercent.Equal(q.TaxPercent))
	assert.True(t, dec("160650").Equal(q.Total))
}

func TestQuotation_ManualLineQuantitySyncs(t *testing.T) {
	q := New(id.New(), "Cliente")
	line := q.AddManualLine(manualInput())
	line.Quantity = 4

	require.NoError(t, q.Reprice())
	assert.True(t, q.Lines[0].UnitPrice.Mul(dec("4")).Equal(q.Lines[0].LineTotal))
}

func TestQuotation_Validate(t *testing.T) {
	q := New(id.Nil(), "")
	err := q.Validate(context.Background())
	require.Error(t, err)

	q = New(id.New(), "Cliente")
	q.DiscountPercent = dec("120")
	err = q.Validate(context.Background())
	require.Error(t, err)

	q = New(id.New(), "Cliente")
	q.Lines = append(q.Lines, Line{LineID: id.New(), Kind: KindManual, Quantity: 1})
	err = q.Validate(context.Background())
	require.Error(t, err, "manual line without cost definition must fail")

	q = New(id.New(), "Cliente")
	q.AddManualLine(manualInput())
	require.NoError(t, q.Validate(context.Background()))
}

func TestQuotation_IssuedRejectsModification(t *testing.T) {
	q := New(id.New(), "Cliente")
	q.AddManualLine(manualInput())
	require.NoError(t, q.CanModify())

	q.MarkIssued()
	assert.Equal(t, entity.StatusIssued, q.Status)
	require.Error(t, q.CanModify())

	q.Reopen()
	require.NoError(t, q.CanModify())
}

func TestQuotation_ManualMaterials(t *testing.T) {
	q := New(id.New(), "Cliente")
	line := q.AddManualLine(manualInput())
	line.Quantity = 15

	materials, qty, ok := q.ManualMaterials(line.LineID)
	require.True(t, ok)
	assert.Equal(t, 15, qty)
	require.Len(t, materials, 1)
	assert.Equal(t, "MDF 18mm", materials[0].Name)

	_, _, ok = q.ManualMaterials(id.New())
	assert.False(t, ok)
}
