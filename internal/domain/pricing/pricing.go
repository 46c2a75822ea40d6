package pricing

import (
	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
)

// LaborMode selects how line labor is priced.
type LaborMode string

const (
	LaborHours       LaborMode = "hours"
	LaborFixedAmount LaborMode = "fixedAmount"
)

// ExtraChargeMode selects how an extra charge is computed.
type ExtraChargeMode string

const (
	ExtraPercentage  ExtraChargeMode = "percentage"
	ExtraFixedAmount ExtraChargeMode = "fixedAmount"
)

// MaterialUsage is one material consumed by a line item, per physical unit.
type MaterialUsage struct {
	MaterialID id.ID           `json:"materialId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  types.Money     `json:"unitPrice"`
	Unit       string          `json:"unit"`
}

// Cost returns quantity * unitPrice.
func (u MaterialUsage) Cost() types.Money {
	return u.Quantity.Mul(u.UnitPrice)
}

// LaborTask is one named labor sub-task. Exactly one of Hours, Days or Amount
// is expected to be set; hour and day tasks are priced at the workshop rates,
// Amount is a flat charge (painting is always recorded this way).
type LaborTask struct {
	Name   string          `json:"name"`
	Hours  decimal.Decimal `json:"hours,omitempty"`
	Days   decimal.Decimal `json:"days,omitempty"`
	Amount types.Money     `json:"amount,omitempty"`
}

// Dimensions describes the physical size of a manufactured piece.
type Dimensions struct {
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
	Depth  decimal.Decimal `json:"depth"`
	Unit   string          `json:"unit"`
}

// IndirectCosts are per-unit costs that are not materials and not labor.
type IndirectCosts struct {
	Transport   types.Money `json:"transport"`
	Tools       types.Money `json:"tools"`
	SpaceRental types.Money `json:"spaceRental"`
	PettyCash   types.Money `json:"pettyCash"`
	Notes       string      `json:"notes,omitempty"`
}

// Sum returns the total of all indirect cost components.
func (c IndirectCosts) Sum() types.Money {
	return c.Transport.Add(c.Tools).Add(c.SpaceRental).Add(c.PettyCash)
}

// ExtraCharge is an additional charge on top of the computed price.
// Percentage mode scales the margin base; fixed mode is a flat amount.
type ExtraCharge struct {
	Mode  ExtraChargeMode `json:"mode"`
	Value decimal.Decimal `json:"value"`
}

// PendingCostData marks cost sections the user has not filled in yet.
// These flags are reporting hints only and never affect the arithmetic.
type PendingCostData struct {
	Materials bool `json:"materials"`
	Labor     bool `json:"labor"`
	Indirect  bool `json:"indirect"`
}

// ManualItemInput is the full cost definition of a freeform line item.
type ManualItemInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Dimensions  Dimensions `json:"dimensions"`

	Quantity int `json:"quantity"`

	Materials []MaterialUsage `json:"materials"`

	LaborMode        LaborMode   `json:"laborMode"`
	FixedLaborAmount types.Money `json:"fixedLaborAmount"`
	LaborTasks       []LaborTask `json:"laborTasks,omitempty"`
	PaintingAmount   types.Money `json:"paintingAmount"`

	Indirect IndirectCosts `json:"indirectCosts"`

	ExtraCharge           ExtraCharge     `json:"extraCharge"`
	ProfitMarginPercent   decimal.Decimal `json:"profitMarginPercent"`
	LaborSurchargePercent decimal.Decimal `json:"laborSurchargePercent"`

	Pending PendingCostData `json:"pendingCostData"`
}

// Breakdown exposes every intermediate figure of the per-line computation.
type Breakdown struct {
	MaterialsCost  types.Money `json:"materialsCost"`
	LaborBase      types.Money `json:"laborBase"`
	PaintingAmount types.Money `json:"paintingAmount"`
	LaborWithPaint types.Money `json:"laborWithPaint"`
	LaborSurcharge types.Money `json:"laborSurcharge"`
	IndirectCosts  types.Money `json:"indirectCosts"`
	MarginBase     types.Money `json:"marginBase"`
	MarginAmount   types.Money `json:"marginAmount"`
	ExtraCharge    types.Money `json:"extraCharge"`
}

// LinePricing is the result of pricing one line item.
type LinePricing struct {
	UnitPrice types.Money     `json:"unitPrice"`
	LineTotal types.Money     `json:"lineTotal"`
	Breakdown Breakdown       `json:"breakdown"`
	Pending   PendingCostData `json:"pendingCostData"`
}

func validateManualItem(in ManualItemInput) error {
	if in.Quantity < 1 {
		return apperror.NewInvalidInput("quantity must be at least 1").
			WithDetail("field", "quantity").WithDetail("value", in.Quantity)
	}
	for i, m := range in.Materials {
		if m.Quantity.IsNegative() {
			return apperror.NewInvalidInput("material quantity cannot be negative").
				WithDetail("material", m.Name).WithDetail("index", i)
		}
		if m.UnitPrice.IsNegative() {
			return apperror.NewInvalidInput("material unit price cannot be negative").
				WithDetail("material", m.Name).WithDetail("index", i)
		}
	}
	if in.FixedLaborAmount.IsNegative() {
		return apperror.NewInvalidInput("labor amount cannot be negative").
			WithDetail("field", "fixedLaborAmount")
	}
	for i, t := range in.LaborTasks {
		if t.Hours.IsNegative() || t.Days.IsNegative() || t.Amount.IsNegative() {
			return apperror.NewInvalidInput("labor task values cannot be negative").
				WithDetail("task", t.Name).WithDetail("index", i)
		}
	}
	if in.PaintingAmount.IsNegative() {
		return apperror.NewInvalidInput("painting amount cannot be negative").
			WithDetail("field", "paintingAmount")
	}
	if in.Indirect.Transport.IsNegative() || in.Indirect.Tools.IsNegative() ||
		in.Indirect.SpaceRental.IsNegative() || in.Indirect.PettyCash.IsNegative() {
		return apperror.NewInvalidInput("indirect costs cannot be negative").
			WithDetail("field", "indirectCosts")
	}
	if !types.ValidPercent(in.ProfitMarginPercent) {
		return apperror.NewInvalidInput("profit margin percent must be between 0 and 100").
			WithDetail("field", "profitMarginPercent").WithDetail("value", in.ProfitMarginPercent.String())
	}
	if !types.ValidPercent(in.LaborSurchargePercent) {
		return apperror.NewInvalidInput("labor surcharge percent must be between 0 and 100").
			WithDetail("field", "laborSurchargePercent").WithDetail("value", in.LaborSurchargePercent.String())
	}
	switch in.ExtraCharge.Mode {
	case ExtraPercentage:
		if !types.ValidPercent(in.ExtraCharge.Value) {
			return apperror.NewInvalidInput("extra charge percent must be between 0 and 100").
				WithDetail("field", "extraCharge.value").WithDetail("value", in.ExtraCharge.Value.String())
		}
	case ExtraFixedAmount, "":
		if in.ExtraCharge.Value.IsNegative() {
			return apperror.NewInvalidInput("extra charge amount cannot be negative").
				WithDetail("field", "extraCharge.value")
		}
	default:
		return apperror.NewInvalidInput("unknown extra charge mode").
			WithDetail("field", "extraCharge.mode").WithDetail("value", string(in.ExtraCharge.Mode))
	}
	return nil
}

// PriceManualItem computes unit price and line total for a manual line item.
//
// The order of the steps is the contract: materials, labor, painting, labor
// surcharge, indirect costs, margin base, extra charge, margin, unit price.
// Profit margin applies only to materials + indirect costs. Labor, painting,
// labor surcharge and extra charges are never part of the margin base.
func PriceManualItem(in ManualItemInput) (LinePricing, error) {
	if err := validateManualItem(in); err != nil {
		return LinePricing{}, err
	}

	materialsCost := decimal.Zero
	for _, m := range in.Materials {
		materialsCost = materialsCost.Add(m.Cost())
	}

	laborBase := decimal.Zero
	switch in.LaborMode {
	case LaborFixedAmount:
		laborBase = in.FixedLaborAmount
	case LaborHours, "":
		for _, t := range in.LaborTasks {
			laborBase = laborBase.
				Add(t.Hours.Mul(HourlyLaborRate)).
				Add(t.Days.Mul(DailyLaborRate)).
				Add(t.Amount)
		}
	default:
		return LinePricing{}, apperror.NewInvalidInput("unknown labor mode").
			WithDetail("field", "laborMode").WithDetail("value", string(in.LaborMode))
	}

	laborWithPaint := laborBase.Add(in.PaintingAmount)
	laborSurcharge := types.ApplyPercent(laborWithPaint, in.LaborSurchargePercent)

	indirectCosts := in.Indirect.Sum()
	marginBase := materialsCost.Add(indirectCosts)

	extraCharge := decimal.Zero
	switch in.ExtraCharge.Mode {
	case ExtraPercentage:
		extraCharge = types.ApplyPercent(marginBase, in.ExtraCharge.Value)
	case ExtraFixedAmount:
		extraCharge = in.ExtraCharge.Value
	}

	marginAmount := types.ApplyPercent(marginBase, in.ProfitMarginPercent)

	unitPrice := marginBase.
		Add(marginAmount).
		Add(laborWithPaint).
		Add(laborSurcharge).
		Add(extraCharge)

	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

	return LinePricing{
		UnitPrice: unitPrice,
		LineTotal: lineTotal,
		Breakdown: Breakdown{
			MaterialsCost:  materialsCost,
			LaborBase:      laborBase,
			PaintingAmount: in.PaintingAmount,
			LaborWithPaint: laborWithPaint,
			LaborSurcharge: laborSurcharge,
			IndirectCosts:  indirectCosts,
			MarginBase:     marginBase,
			MarginAmount:   marginAmount,
			ExtraCharge:    extraCharge,
		},
		Pending: in.Pending,
	}, nil
}

// Totals is the quotation-level aggregation result.
type Totals struct {
	Subtotal       types.Money `json:"subtotal"`
	DiscountAmount types.Money `json:"discountAmount"`
	TaxableBase    types.Money `json:"taxableBase"`
	TaxAmount      types.Money `json:"taxAmount"`
	Total          types.Money `json:"total"`
}

// AggregateQuotation computes quotation totals from already-priced line totals.
// The recompute is total and idempotent: it depends only on its inputs.
func AggregateQuotation(lineTotals []types.Money, discountPercent, taxPercent decimal.Decimal) (Totals, error) {
	if !types.ValidPercent(discountPercent) {
		return Totals{}, apperror.NewInvalidInput("discount percent must be between 0 and 100").
			WithDetail("field", "discountPercent").WithDetail("value", discountPercent.String())
	}
	if !types.ValidPercent(taxPercent) {
		return Totals{}, apperror.NewInvalidInput("tax percent must be between 0 and 100").
			WithDetail("field", "taxPercent").WithDetail("value", taxPercent.String())
	}

	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}

	discountAmount := types.ApplyPercent(subtotal, discountPercent)
	taxableBase := subtotal.Sub(discountAmount)
	taxAmount := types.ApplyPercent(taxableBase, taxPercent)
	total := taxableBase.Add(taxAmount)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableBase:    taxableBase,
		TaxAmount:      taxAmount,
		Total:          total,
	}, nil
}
