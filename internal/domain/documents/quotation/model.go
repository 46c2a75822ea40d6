// Package quotation provides the Quotation document: an ordered set of priced
// line items for a client, with discount and tax applied on top.
package quotation

import (
	"context"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/pricing"
)

// LineKind distinguishes catalog-backed lines from freeform manual lines.
type LineKind string

const (
	KindCatalog LineKind = "catalog"
	KindManual  LineKind = "manual"
)

// Quotation represents a client quotation document.
type Quotation struct {
	entity.Document
	entity.ClientAware

	// Client snapshot captured at creation time. The catalog record may
	// change later; the quotation keeps what was agreed.
	ClientName  string `db:"client_name" json:"clientName"`
	ClientEmail string `db:"client_email" json:"clientEmail,omitempty"`
	ClientPhone string `db:"client_phone" json:"clientPhone,omitempty"`

	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discountPercent"`
	TaxPercent      decimal.Decimal `db:"tax_percent" json:"taxPercent"`

	// Totals (recomputed from lines, never trusted incrementally)
	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	TaxAmount      types.Money `db:"tax_amount" json:"taxAmount"`
	Total          types.Money `db:"total" json:"total"`

	// Table part: line items
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one row of a quotation.
type Line struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	Kind LineKind `db:"kind" json:"kind"`

	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`

	Quantity int `db:"quantity" json:"quantity"`

	// Catalog lines: product reference, selected options and the unit price
	// resolved from the product catalog.
	ProductID        id.ID  `db:"product_id" json:"productId,omitempty"`
	SelectedColor    string `db:"selected_color" json:"selectedColor,omitempty"`
	SelectedMaterial string `db:"selected_material" json:"selectedMaterial,omitempty"`

	// Manual lines: full cost definition (stored as JSONB).
	Manual *pricing.ManualItemInput `db:"manual" json:"manual,omitempty"`

	// Derived
	UnitPrice types.Money       `db:"unit_price" json:"unitPrice"`
	LineTotal types.Money       `db:"line_total" json:"lineTotal"`
	Breakdown pricing.Breakdown `db:"breakdown" json:"breakdown"`
}

// New creates an empty draft quotation for a client.
func New(clientID id.ID, clientName string) *Quotation {
	return &Quotation{
		Document:    entity.NewDocument(),
		ClientAware: entity.ClientAware{ClientID: clientID},
		ClientName:  clientName,
		TaxPercent:  pricing.DefaultTaxPercent,
		Lines:       make([]Line, 0),
	}
}

// AddManualLine appends a freeform line. Totals are not recomputed here;
// call Reprice before saving.
func (q *Quotation) AddManualLine(input pricing.ManualItemInput) *Line {
	line := Line{
		LineID:      id.New(),
		LineNo:      len(q.Lines) + 1,
		Kind:        KindManual,
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Manual:      &input,
	}
	q.Lines = append(q.Lines, line)
	return &q.Lines[len(q.Lines)-1]
}

// AddCatalogLine appends a catalog-backed line. The unit price must be
// resolved from the product catalog before repricing.
func (q *Quotation) AddCatalogLine(productID id.ID, name string, quantity int, unitPrice types.Money, color, material string) *Line {
	line := Line{
		LineID:           id.New(),
		LineNo:           len(q.Lines) + 1,
		Kind:             KindCatalog,
		Name:             name,
		Quantity:         quantity,
		ProductID:        productID,
		SelectedColor:    color,
		SelectedMaterial: material,
		UnitPrice:        unitPrice,
	}
	q.Lines = append(q.Lines, line)
	return &q.Lines[len(q.Lines)-1]
}

// Reprice recomputes every derived field from the line items.
//
// This is always a full recompute: manual lines run through the pricing
// engine, catalog lines multiply their resolved unit price, and the document
// totals are aggregated from scratch. No cached derived state is trusted.
func (q *Quotation) Reprice() error {
	lineTotals := make([]types.Money, 0, len(q.Lines))

	for i := range q.Lines {
		line := &q.Lines[i]
		line.LineNo = i + 1

		switch line.Kind {
		case KindManual:
			if line.Manual == nil {
				return apperror.NewValidation("manual line is missing its cost definition").
					WithDetail("lineNo", line.LineNo)
			}
			line.Manual.Quantity = line.Quantity
			priced, err := pricing.PriceManualItem(*line.Manual)
			if err != nil {
				if appErr, ok := apperror.AsAppError(err); ok {
					return appErr.WithDetail("lineNo", line.LineNo)
				}
				return err
			}
			line.UnitPrice = priced.UnitPrice
			line.LineTotal = priced.LineTotal
			line.Breakdown = priced.Breakdown

		case KindCatalog:
			if line.Quantity < 1 {
				return apperror.NewInvalidInput("quantity must be at least 1").
					WithDetail("lineNo", line.LineNo)
			}
			if line.UnitPrice.IsNegative() {
				return apperror.NewInvalidInput("unit price cannot be negative").
					WithDetail("lineNo", line.LineNo)
			}
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			line.Breakdown = pricing.Breakdown{}

		default:
			return apperror.NewValidation("unknown line kind").
				WithDetail("lineNo", line.LineNo).
				WithDetail("kind", string(line.Kind))
		}

		lineTotals = append(lineTotals, line.LineTotal)
	}

	totals, err := pricing.AggregateQuotation(lineTotals, q.DiscountPercent, q.TaxPercent)
	if err != nil {
		return err
	}

	q.Subtotal = totals.Subtotal
	q.DiscountAmount = totals.DiscountAmount
	q.TaxAmount = totals.TaxAmount
	q.Total = totals.Total
	return nil
}

// ManualMaterials returns the budgeted materials of a line, or nil for
// catalog lines. Used by real-expense reconciliation.
func (q *Quotation) ManualMaterials(lineID id.ID) ([]pricing.MaterialUsage, int, bool) {
	for i := range q.Lines {
		line := &q.Lines[i]
		if line.LineID == lineID && line.Kind == KindManual && line.Manual != nil {
			return line.Manual.Materials, line.Quantity, true
		}
	}
	return nil, 0, false
}

// Validate implements entity.Validatable.
func (q *Quotation) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}
	if err := q.ValidateClient(ctx); err != nil {
		return err
	}
	if q.ClientName == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "clientName")
	}
	if !types.ValidPercent(q.DiscountPercent) {
		return apperror.NewValidation("discount percent must be between 0 and 100").
			WithDetail("field", "discountPercent")
	}
	if !types.ValidPercent(q.TaxPercent) {
		return apperror.NewValidation("tax percent must be between 0 and 100").
			WithDetail("field", "taxPercent")
	}

	for i, line := range q.Lines {
		if line.Quantity < 1 {
			return apperror.NewValidation("line quantity must be at least 1").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		switch line.Kind {
		case KindManual:
			if line.Manual == nil {
				return apperror.NewValidation("manual line requires a cost definition").
					WithDetail("lineNo", i+1)
			}
		case KindCatalog:
			if id.IsNil(line.ProductID) {
				return apperror.NewValidation("catalog line requires a product").
					WithDetail("lineNo", i+1)
			}
		default:
			return apperror.NewValidation("unknown line kind").
				WithDetail("lineNo", i+1).
				WithDetail("kind", string(line.Kind))
		}
	}

	return nil
}

// GetDocumentType returns the document type name.
func (q *Quotation) GetDocumentType() string {
	return "Quotation"
}
