package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/documents/quotation"
	"cotizador/internal/domain/pricing"
)

// --- Request DTOs ---

// QuotationLineRequest is one line of a create/update request. Manual lines
// carry the full cost definition; catalog lines reference a product and the
// price is resolved server side.
type QuotationLineRequest struct {
	Kind quotation.LineKind `json:"kind" binding:"required"`

	// Manual lines
	Manual *pricing.ManualItemInput `json:"manual"`

	// Catalog lines
	ProductID        string `json:"productId"`
	Quantity         int    `json:"quantity"`
	SelectedColor    string `json:"selectedColor"`
	SelectedMaterial string `json:"selectedMaterial"`
	Description      string `json:"description"`
}

// CreateQuotationRequest is the request body for creating a quotation.
type CreateQuotationRequest struct {
	ClientID    string     `json:"clientId" binding:"required"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	ClientPhone string     `json:"clientPhone"`
	Date        *time.Time `json:"date"`
	Comment     string     `json:"comment"`

	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	TaxPercent      *decimal.Decimal `json:"taxPercent"`

	Lines []QuotationLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateQuotationRequest) ToEntity() (*quotation.Quotation, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return nil, apperror.NewValidation("invalid clientId format")
	}

	doc := quotation.New(clientID, r.ClientName)
	doc.ClientEmail = r.ClientEmail
	doc.ClientPhone = r.ClientPhone
	doc.Comment = r.Comment
	doc.DiscountPercent = r.DiscountPercent
	if r.TaxPercent != nil {
		doc.TaxPercent = *r.TaxPercent
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}

	if err := applyLines(doc, r.Lines); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateQuotationRequest is the request body for updating a quotation.
// Lines always replace the stored table part in full.
type UpdateQuotationRequest struct {
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	ClientPhone string     `json:"clientPhone"`
	Date        *time.Time `json:"date"`
	Comment     string     `json:"comment"`

	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	TaxPercent      *decimal.Decimal `json:"taxPercent"`

	Lines []QuotationLineRequest `json:"lines"`

	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateQuotationRequest) ApplyTo(doc *quotation.Quotation) error {
	if r.ClientName != "" {
		doc.ClientName = r.ClientName
	}
	doc.ClientEmail = r.ClientEmail
	doc.ClientPhone = r.ClientPhone
	doc.Comment = r.Comment
	doc.DiscountPercent = r.DiscountPercent
	if r.TaxPercent != nil {
		doc.TaxPercent = *r.TaxPercent
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Version = r.Version

	doc.Lines = doc.Lines[:0]
	return applyLines(doc, r.Lines)
}

func applyLines(doc *quotation.Quotation, lines []QuotationLineRequest) error {
	for i, lr := range lines {
		switch lr.Kind {
		case quotation.KindManual:
			if lr.Manual == nil {
				return apperror.NewValidation("manual line requires a cost definition").
					WithDetail("line", i+1)
			}
			doc.AddManualLine(*lr.Manual)

		case quotation.KindCatalog:
			productID, err := id.Parse(lr.ProductID)
			if err != nil {
				return apperror.NewValidation("invalid productId format").
					WithDetail("line", i+1)
			}
			// Name and unit price are resolved from the catalog by the service
			line := doc.AddCatalogLine(productID, "", lr.Quantity, types.Zero(), lr.SelectedColor, lr.SelectedMaterial)
			line.Description = lr.Description

		default:
			return apperror.NewValidation("unknown line kind").
				WithDetail("line", i+1).
				WithDetail("kind", string(lr.Kind))
		}
	}
	return nil
}

// --- Status ---

// SetQuotationStatusRequest moves an issued quotation to accepted/rejected.
type SetQuotationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Response DTOs ---

// QuotationResponse is the response body for a quotation.
type QuotationResponse struct {
	DocumentResponse

	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`

	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`

	Subtotal       types.Money `json:"subtotal"`
	DiscountAmount types.Money `json:"discountAmount"`
	TaxAmount      types.Money `json:"taxAmount"`
	Total          types.Money `json:"total"`

	Lines []quotation.Line `json:"lines"`
}

// FromQuotation creates response DTO from domain entity.
func FromQuotation(doc *quotation.Quotation) *QuotationResponse {
	return &QuotationResponse{
		DocumentResponse: FromDocument(doc.Document),
		ClientID:         doc.ClientID.String(),
		ClientName:       doc.ClientName,
		ClientEmail:      doc.ClientEmail,
		ClientPhone:      doc.ClientPhone,
		DiscountPercent:  doc.DiscountPercent,
		TaxPercent:       doc.TaxPercent,
		Subtotal:         doc.Subtotal,
		DiscountAmount:   doc.DiscountAmount,
		TaxAmount:        doc.TaxAmount,
		Total:            doc.Total,
		Lines:            doc.Lines,
	}
}

// ApplyRealCostsResponse reports the outcome of writing actual purchase
// prices back into a quotation.
type ApplyRealCostsResponse struct {
	Quotation *QuotationResponse        `json:"quotation"`
	Updated   int                       `json:"updated"`
	Unmatched []quotation.UnmatchedCost `json:"unmatched,omitempty"`
}

// FromApplyResult creates response DTO from the service result.
func FromApplyResult(res *quotation.ApplyResult) *ApplyRealCostsResponse {
	return &ApplyRealCostsResponse{
		Quotation: FromQuotation(res.Quotation),
		Updated:   res.Updated,
		Unmatched: res.Unmatched,
	}
}
