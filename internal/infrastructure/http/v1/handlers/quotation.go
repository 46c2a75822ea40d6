package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
	"cotizador/internal/domain"
	"cotizador/internal/domain/documents/quotation"
	"cotizador/internal/domain/pricing"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// ExpenseRecords provides recorded purchases grouped by quotation line.
// Implemented by the real-expense service.
type ExpenseRecords interface {
	RecordsByLine(ctx context.Context, quotationID id.ID) (map[id.ID][]pricing.RealExpense, error)
}

// QuotationHandler provides HTTP handlers for quotation documents.
type QuotationHandler struct {
	*BaseHandler
	service  *quotation.Service
	expenses ExpenseRecords
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(base *BaseHandler, service *quotation.Service, expenses ExpenseRecords) *QuotationHandler {
	return &QuotationHandler{
		BaseHandler: base,
		service:     service,
		expenses:    expenses,
	}
}

// List handles GET /quotations - list with filtering and pagination.
func (h *QuotationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := quotation.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
			OrderBy:        c.Query("orderBy"),
			IncludeDeleted: c.Query("includeDeleted") == "true",
		},
	}

	if clientID := c.Query("clientId"); clientID != "" {
		parsed, err := id.Parse(clientID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid clientId format"))
			return
		}
		filter.ClientID = &parsed
	}

	if status := c.Query("status"); status != "" {
		s := entity.DocumentStatus(status)
		if !entity.ValidStatus(s) {
			h.Error(c, apperror.NewValidation("unknown status").WithDetail("value", status))
			return
		}
		filter.Status = &s
	}

	if from := c.Query("dateFrom"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom format (expected YYYY-MM-DD)"))
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("dateTo"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo format (expected YYYY-MM-DD)"))
			return
		}
		filter.DateTo = &t
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromQuotation(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /quotations/:id
func (h *QuotationHandler) Get(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotation(doc))
}

// GetByNumber handles GET /quotations/by-number/:number
func (h *QuotationHandler) GetByNumber(c *gin.Context) {
	doc, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotation(doc))
}

// Create handles POST /quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromQuotation(doc))
}

// Update handles PUT /quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotation(doc))
}

// Delete handles DELETE /quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDeletionMark handles POST /quotations/:id/deletion-mark
func (h *QuotationHandler) SetDeletionMark(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), docID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}

// Issue handles POST /quotations/:id/issue - finalize a draft.
func (h *QuotationHandler) Issue(c *gin.Context) {
	h.transition(c, h.service.Issue)
}

// Reopen handles POST /quotations/:id/reopen - return to draft.
func (h *QuotationHandler) Reopen(c *gin.Context) {
	h.transition(c, h.service.Reopen)
}

// SetStatus handles POST /quotations/:id/status - accept or reject.
func (h *QuotationHandler) SetStatus(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetQuotationStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.SetStatus(c.Request.Context(), docID, entity.DocumentStatus(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotation(doc))
}

// Copy handles POST /quotations/:id/copy - duplicate as a new draft.
func (h *QuotationHandler) Copy(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Copy(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromQuotation(doc))
}

// ApplyRealCosts handles POST /quotations/:id/apply-real-costs - write actual
// purchase prices back into the draft and reprice.
func (h *QuotationHandler) ApplyRealCosts(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	recordsByLine, err := h.expenses.RecordsByLine(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.ApplyRealCosts(ctx, docID, recordsByLine)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromApplyResult(result))
}

func (h *QuotationHandler) parseID(c *gin.Context) (id.ID, bool) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return docID, false
	}
	return docID, true
}

func (h *QuotationHandler) transition(c *gin.Context, fn func(context.Context, id.ID) (*quotation.Quotation, error)) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := fn(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotation(doc))
}
