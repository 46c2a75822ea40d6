package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/domain"
	"cotizador/internal/domain/expenses/realexpense"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// RealExpenseHandler provides HTTP handlers for real-expense records.
type RealExpenseHandler struct {
	*BaseHandler
	service *realexpense.Service
}

// NewRealExpenseHandler creates a new real-expense handler.
func NewRealExpenseHandler(base *BaseHandler, service *realexpense.Service) *RealExpenseHandler {
	return &RealExpenseHandler{BaseHandler: base, service: service}
}

// List handles GET /real-expenses - list with filtering and pagination.
func (h *RealExpenseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := realexpense.ListFilter{
		ListFilter: domain.ListFilter{
			Search: c.Query("search"),
			Limit:  h.ParseIntQuery(c, "limit", 50),
			Offset: h.ParseIntQuery(c, "offset", 0),
		},
		Provider: c.Query("provider"),
	}

	if quotationID := c.Query("quotationId"); quotationID != "" {
		parsed, err := id.Parse(quotationID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid quotationId format"))
			return
		}
		filter.QuotationID = &parsed
	}

	if lineID := c.Query("lineId"); lineID != "" {
		parsed, err := id.Parse(lineID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid lineId format"))
			return
		}
		filter.LineID = &parsed
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
		items[i] = dto.FromRealExpense(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /real-expenses/:id
func (h *RealExpenseHandler) Get(c *gin.Context) {
	recID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), recID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRealExpense(rec))
}

// Create handles POST /real-expenses - register a purchase.
func (h *RealExpenseHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateRealExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, rec); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromRealExpense(rec))
}

// Update handles PUT /real-expenses/:id
func (h *RealExpenseHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	recID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateRealExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.GetByID(ctx, recID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(rec)

	if err := h.service.Update(ctx, rec); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRealExpense(rec))
}

// Delete handles DELETE /real-expenses/:id
func (h *RealExpenseHandler) Delete(c *gin.Context) {
	recID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), recID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Reconcile handles GET /real-expenses/reconciliation/:quotationId -
// budget-vs-actual comparison for every line with recorded purchases.
func (h *RealExpenseHandler) Reconcile(c *gin.Context) {
	quotationID, err := id.Parse(c.Param("quotationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quotationId format"))
		return
	}

	lines, err := h.service.ReconcileQuotation(c.Request.Context(), quotationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReconciliationResponse{
		QuotationID: quotationID.String(),
		Lines:       lines,
	})
}
