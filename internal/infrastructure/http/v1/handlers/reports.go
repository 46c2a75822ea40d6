package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/reports"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetDashboard handles GET /reports/dashboard
func (h *ReportsHandler) GetDashboard(c *gin.Context) {
	var req dto.DashboardRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GetDashboard(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetMonthlyQuoted handles GET /reports/monthly-quoted
func (h *ReportsHandler) GetMonthlyQuoted(c *gin.Context) {
	var req dto.MonthlyQuotedRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GetMonthlyQuoted(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetTopMaterials handles GET /reports/top-materials
func (h *ReportsHandler) GetTopMaterials(c *gin.Context) {
	var req dto.TopMaterialsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.GetTopMaterials(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetBudgetVsActual handles GET /reports/budget-vs-actual
func (h *ReportsHandler) GetBudgetVsActual(c *gin.Context) {
	var req dto.BudgetVsActualRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetBudgetVsActual(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
