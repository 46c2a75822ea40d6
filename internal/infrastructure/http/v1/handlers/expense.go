package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/catalogs/expense"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// FixedExpenseHTTPHandler adds the monthly-total endpoint on top of the
// generic catalog handler.
type FixedExpenseHTTPHandler struct {
	*CatalogHandler[*expense.FixedExpense, dto.CreateFixedExpenseRequest, dto.UpdateFixedExpenseRequest]
	service *expense.Service
}

// NewFixedExpenseHandler wires the fixed-expense service into the generic catalog handler.
func NewFixedExpenseHandler(
	base *BaseHandler,
	service *expense.Service,
) *FixedExpenseHTTPHandler {

	config := CatalogHandlerConfig[
		*expense.FixedExpense,
		dto.CreateFixedExpenseRequest,
		dto.UpdateFixedExpenseRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "fixedExpense",

		MapCreateDTO: func(req dto.CreateFixedExpenseRequest) *expense.FixedExpense {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateFixedExpenseRequest, existing *expense.FixedExpense) *expense.FixedExpense {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *expense.FixedExpense) any {
			return dto.FromFixedExpense(entity)
		},
	}

	return &FixedExpenseHTTPHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// MonthlyTotal handles GET /fixed-expenses/monthly-total - sum of active expenses.
func (h *FixedExpenseHTTPHandler) MonthlyTotal(c *gin.Context) {
	total, err := h.service.MonthlyTotal(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthlyTotal": total})
}
