package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cotizador/internal/domain/pricing"
)

// PricingHandler exposes the pricing engine for previews. Nothing is stored;
// the frontend uses this to show live figures while the user edits a line.
type PricingHandler struct {
	*BaseHandler
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler) *PricingHandler {
	return &PricingHandler{BaseHandler: base}
}

// Preview handles POST /pricing/preview - price one manual item definition.
func (h *PricingHandler) Preview(c *gin.Context) {
	var input pricing.ManualItemInput
	if !h.BindJSON(c, &input) {
		return
	}

	result, err := pricing.PriceManualItem(input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
