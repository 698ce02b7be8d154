package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront-checkout/internal/server/http/dto"
)

// PromotionHandler serves the promo code catalog.
type PromotionHandler struct {
	facade PromotionFacade
}

// NewPromotionHandler constructs PromotionHandler.
func NewPromotionHandler(facade PromotionFacade) *PromotionHandler {
	return &PromotionHandler{facade: facade}
}

// List handles GET /api/promotions.
func (h *PromotionHandler) List(c *gin.Context) {
	codes, err := h.facade.Promotions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.PromotionResponse, 0, len(codes))
	for _, code := range codes {
		resp = append(resp, dto.NewPromotionResponse(code))
	}
	c.JSON(http.StatusOK, resp)
}

// Validate handles POST /api/promotions/validate. An unusable code is a
// regular answer with valid=false.
func (h *PromotionHandler) Validate(c *gin.Context) {
	var req dto.ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	check, err := h.facade.CheckPromotion(c.Request.Context(), req.Code, req.Subtotal.Decimal())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewValidatePromotionResponse(check))
}
