package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/server/http/dto"
)

// PointsHandler serves the reward points hint.
type PointsHandler struct {
	facade PointsFacade
}

// NewPointsHandler constructs PointsHandler.
func NewPointsHandler(facade PointsFacade) *PointsHandler {
	return &PointsHandler{facade: facade}
}

// Summary handles GET /api/user/points. The optional order_total query caps
// the redeemable points.
func (h *PointsHandler) Summary(c *gin.Context) {
	orderTotal := decimal.Zero
	if raw := c.Query("order_total"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, domainErrors.ErrInvalidAmount)
			return
		}
		orderTotal = parsed
	}

	summary, err := h.facade.PointsSummary(c.Request.Context(), CurrentUserID(c), orderTotal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPointsResponse(summary))
}
