package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
	"github.com/polkiloo/storefront-checkout/internal/server/http/dto"
)

// CheckoutHandler manages checkout draft endpoints.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Start handles POST /api/checkout.
func (h *CheckoutHandler) Start(c *gin.Context) {
	draft, err := h.facade.StartCheckout(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCheckoutResponse(draft))
}

// Get handles GET /api/checkout/:id.
func (h *CheckoutHandler) Get(c *gin.Context) {
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.Checkout(c.Request.Context(), userID, id)
	})
}

// Abandon handles DELETE /api/checkout/:id.
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	if err := h.facade.AbandonCheckout(c.Request.Context(), CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetShipping handles PUT /api/checkout/:id/shipping.
func (h *CheckoutHandler) SetShipping(c *gin.Context) {
	var req dto.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.SetShippingMethod(c.Request.Context(), userID, id, req.MethodID)
	})
}

// TogglePoints handles POST /api/checkout/:id/points/toggle.
func (h *CheckoutHandler) TogglePoints(c *gin.Context) {
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.ToggleRewardPoints(c.Request.Context(), userID, id)
	})
}

// ApplyPromo handles POST /api/checkout/:id/promo.
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	var req dto.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.ApplyPromoCode(c.Request.Context(), userID, id, req.Code)
	})
}

// RemovePromo handles DELETE /api/checkout/:id/promo.
func (h *CheckoutHandler) RemovePromo(c *gin.Context) {
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.RemovePromoCode(c.Request.Context(), userID, id)
	})
}

// SetGiftWrap handles PUT /api/checkout/:id/gift-wrap.
func (h *CheckoutHandler) SetGiftWrap(c *gin.Context) {
	var req dto.GiftWrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.SetGiftWrap(c.Request.Context(), userID, id, req.Enabled)
	})
}

// SetGiftMessage handles PUT /api/checkout/:id/gift-message.
func (h *CheckoutHandler) SetGiftMessage(c *gin.Context) {
	var req dto.GiftMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.SetGiftMessage(c.Request.Context(), userID, id, req.Message)
	})
}

// SetNotes handles PUT /api/checkout/:id/notes.
func (h *CheckoutHandler) SetNotes(c *gin.Context) {
	var req dto.NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.draft(c, func(userID int64, id uuid.UUID) (*model.OrderDraft, error) {
		return h.facade.SetNotes(c.Request.Context(), userID, id, req.Notes)
	})
}

// Submit handles POST /api/checkout/:id/submit.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	confirmation, err := h.facade.SubmitCheckout(c.Request.Context(), CurrentUserID(c), id, req.Billing, req.Shipping)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSubmitResponse(confirmation))
}

func (h *CheckoutHandler) draft(c *gin.Context, fn func(userID int64, id uuid.UUID) (*model.OrderDraft, error)) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	draft, err := fn(CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutResponse(draft))
}
