package dto

import (
	"time"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// PromotionResponse describes a usable promo code.
type PromotionResponse struct {
	Code               string       `json:"code"`
	Description        string       `json:"description"`
	DiscountPercentage float64      `json:"discountPercentage"`
	MinOrderAmount     model.Amount `json:"minOrderAmount"`
	MaxDiscountAmount  model.Amount `json:"maxDiscountAmount"`
	ValidUntil         time.Time    `json:"validUntil"`
}

// NewPromotionResponse converts a discount code.
func NewPromotionResponse(c model.DiscountCode) PromotionResponse {
	return PromotionResponse{
		Code:               c.Code,
		Description:        c.Description,
		DiscountPercentage: c.DiscountPercentage.InexactFloat64(),
		MinOrderAmount:     model.NewAmount(c.MinOrderAmount),
		MaxDiscountAmount:  model.NewAmount(c.MaxDiscountAmount),
		ValidUntil:         c.ValidUntil,
	}
}

// ValidatePromotionRequest asks whether code applies to an order of Subtotal.
type ValidatePromotionRequest struct {
	Code     string       `json:"code" binding:"required"`
	Subtotal model.Amount `json:"subtotal"`
}

// ValidatePromotionResponse is the coupon check outcome.
type ValidatePromotionResponse struct {
	Valid          bool         `json:"valid"`
	Code           string       `json:"code"`
	DiscountAmount model.Amount `json:"discountAmount"`
	Description    string       `json:"description,omitempty"`
	Reason         string       `json:"reason,omitempty"`
}

// NewValidatePromotionResponse converts a coupon check.
func NewValidatePromotionResponse(c model.CouponCheck) ValidatePromotionResponse {
	return ValidatePromotionResponse{
		Valid:          c.Valid,
		Code:           c.Code,
		DiscountAmount: model.NewAmount(c.DiscountAmount),
		Description:    c.Description,
		Reason:         c.Reason,
	}
}
