package dto

import (
	"time"

	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

// ShippingRequest selects a shipping method.
type ShippingRequest struct {
	MethodID string `json:"methodId" binding:"required"`
}

// PromoRequest applies a promo code.
type PromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// GiftWrapRequest toggles gift wrapping.
type GiftWrapRequest struct {
	Enabled bool `json:"enabled"`
}

// GiftMessageRequest sets the gift message. An empty message clears it.
type GiftMessageRequest struct {
	Message string `json:"message"`
}

// NotesRequest sets the order notes. Empty notes clear them.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// SubmitRequest carries the contact details entered on the final step.
type SubmitRequest struct {
	Billing  model.ContactInfo `json:"billingInfo"`
	Shipping model.ContactInfo `json:"shippingInfo"`
}

// SubmitResponse confirms a placed order.
type SubmitResponse struct {
	OrderID string       `json:"orderId"`
	Status  string       `json:"status"`
	Total   model.Amount `json:"total"`
}

// NewSubmitResponse converts an order confirmation.
func NewSubmitResponse(c *model.OrderConfirmation) SubmitResponse {
	return SubmitResponse{OrderID: c.OrderID, Status: c.Status, Total: model.NewAmount(c.Total)}
}

// LineItemResponse is a single cart position.
type LineItemResponse struct {
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	UnitPrice   model.Amount `json:"unitPrice"`
	LineTotal   model.Amount `json:"lineTotal"`
}

// ShippingMethodResponse is a selectable shipping option.
type ShippingMethodResponse struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Cost             model.Amount `json:"cost"`
	EstimatedDaysMin int          `json:"estimatedDaysMin"`
	EstimatedDaysMax int          `json:"estimatedDaysMax"`
}

// AppliedPromoResponse describes the promo code attached to a draft.
type AppliedPromoResponse struct {
	Code        string       `json:"code"`
	Description string       `json:"description"`
	Discount    model.Amount `json:"discount"`
}

// PricingResponse is the price breakdown of a draft.
type PricingResponse struct {
	Subtotal       model.Amount `json:"subtotal"`
	Shipping       model.Amount `json:"shipping"`
	PointsDiscount model.Amount `json:"pointsDiscount"`
	PromoDiscount  model.Amount `json:"promoDiscount"`
	AdditionalFees model.Amount `json:"additionalFees"`
	Total          model.Amount `json:"total"`
	Clamped        bool         `json:"clamped"`
}

// CheckoutResponse is the client view of a checkout draft.
type CheckoutResponse struct {
	ID               string                   `json:"id"`
	Status           string                   `json:"status"`
	Items            []LineItemResponse       `json:"items"`
	ShippingMethods  []ShippingMethodResponse `json:"shippingMethods"`
	ShippingMethodID string                   `json:"shippingMethodId,omitempty"`
	UseRewardPoints  bool                     `json:"useRewardPoints"`
	AvailablePoints  int64                    `json:"availablePoints"`
	AppliedPromo     *AppliedPromoResponse    `json:"appliedPromo,omitempty"`
	GiftWrap         bool                     `json:"giftWrap"`
	GiftMessage      string                   `json:"giftMessage,omitempty"`
	Notes            string                   `json:"notes,omitempty"`
	LastError        string                   `json:"lastError,omitempty"`
	OrderID          string                   `json:"orderId,omitempty"`
	Warnings         []string                 `json:"warnings,omitempty"`
	Pricing          PricingResponse          `json:"pricing"`
	ExpiresAt        time.Time                `json:"expiresAt"`
}

// NewCheckoutResponse converts a draft.
func NewCheckoutResponse(d *model.OrderDraft) CheckoutResponse {
	resp := CheckoutResponse{
		ID:               d.ID.String(),
		Status:           string(d.Status),
		Items:            make([]LineItemResponse, 0, len(d.Items)),
		ShippingMethods:  make([]ShippingMethodResponse, 0, len(d.ShippingMethods)),
		ShippingMethodID: d.ShippingMethodID,
		UseRewardPoints:  d.UseRewardPoints,
		AvailablePoints:  d.AvailablePoints,
		GiftWrap:         d.GiftWrap,
		GiftMessage:      d.GiftMessage,
		Notes:            d.Notes,
		LastError:        d.LastError,
		OrderID:          d.OrderID,
		Warnings:         d.Warnings,
		Pricing: PricingResponse{
			Subtotal:       model.NewAmount(d.Pricing.Subtotal),
			Shipping:       model.NewAmount(d.Pricing.Shipping),
			PointsDiscount: model.NewAmount(d.Pricing.PointsDiscount),
			PromoDiscount:  model.NewAmount(d.Pricing.PromoDiscount),
			AdditionalFees: model.NewAmount(d.Pricing.AdditionalFees),
			Total:          model.NewAmount(d.Pricing.Total),
			Clamped:        d.Pricing.Clamped,
		},
		ExpiresAt: d.ExpiresAt,
	}
	for _, item := range d.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   model.NewAmount(item.UnitPrice),
			LineTotal:   model.NewAmount(model.RoundMoney(item.Total())),
		})
	}
	for _, m := range d.ShippingMethods {
		resp.ShippingMethods = append(resp.ShippingMethods, ShippingMethodResponse{
			ID:               m.ID,
			Name:             m.Name,
			Cost:             model.NewAmount(m.BaseCost),
			EstimatedDaysMin: m.EstimatedDaysMin,
			EstimatedDaysMax: m.EstimatedDaysMax,
		})
	}
	if d.AppliedPromo != nil {
		resp.AppliedPromo = &AppliedPromoResponse{
			Code:        d.AppliedPromo.Code,
			Description: d.AppliedPromo.Description,
			Discount:    model.NewAmount(d.PromoDiscountAmount),
		}
	}
	return resp
}
