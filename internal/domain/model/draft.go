package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftStatus describes checkout session lifecycle.
type DraftStatus string

const (
	DraftStatusDraft      DraftStatus = "DRAFT"
	DraftStatusSubmitting DraftStatus = "SUBMITTING"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
)

// OrderDraft is the in-progress checkout state owned by a single user.
type OrderDraft struct {
	ID                  uuid.UUID        `json:"id"`
	UserID              int64            `json:"userId"`
	Items               []LineItem       `json:"items"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	ShippingMethods     []ShippingMethod `json:"shippingMethods"`
	ShippingMethodID    string           `json:"shippingMethodId,omitempty"`
	ShippingCost        decimal.Decimal  `json:"shippingCost"`
	UseRewardPoints     bool             `json:"useRewardPoints"`
	AvailablePoints     int64            `json:"availablePoints"`
	AppliedPromo        *DiscountCode    `json:"appliedPromo,omitempty"`
	PromoDiscountAmount decimal.Decimal  `json:"promoDiscountAmount"`
	GiftWrap            bool             `json:"giftWrap"`
	GiftMessage         string           `json:"giftMessage,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	Status              DraftStatus      `json:"status"`
	LastError           string           `json:"lastError,omitempty"`
	OrderID             string           `json:"orderId,omitempty"`
	IdempotencyKey      string           `json:"idempotencyKey,omitempty"`
	Warnings            []string         `json:"warnings,omitempty"`
	Pricing             PricingResult    `json:"pricing"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	ExpiresAt           time.Time        `json:"expiresAt"`
}

// IsProcessing reports whether a submission is in flight.
func (d *OrderDraft) IsProcessing() bool {
	return d.Status == DraftStatusSubmitting
}

// AppliedPromoCode returns the applied code or an empty string.
func (d *OrderDraft) AppliedPromoCode() string {
	if d.AppliedPromo == nil {
		return ""
	}
	return d.AppliedPromo.Code
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (d *OrderDraft) Clone() *OrderDraft {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Items = append([]LineItem(nil), d.Items...)
	cp.ShippingMethods = append([]ShippingMethod(nil), d.ShippingMethods...)
	cp.Warnings = append([]string(nil), d.Warnings...)
	if d.AppliedPromo != nil {
		promo := *d.AppliedPromo
		cp.AppliedPromo = &promo
	}
	return &cp
}
