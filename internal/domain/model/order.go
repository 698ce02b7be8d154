package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactInfo is the billing or shipping party of an order.
type ContactInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is an order line sent to the order service.
type OrderItem struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// OrderRequest is the order-creation payload built from a finalized draft.
type OrderRequest struct {
	IdempotencyKey   string
	UserID           int64
	Billing          ContactInfo
	Shipping         ContactInfo
	ShippingMethodID string
	Items            []OrderItem
	Subtotal         decimal.Decimal
	ShippingAmount   decimal.Decimal
	DiscountAmount   decimal.Decimal
	AdditionalFees   decimal.Decimal
	TotalAmount      decimal.Decimal
	CouponID         *int64
	CouponCode       string
	PointsRedeemed   int64
	GiftWrap         bool
	GiftMessage      string
	Notes            string
}

// OrderConfirmation is returned by the order service on success.
type OrderConfirmation struct {
	OrderID string
	Status  string
	Total   decimal.Decimal
}

// OrderPlacedEvent notifies downstream systems such as the loyalty ledger.
type OrderPlacedEvent struct {
	OrderID        string          `json:"orderId"`
	UserID         int64           `json:"userId"`
	Total          decimal.Decimal `json:"total"`
	PointsEarned   int64           `json:"pointsEarned"`
	PointsRedeemed int64           `json:"pointsRedeemed"`
	CouponCode     string          `json:"couponCode,omitempty"`
	PlacedAt       time.Time       `json:"placedAt"`
}
