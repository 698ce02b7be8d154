package storefront

import (
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

type lineItemDTO struct {
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	UnitPrice   model.Amount `json:"unitPrice"`
}

type cartResponse struct {
	Items    []lineItemDTO `json:"items"`
	Subtotal model.Amount  `json:"subtotal"`
}

func (r cartResponse) toModel() *model.CartSnapshot {
	items := make([]model.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, model.LineItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.Decimal(),
		})
	}
	return &model.CartSnapshot{Items: items, Subtotal: r.Subtotal.Decimal()}
}

type shippingMethodDTO struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	BaseCost         model.Amount `json:"baseCost"`
	EstimatedDaysMin int          `json:"estimatedDaysMin"`
	EstimatedDaysMax int          `json:"estimatedDaysMax"`
}

func (m shippingMethodDTO) toModel() model.ShippingMethod {
	return model.ShippingMethod{
		ID:               m.ID,
		Name:             m.Name,
		BaseCost:         m.BaseCost.Decimal(),
		EstimatedDaysMin: m.EstimatedDaysMin,
		EstimatedDaysMax: m.EstimatedDaysMax,
	}
}

type orderItemDTO struct {
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	UnitPrice   model.Amount `json:"unitPrice"`
	LineTotal   model.Amount `json:"lineTotal"`
}

type orderRequestDTO struct {
	UserID           int64             `json:"userId"`
	BillingInfo      model.ContactInfo `json:"billingInfo"`
	ShippingInfo     model.ContactInfo `json:"shippingInfo"`
	ShippingMethodID string            `json:"shippingMethodId,omitempty"`
	OrderItems       []orderItemDTO    `json:"orderItems"`
	Subtotal         model.Amount      `json:"subtotal"`
	ShippingAmount   model.Amount      `json:"shippingAmount"`
	DiscountAmount   model.Amount      `json:"discountAmount"`
	AdditionalFees   model.Amount      `json:"additionalFees"`
	TotalAmount      model.Amount      `json:"totalAmount"`
	CouponID         *int64            `json:"couponId,omitempty"`
	CouponCode       string            `json:"couponCode,omitempty"`
	PointsRedeemed   int64             `json:"pointsRedeemed"`
	GiftWrap         bool              `json:"giftWrap"`
	GiftMessage      string            `json:"giftMessage,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

func newOrderRequestDTO(req model.OrderRequest) orderRequestDTO {
	items := make([]orderItemDTO, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orderItemDTO{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   model.NewAmount(it.UnitPrice),
			LineTotal:   model.NewAmount(it.LineTotal),
		})
	}
	return orderRequestDTO{
		UserID:           req.UserID,
		BillingInfo:      req.Billing,
		ShippingInfo:     req.Shipping,
		ShippingMethodID: req.ShippingMethodID,
		OrderItems:       items,
		Subtotal:         model.NewAmount(req.Subtotal),
		ShippingAmount:   model.NewAmount(req.ShippingAmount),
		DiscountAmount:   model.NewAmount(req.DiscountAmount),
		AdditionalFees:   model.NewAmount(req.AdditionalFees),
		TotalAmount:      model.NewAmount(req.TotalAmount),
		CouponID:         req.CouponID,
		CouponCode:       req.CouponCode,
		PointsRedeemed:   req.PointsRedeemed,
		GiftWrap:         req.GiftWrap,
		GiftMessage:      req.GiftMessage,
		Notes:            req.Notes,
	}
}

type orderResponse struct {
	OrderID     string        `json:"orderId"`
	Status      string        `json:"status"`
	TotalAmount *model.Amount `json:"totalAmount,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
