package dto

import "github.com/polkiloo/storefront-checkout/internal/domain/model"

// PointsResponse is the reward points hint shown next to the order total.
type PointsResponse struct {
	Available     int64        `json:"available"`
	Value         model.Amount `json:"value"`
	MaxRedeemable int64        `json:"maxRedeemable"`
}

// NewPointsResponse converts a points summary.
func NewPointsResponse(s model.PointsSummary) PointsResponse {
	return PointsResponse{
		Available:     s.Available,
		Value:         model.NewAmount(s.Value),
		MaxRedeemable: s.MaxRedeemable,
	}
}
