package model

import "github.com/shopspring/decimal"

// ShippingMethod is an option offered by the shipping service.
type ShippingMethod struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	BaseCost         decimal.Decimal `json:"baseCost"`
	EstimatedDaysMin int             `json:"estimatedDaysMin"`
	EstimatedDaysMax int             `json:"estimatedDaysMax"`
}

// FindShippingMethod looks a method up by id.
func FindShippingMethod(methods []ShippingMethod, id string) (ShippingMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return ShippingMethod{}, false
}
