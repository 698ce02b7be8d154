package model

import "github.com/shopspring/decimal"

// LineItem is a single cart position.
type LineItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Total returns unit price multiplied by quantity.
func (i LineItem) Total() decimal.Decimal {
	if i.Quantity <= 0 {
		return decimal.Zero
	}
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is the cart as reported by the cart service at checkout start.
type CartSnapshot struct {
	Items    []LineItem
	Subtotal decimal.Decimal
}

// SubtotalOf sums line totals and rounds to money precision.
func SubtotalOf(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Total())
	}
	return RoundMoney(sum)
}
