package model

import "github.com/shopspring/decimal"

// PointsAccount holds reward points owned by a user. Checkout only reads it.
type PointsAccount struct {
	UserID          int64
	AvailablePoints int64
}

// PointsSummary is the UI hint built from a points account.
type PointsSummary struct {
	Available     int64
	Value         decimal.Decimal
	MaxRedeemable int64
}
