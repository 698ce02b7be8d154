package model

import "time"

// User is a storefront customer account. Checkout sessions and points accounts are keyed by its ID.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
