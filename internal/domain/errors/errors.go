package errors

import (
	"errors"
	"fmt"
)

// Validation errors surface to the user and never change checkout state.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidPromoCode      = errors.New("promo code is invalid or expired")
	ErrMinOrderNotMet        = errors.New("order subtotal is below the promo code minimum")
	ErrGiftMessageTooLong    = errors.New("gift message is too long")
	ErrNotesTooLong          = errors.New("order notes are too long")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrShippingRequired      = errors.New("a shipping method must be selected")
	ErrEmptyCart             = errors.New("cart is empty")
)

// State errors describe the lifecycle of stored entities and checkout sessions.
var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrCheckoutInProgress = errors.New("checkout submission already in progress")
	ErrSessionClosed      = errors.New("checkout session is closed")
)

// Service errors come from upstream collaborators.
var (
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrOrderRejected       = errors.New("order rejected")
)

// OrderRejectedError carries the user-displayable reason returned by the order service.
type OrderRejectedError struct {
	Message string
}

func (e *OrderRejectedError) Error() string {
	if e.Message == "" {
		return ErrOrderRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrOrderRejected.Error(), e.Message)
}

// Unwrap lets errors.Is match ErrOrderRejected.
func (e *OrderRejectedError) Unwrap() error {
	return ErrOrderRejected
}
