package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"invalid amount", ErrInvalidAmount},
		{"invalid promo", ErrInvalidPromoCode},
		{"min order", ErrMinOrderNotMet},
		{"gift message", ErrGiftMessageTooLong},
		{"notes", ErrNotesTooLong},
		{"shipping", ErrUnknownShippingMethod},
		{"shipping required", ErrShippingRequired},
		{"empty cart", ErrEmptyCart},
		{"in progress", ErrCheckoutInProgress},
		{"closed", ErrSessionClosed},
		{"upstream", ErrUpstreamUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestOrderRejectedError(t *testing.T) {
	err := error(&OrderRejectedError{Message: "card declined"})
	if !stdErrors.Is(err, ErrOrderRejected) {
		t.Fatal("expected rejection to match ErrOrderRejected")
	}
	if err.Error() != "order rejected: card declined" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	var rejected *OrderRejectedError
	if !stdErrors.As(fmt.Errorf("submit: %w", err), &rejected) || rejected.Message != "card declined" {
		t.Fatalf("expected errors.As to extract message, got %+v", rejected)
	}

	if (&OrderRejectedError{}).Error() != "order rejected" {
		t.Fatal("expected bare message without upstream reason")
	}
}
