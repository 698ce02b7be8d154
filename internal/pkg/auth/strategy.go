package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies bearer tokens that identify a shopper.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuing.
type Options struct {
	TTL    time.Duration
	Issuer string
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

const (
	defaultTokenTTL = 24 * time.Hour
	defaultIssuer   = "storefront-checkout"
)
