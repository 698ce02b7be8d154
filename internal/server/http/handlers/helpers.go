package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/server/http/dto"
	"github.com/polkiloo/storefront-checkout/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// draftID parses the :id path parameter. A malformed id is reported as 404
// since no draft can carry it.
func draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, domainErrors.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

var validationErrors = []error{
	domainErrors.ErrInvalidAmount,
	domainErrors.ErrInvalidPromoCode,
	domainErrors.ErrMinOrderNotMet,
	domainErrors.ErrGiftMessageTooLong,
	domainErrors.ErrNotesTooLong,
	domainErrors.ErrUnknownShippingMethod,
	domainErrors.ErrShippingRequired,
	domainErrors.ErrEmptyCart,
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrCheckoutInProgress), errors.Is(err, domainErrors.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrOrderRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Internal errors are not echoed.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatus(status)
		return
	}
	writeError(c, status, err)
}
