// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Map converts a service error into an HTTP status plus a machine-readable
// code. Keeps handlers clean by centralizing error mapping.
func Map(err error) (int, string) {
	var de *DomainError
	if errors.As(err, &de) {
		return statusFor(de.Kind), string(de.Kind)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "NotFound"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "DeadlineExceeded"

	case errors.Is(err, context.Canceled):
		return 499, "Canceled"

	default:
		return http.StatusInternalServerError, "Internal"
	}
}

func statusFor(k Kind) int {
	switch k {
	case KindProfileAlreadyExists, KindRequestAlreadyExists,
		KindRequestAlreadyResolved, KindDuplicateReview:
		return http.StatusConflict

	case KindProfileNotFound, KindRequestNotFound,
		KindDateNotFound, KindGiftNotFound:
		return http.StatusNotFound

	case KindUnauthorized, KindNotParticipant:
		return http.StatusForbidden

	default:
		// InvalidField, InvalidRating, SelfRequest, SelfGift, NotConnected
		return http.StatusBadRequest
	}
}
