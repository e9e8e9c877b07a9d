// internal/errors/errors.go
package errors

// Kind enumerates the validation failures a public operation can report.
// Every failure aborts its whole operation; there is no partial success.
type Kind string

const (
	KindProfileAlreadyExists   Kind = "ProfileAlreadyExists"
	KindProfileNotFound        Kind = "ProfileNotFound"
	KindInvalidField           Kind = "InvalidField"
	KindSelfRequest            Kind = "SelfRequest"
	KindSelfGift               Kind = "SelfGift"
	KindRequestAlreadyExists   Kind = "RequestAlreadyExists"
	KindRequestNotFound        Kind = "RequestNotFound"
	KindUnauthorized           Kind = "Unauthorized"
	KindRequestAlreadyResolved Kind = "RequestAlreadyResolved"
	KindNotConnected           Kind = "NotConnected"
	KindDateNotFound           Kind = "DateNotFound"
	KindNotParticipant         Kind = "NotParticipant"
	KindInvalidRating          Kind = "InvalidRating"
	KindDuplicateReview        Kind = "DuplicateReview"
	KindGiftNotFound           Kind = "GiftNotFound"
)

// DomainError is a validation failure with a machine-readable kind.
type DomainError struct {
	Kind Kind
	Msg  string
}

func (e *DomainError) Error() string { return e.Msg }

// Is matches any DomainError with the same kind, so callers can use
// errors.Is against the package sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

func newErr(k Kind, msg string) *DomainError { return &DomainError{Kind: k, Msg: msg} }

var (
	ErrProfileAlreadyExists   = newErr(KindProfileAlreadyExists, "profile already exists for caller")
	ErrProfileNotFound        = newErr(KindProfileNotFound, "profile not found")
	ErrInvalidField           = newErr(KindInvalidField, "field exceeds allowed bounds")
	ErrSelfRequest            = newErr(KindSelfRequest, "cannot send a connection request to yourself")
	ErrSelfGift               = newErr(KindSelfGift, "cannot send a gift to yourself")
	ErrRequestAlreadyExists   = newErr(KindRequestAlreadyExists, "connection request already exists for this pair")
	ErrRequestNotFound        = newErr(KindRequestNotFound, "connection request not found")
	ErrUnauthorized           = newErr(KindUnauthorized, "caller is not allowed to perform this action")
	ErrRequestAlreadyResolved = newErr(KindRequestAlreadyResolved, "connection request already resolved")
	ErrNotConnected           = newErr(KindNotConnected, "no accepted connection between the two parties")
	ErrDateNotFound           = newErr(KindDateNotFound, "date not found")
	ErrNotParticipant         = newErr(KindNotParticipant, "caller and reviewee must be the date participants")
	ErrInvalidRating          = newErr(KindInvalidRating, "rating must be between 1 and 5")
	ErrDuplicateReview        = newErr(KindDuplicateReview, "caller already reviewed this date")
	ErrGiftNotFound           = newErr(KindGiftNotFound, "gift not found")
)

// InvalidField builds an InvalidField error naming the offending field.
func InvalidField(msg string) *DomainError { return newErr(KindInvalidField, msg) }
