package servererrors

import "errors"

// ServerError carries the HTTP status code a failure should surface as,
// together with an optional payload of field errors.
type ServerError struct {
	StatusCode int
	Message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}

// Sentinel errors services return for handlers to translate into a
// [ServerError] with the right status code.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrUnauthorized          = errors.New("unauthorized")
	ErrNoAuthorizationHeader = errors.New("missing or malformed authorization header")
	ErrInvalidCredentials    = errors.New("incorrect email or password")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenRevoked          = errors.New("token revoked")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidResetCode   = errors.New("invalid reset code")

	ErrProductNotFound        = errors.New("product not found")
	ErrCategoryAlreadyExists  = errors.New("category already exists")
	ErrPromoCodeAlreadyExists = errors.New("promo code already exists")

	ErrOrderNotFound           = errors.New("order not found")
	ErrInsufficientStock       = errors.New("invalid product or not enough stock")
	ErrSlotUnavailable         = errors.New("order or slot not found")
	ErrInvalidStatusTransition = errors.New("illegal order status transition")
)
