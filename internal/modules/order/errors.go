package order

import "errors"

var (
	ErrValidation              = errors.New("validation_error")
	ErrNotFound                = errors.New("not_found")
	ErrForbidden               = errors.New("forbidden")
	ErrBusinessNotAvailable    = errors.New("business_not_available")
	ErrProductUnavailable      = errors.New("product_unavailable")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrStatusConflict          = errors.New("status_conflict")
)
