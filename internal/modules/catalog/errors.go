package catalog

import "errors"

var (
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrBusinessAlreadyOwned = errors.New("owner already has a business")
)
