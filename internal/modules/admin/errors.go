package admin

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrReasonRequired = errors.New("reason is required")
	ErrAlreadyDecided = errors.New("business already moderated")
)
