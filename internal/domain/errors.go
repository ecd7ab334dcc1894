package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInactive             = errors.New("affiliate inactive or program disabled")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidState         = errors.New("invalid state transition")
	ErrInsufficientReversal = errors.New("insufficient balance to reverse commission")
	ErrConcurrencyConflict  = errors.New("concurrent update conflict")
	ErrConfiguration        = errors.New("invalid affiliate settings")
	ErrTokenExpired         = errors.New("attribution token expired")
)
