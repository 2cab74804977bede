package usecases

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidLogin = errors.New("invalid credentials")
	ErrRevoked      = errors.New("credential has been revoked")
)
