package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("incorrect master password")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrLocked              = errors.New("vault is locked")
	ErrUnprocessable       = errors.New("record cannot be decrypted")
	ErrTooManyRequests     = errors.New("too many attempts")
	ErrInternalServerError = errors.New("daemon internal error")
	ErrUnavailable         = errors.New("daemon unavailable")
)
