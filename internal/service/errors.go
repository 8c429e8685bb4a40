package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNotPasswordRecord     = errors.New("not a password record")
	ErrMissingDependency     = errors.New("missing service dependency")
)
