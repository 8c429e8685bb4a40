package config

import "errors"

// Validation errors returned when a merged configuration is incomplete or
// invalid.
var (
	// ErrInvalidVaultConfigs indicates a missing workspace, a
	// non-positive timeout, a passwords timeout not shorter than the idle
	// timeout, or unusable KDF parameters.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidStorageConfigs indicates an empty or in-memory journal DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a non-loopback listen address or
	// an unusable rate limit.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero auto-lock interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
