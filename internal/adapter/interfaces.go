// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the vaultctl side of the daemon's loopback API.
//
// [VaultAdapter] hides the transport from the CLI commands; the package
// ships an HTTP/REST implementation built on resty ([NewHTTPVaultAdapter]).
// Error values in errors.go are mapped from HTTP status codes by
// mapHTTPError, so callers can use [errors.Is] (e.g. [ErrLocked] for 423,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/claudia-app/claudia-vault/models"
)

// VaultAdapter talks to a running vault daemon. Password arguments are not
// retained or wiped by the adapter.
type VaultAdapter interface {
	Version(ctx context.Context) (string, error)
	Status(ctx context.Context) (models.VaultStatus, error)
	Setup(ctx context.Context, password []byte) error
	// Unlock reports false for a wrong password.
	Unlock(ctx context.Context, password []byte) (bool, error)
	Lock(ctx context.Context) error

	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)
	ResumeRotation(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error)
	RotationProgress(ctx context.Context) (models.RotationProgress, error)

	DecryptRecord(ctx context.Context, raw string) (models.Record, error)
	MigrateRecord(ctx context.Context, raw string) (string, error)
}
