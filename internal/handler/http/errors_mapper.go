package http

import (
	"errors"
	"net/http"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/rotation"
	"github.com/claudia-app/claudia-vault/internal/service"
	"github.com/claudia-app/claudia-vault/internal/vault"
)

// StatusLocked is sent while the vault or the passwords sub-session is
// locked. Clients prompt for the master password on it.
const StatusLocked = http.StatusLocked

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is checked in order. Rotation failures come first because
// they wrap the error that caused them.
var errorStatuses = []errorStatus{
	{rotation.ErrRotationIncomplete, http.StatusInternalServerError},
	{rotation.ErrRotationCancelled, http.StatusServiceUnavailable},
	{rotation.ErrRotationInProgress, http.StatusConflict},
	{rotation.ErrNoPendingRotation, http.StatusNotFound},

	{vault.ErrVaultLocked, StatusLocked},
	{vault.ErrPasswordsLocked, StatusLocked},
	{vault.ErrIncorrectPassword, http.StatusUnauthorized},
	{vault.ErrEmptyPassword, http.StatusBadRequest},
	{vault.ErrAlreadySetUp, http.StatusConflict},
	{vault.ErrNotSetUp, http.StatusConflict},

	{crypto.ErrDecryptionFailed, http.StatusUnprocessableEntity},
	{record.ErrMalformedRecord, http.StatusUnprocessableEntity},
	{record.ErrNotLegacyRecord, http.StatusBadRequest},
	{record.ErrInvalidMetadata, http.StatusBadRequest},
	{service.ErrNotPasswordRecord, http.StatusBadRequest},

	{vault.ErrIOFailure, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}
