package http

import (
	"net/http"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/models"
)

func (h *Handler) passwordsStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.services.VaultService.PasswordsStatus(r.Context()), http.StatusOK)
}

func (h *Handler) unlockPasswords(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer crypto.Wipe(req.Password)

	unlocked, err := h.services.VaultService.UnlockPasswords(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err, "passwords unlock failed")
		return
	}

	writeJSON(w, r, models.UnlockResponse{Unlocked: unlocked}, http.StatusOK)
}

func (h *Handler) lockPasswords(w http.ResponseWriter, r *http.Request) {
	h.services.VaultService.LockPasswords(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) touchPasswords(w http.ResponseWriter, r *http.Request) {
	if err := h.services.VaultService.TouchPasswords(r.Context()); err != nil {
		writeError(w, r, err, "passwords activity not recorded")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) encryptPassword(w http.ResponseWriter, r *http.Request) {
	var req models.EncryptPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	raw, err := h.services.VaultService.EncryptPassword(r.Context(), req.Metadata, req.Content)
	if err != nil {
		writeError(w, r, err, "password encryption failed")
		return
	}

	writeJSON(w, r, models.RawRecord{Raw: raw}, http.StatusOK)
}

func (h *Handler) decryptPassword(w http.ResponseWriter, r *http.Request) {
	var req models.RawRecord
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.services.VaultService.DecryptPassword(r.Context(), req.Raw)
	if err != nil {
		writeError(w, r, err, "password decryption failed")
		return
	}

	writeJSON(w, r, rec, http.StatusOK)
}

func (h *Handler) decryptPasswords(w http.ResponseWriter, r *http.Request) {
	var req models.DecryptPasswordsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.services.VaultService.DecryptPasswords(r.Context(), req.Records)
	if err != nil {
		writeError(w, r, err, "batch password decryption failed")
		return
	}

	writeJSON(w, r, resp, http.StatusOK)
}
