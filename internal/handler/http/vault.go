package http

import (
	"net/http"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/models"
)

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.VaultService.Status(r.Context())
	if err != nil {
		writeError(w, r, err, "error reading vault status")
		return
	}

	writeJSON(w, r, status, http.StatusOK)
}

func (h *Handler) setup(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer crypto.Wipe(req.Password)

	if err := h.services.VaultService.Setup(r.Context(), req.Password); err != nil {
		writeError(w, r, err, "vault setup failed")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer crypto.Wipe(req.Password)

	unlocked, err := h.services.VaultService.Unlock(r.Context(), req.Password)
	if err != nil {
		writeError(w, r, err, "vault unlock failed")
		return
	}

	writeJSON(w, r, models.UnlockResponse{Unlocked: unlocked}, http.StatusOK)
}

func (h *Handler) lock(w http.ResponseWriter, r *http.Request) {
	h.services.VaultService.Lock(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) touchActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.services.VaultService.TouchActivity(r.Context()); err != nil {
		writeError(w, r, err, "activity not recorded")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer crypto.Wipe(req.OldPassword)
	defer crypto.Wipe(req.NewPassword)

	result, err := h.services.VaultService.ChangePassword(r.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		writeError(w, r, err, "master password change failed")
		return
	}

	writeJSON(w, r, result, http.StatusOK)
}

func (h *Handler) resumeRotation(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	defer crypto.Wipe(req.OldPassword)
	defer crypto.Wipe(req.NewPassword)

	result, err := h.services.VaultService.ResumeRotation(r.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		writeError(w, r, err, "rotation resume failed")
		return
	}

	writeJSON(w, r, result, http.StatusOK)
}

func (h *Handler) rotationProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.services.VaultService.RotationProgress(r.Context()), http.StatusOK)
}
