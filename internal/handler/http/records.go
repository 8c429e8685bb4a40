package http

import (
	"net/http"

	"github.com/claudia-app/claudia-vault/models"
)

func (h *Handler) encryptRecord(w http.ResponseWriter, r *http.Request) {
	var req models.EncryptRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	raw, err := h.services.VaultService.EncryptRecord(r.Context(), req.Metadata, req.Body)
	if err != nil {
		writeError(w, r, err, "record encryption failed")
		return
	}

	writeJSON(w, r, models.RawRecord{Raw: raw}, http.StatusOK)
}

func (h *Handler) decryptRecord(w http.ResponseWriter, r *http.Request) {
	var req models.RawRecord
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.services.VaultService.DecryptRecord(r.Context(), req.Raw)
	if err != nil {
		writeError(w, r, err, "record decryption failed")
		return
	}

	writeJSON(w, r, rec, http.StatusOK)
}

func (h *Handler) detectRecord(w http.ResponseWriter, r *http.Request) {
	var req models.RawRecord
	if !decodeJSON(w, r, &req) {
		return
	}

	encrypted := h.services.VaultService.IsEncryptedFormat(req.Raw)
	writeJSON(w, r, models.DetectResponse{Encrypted: encrypted}, http.StatusOK)
}

func (h *Handler) migrateRecord(w http.ResponseWriter, r *http.Request) {
	var req models.RawRecord
	if !decodeJSON(w, r, &req) {
		return
	}

	raw, err := h.services.VaultService.MigrateLegacy(r.Context(), req.Raw)
	if err != nil {
		writeError(w, r, err, "record migration failed")
		return
	}

	writeJSON(w, r, models.RawRecord{Raw: raw}, http.StatusOK)
}
