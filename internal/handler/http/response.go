package http

import (
	"encoding/json"
	"net/http"

	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/utils"
	"github.com/claudia-app/claudia-vault/models"
)

const maxRequestBodySize = 8 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		writeErrorMessage(w, "Invalid JSON was passed", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError logs err and answers with the mapped status. Internal errors
// are reported with their status text only.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		writeErrorMessage(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg(msg)
	writeErrorMessage(w, err.Error(), status)
}

func writeErrorMessage(w http.ResponseWriter, msg string, status int) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: msg}, status)
}

// writeJSON answers with data and logs a response that could not be
// encoded or written.
func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response")
	}
}
