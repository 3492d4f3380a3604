package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/maren/taskhive/internal/apperr"
	"github.com/maren/taskhive/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error kinds to status codes in one place.
// Untagged errors are logged with full detail and reported generically.
func writeError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case apperr.KindUnauthorized:
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case apperr.KindForbidden:
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case apperr.KindNotFound:
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "An unexpected error occurred."})
	}
}
