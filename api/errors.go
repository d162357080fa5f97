package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"facevault/backup"
	"facevault/credential"
	"facevault/faceid"
	"facevault/recognize"
	"facevault/storage"
	"facevault/vault"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, credential.ErrTooShort),
		errors.Is(err, credential.ErrMismatch),
		errors.Is(err, vault.ErrEmptyField),
		errors.Is(err, backup.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, credential.ErrIncorrectPassword),
		errors.Is(err, faceid.ErrVerificationFailed):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, credential.ErrNotSet),
		errors.Is(err, faceid.ErrNotEnrolled):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, recognize.ErrNoFaceDetected):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, vault.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
