package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondDomainError maps a usecase error onto the HTTP surface. Unknown
// errors become an opaque 500; domain errors are surfaced verbatim.
func respondDomainError(w http.ResponseWriter, err error) {
	status, known := statusForError(err)
	if !known {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondError(w, status, err.Error())
}

func statusForError(err error) (int, bool) {
	switch {
	case errors.Is(err, usecase.ErrAccountExists),
		errors.Is(err, usecase.ErrAlreadyVerified),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrCodeExpired):
		return http.StatusBadRequest, true
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, usecase.ErrNotVerified),
		errors.Is(err, usecase.ErrNotParticipant),
		errors.Is(err, usecase.ErrNotYourTurn):
		return http.StatusForbidden, true
	case errors.Is(err, usecase.ErrAccountNotFound),
		errors.Is(err, usecase.ErrRoomNotFound),
		errors.Is(err, usecase.ErrNoRoomAvailable):
		return http.StatusNotFound, true
	case errors.Is(err, usecase.ErrVersionConflict),
		errors.Is(err, usecase.ErrRoomNotPlaying):
		return http.StatusConflict, true
	default:
		return 0, false
	}
}
