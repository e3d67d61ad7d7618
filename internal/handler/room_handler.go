package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

// RoomHandler serves the multiplayer room endpoints.
type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
	validator   *payloadValidator
	logger      *zerolog.Logger
}

// NewRoomHandler creates a new RoomHandler instance.
func NewRoomHandler(roomUsecase usecase.RoomUsecase, validator *payloadValidator, logger *zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		roomUsecase: roomUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	room, err := h.roomUsecase.Create(r.Context(), claims.Email)
	if err != nil {
		h.logUnexpected(err, "room creation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: room})
}

func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	room, err := h.roomUsecase.JoinAvailable(r.Context(), claims.Email)
	if err != nil {
		h.logUnexpected(err, "room join failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: room})
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomUsecase.Get(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		h.logUnexpected(err, "room fetch failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: room})
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoomRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := repository.UpdateRoomParams{
		HostScore:  req.HostScore,
		GuestScore: req.GuestScore,
		GameMode:   req.GameMode,
		Version:    req.Version,
	}
	if req.CurrentTurn != nil {
		turn := model.TurnRole(*req.CurrentTurn)
		params.CurrentTurn = &turn
	}
	if req.Status != nil {
		status := model.RoomStatus(*req.Status)
		params.Status = &status
	}

	room, err := h.roomUsecase.Update(r.Context(), chi.URLParam(r, "roomId"), params)
	if err != nil {
		h.logUnexpected(err, "room update failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: room})
}

func (h *RoomHandler) Move(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req MoveRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.roomUsecase.SubmitMove(r.Context(), chi.URLParam(r, "roomId"), claims.Email, req.Matched, req.Version)
	if err != nil {
		h.logUnexpected(err, "move failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: room})
}

func (h *RoomHandler) Finish(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	room, err := h.roomUsecase.Finish(r.Context(), chi.URLParam(r, "roomId"), claims.Email)
	if err != nil {
		h.logUnexpected(err, "finish failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RoomResponse{Room: room})
}

func (h *RoomHandler) logUnexpected(err error, msg string) {
	if _, known := statusForError(err); !known {
		h.logger.Error().Err(err).Msg(msg)
	}
}
