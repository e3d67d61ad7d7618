package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

// StatsHandler serves the stats update and leaderboard endpoints.
type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
	validator    *payloadValidator
	logger       *zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler instance.
func NewStatsHandler(statsUsecase usecase.StatsUsecase, validator *payloadValidator, logger *zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
		validator:    validator,
		logger:       logger,
	}
}

func (h *StatsHandler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateStatsRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.statsUsecase.UpdateStats(r.Context(), claims.Email, req.HighScore, req.Won)
	if err != nil {
		h.logUnexpected(err, "stats update failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{User: account})
}

func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.statsUsecase.Leaderboard(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard fetch failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if accounts == nil {
		accounts = []*model.Account{}
	}

	respondJSON(w, http.StatusOK, LeaderboardResponse{Users: accounts})
}

func (h *StatsHandler) logUnexpected(err error, msg string) {
	if _, known := statusForError(err); !known {
		h.logger.Error().Err(err).Msg(msg)
	}
}
