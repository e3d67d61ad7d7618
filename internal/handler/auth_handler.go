package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

// AuthHandler serves the signup, signin and verification endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *payloadValidator
	logger      *zerolog.Logger

	// exposeCodes controls whether verification codes appear in response
	// bodies (the non-production shortcut for setups without SMTP).
	exposeCodes bool
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *payloadValidator,
	logger *zerolog.Logger,
	exposeCodes bool,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
		exposeCodes: exposeCodes,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.authUsecase.Signup(r.Context(), usecase.SignupParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logUnexpected(err, "signup failed")
		respondDomainError(w, err)
		return
	}

	resp := SignupResponse{
		Success: true,
		Message: "Account created successfully.",
	}
	if h.exposeCodes {
		resp.VerificationCode = account.VerificationCode
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.authUsecase.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrNotVerified) {
			respondJSON(w, http.StatusForbidden, ErrorResponse{
				Error:             err.Error(),
				NeedsVerification: true,
			})
			return
		}

		h.logUnexpected(err, "signin failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{
		Success: true,
		Token:   session.Token,
		User:    session.Account,
	})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.authUsecase.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		h.logUnexpected(err, "verification failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{
		Success: true,
		Token:   session.Token,
		User:    session.Account,
	})
}

func (h *AuthHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req ResendRequest
	if err := h.validator.decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.authUsecase.ResendCode(r.Context(), req.Email)
	if err != nil {
		h.logUnexpected(err, "resend failed")
		respondDomainError(w, err)
		return
	}

	resp := ResendResponse{Success: true}
	if h.exposeCodes {
		resp.VerificationCode = account.VerificationCode
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) logUnexpected(err error, msg string) {
	if _, known := statusForError(err); !known {
		h.logger.Error().Err(err).Msg(msg)
	}
}
