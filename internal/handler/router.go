package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/brainbreak/brainbreak-api/internal/auth"
	"github.com/brainbreak/brainbreak-api/internal/config"
	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

// NewRouter wires the HTTP surface: public auth and read endpoints, plus
// bearer-protected room and stats mutations.
func NewRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	jwtAuth auth.JWTAuthenticator,
	authUC usecase.AuthUsecase,
	roomUC usecase.RoomUsecase,
	statsUC usecase.StatsUsecase,
) http.Handler {
	validator := newPayloadValidator()

	authHandler := NewAuthHandler(authUC, validator, logger, !cfg.Production())
	roomHandler := NewRoomHandler(roomUC, validator, logger)
	statsHandler := NewStatsHandler(statsUC, validator, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/signin", authHandler.Signin)
			r.Post("/verify", authHandler.Verify)
			r.Post("/resend", authHandler.Resend)
		})

		r.Get("/leaderboard", statsHandler.Leaderboard)

		r.Route("/multiplayer", func(r chi.Router) {
			r.Get("/{roomId}", roomHandler.Get)
			r.Put("/{roomId}", roomHandler.Update)

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(jwtAuth))
				r.Post("/create", roomHandler.Create)
				r.Post("/join", roomHandler.Join)
				r.Post("/{roomId}/move", roomHandler.Move)
				r.Post("/{roomId}/finish", roomHandler.Finish)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(jwtAuth))
			r.Put("/user/stats", statsHandler.UpdateStats)
		})
	})

	return r
}
