package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brainbreak/brainbreak-api/internal/auth"
	"github.com/brainbreak/brainbreak-api/internal/config"
	"github.com/brainbreak/brainbreak-api/internal/handler"
	"github.com/brainbreak/brainbreak-api/internal/mailer"
	"github.com/brainbreak/brainbreak-api/internal/repository"
	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

const leaderboardCacheTTL = 30 * time.Second

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.New(&logger)
	if !cfg.Production() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	accountRepo := repository.NewAccountMongoRepository(ctx, &logger, db)
	roomRepo := repository.NewRoomMongoRepository(ctx, &logger, db)

	var leaderboardCache *repository.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		leaderboardCache, err = repository.NewLeaderboardCache(ctx, redisClient, leaderboardCacheTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() {
			if err := leaderboardCache.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close redis client")
			}
		}()
	} else {
		logger.Info().Msg("REDIS_ADDR not set, leaderboard cache disabled")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenExpiresIn)
	m := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(accountRepo, jwtAuth, m, &logger)
	statsUsecase := usecase.NewStatsUsecase(accountRepo, leaderboardCache, &logger)
	roomUsecase := usecase.NewRoomUsecase(roomRepo, accountRepo, statsUsecase, &logger)

	router := handler.NewRouter(cfg, &logger, jwtAuth, authUsecase, roomUsecase, statsUsecase)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
