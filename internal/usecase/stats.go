package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
)

// StatsUsecase defines stats recording and the leaderboard read.
type StatsUsecase interface {
	// UpdateStats counts the game and raises the account's high score when
	// highScore beats the stored value. A non-nil outcome also counts a win
	// or a loss.
	UpdateStats(ctx context.Context, email string, highScore int, outcome *bool) (*model.Account, error)

	// Leaderboard returns the top verified accounts by high score.
	Leaderboard(ctx context.Context) ([]*model.Account, error)
}

// LeaderboardLimit is the number of entries the leaderboard returns.
const LeaderboardLimit = 10

type statsUsecase struct {
	accounts repository.AccountRepository
	cache    *repository.LeaderboardCache
	logger   *zerolog.Logger
}

// NewStatsUsecase creates a new StatsUsecase instance. The cache may be nil,
// in which case every leaderboard read hits Mongo.
func NewStatsUsecase(
	accounts repository.AccountRepository,
	cache *repository.LeaderboardCache,
	logger *zerolog.Logger,
) StatsUsecase {
	return &statsUsecase{
		accounts: accounts,
		cache:    cache,
		logger:   logger,
	}
}

func (u *statsUsecase) UpdateStats(
	ctx context.Context,
	email string,
	highScore int,
	outcome *bool,
) (*model.Account, error) {
	account, err := u.accounts.ApplyStats(ctx, email, highScore, outcome)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Invalidate(ctx); err != nil {
			u.logger.Warn().Err(err).Msg("failed to invalidate leaderboard cache")
		}
	}

	return account, nil
}

func (u *statsUsecase) Leaderboard(ctx context.Context) ([]*model.Account, error) {
	if u.cache != nil {
		cached, err := u.cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			u.logger.Warn().Err(err).Msg("leaderboard cache read failed")
		}
	}

	accounts, err := u.accounts.TopByHighScore(ctx, LeaderboardLimit)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, accounts); err != nil {
			u.logger.Warn().Err(err).Msg("failed to populate leaderboard cache")
		}
	}

	return accounts, nil
}
