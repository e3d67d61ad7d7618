package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
)

type AccountRepositoryMock struct {
	mock.Mock
}

func (m *AccountRepositoryMock) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) MarkVerified(ctx context.Context, email string, now time.Time) (*model.Account, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) SetVerificationCode(ctx context.Context, email, code string, expiry time.Time) (*model.Account, error) {
	args := m.Called(ctx, email, code, expiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) RecordLogin(ctx context.Context, email string, now time.Time) error {
	args := m.Called(ctx, email, now)
	return args.Error(0)
}

func (m *AccountRepositoryMock) ApplyStats(ctx context.Context, email string, highScore int, outcome *bool) (*model.Account, error) {
	args := m.Called(ctx, email, highScore, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AccountRepositoryMock) TopByHighScore(ctx context.Context, limit int64) ([]*model.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

type RoomRepositoryMock struct {
	mock.Mock
}

func (m *RoomRepositoryMock) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomRepositoryMock) Get(ctx context.Context, roomID string) (*model.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomRepositoryMock) ClaimAvailable(ctx context.Context, guestEmail, guestUsername string, now time.Time) (*model.Room, error) {
	args := m.Called(ctx, guestEmail, guestUsername, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomRepositoryMock) Update(ctx context.Context, roomID string, params repository.UpdateRoomParams) (*model.Room, error) {
	args := m.Called(ctx, roomID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomRepositoryMock) ApplyMove(ctx context.Context, roomID string, role model.TurnRole, matched bool, version int64) (*model.Room, error) {
	args := m.Called(ctx, roomID, role, matched, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomRepositoryMock) Finish(ctx context.Context, roomID, winner string, now time.Time, version int64) (*model.Room, error) {
	args := m.Called(ctx, roomID, winner, now, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

type StatsUsecaseMock struct {
	mock.Mock
}

func (m *StatsUsecaseMock) UpdateStats(ctx context.Context, email string, highScore int, outcome *bool) (*model.Account, error) {
	args := m.Called(ctx, email, highScore, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *StatsUsecaseMock) Leaderboard(ctx context.Context) ([]*model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}
