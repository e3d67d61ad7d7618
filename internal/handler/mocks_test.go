package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

type AuthUsecaseMock struct {
	mock.Mock
}

func (m *AuthUsecaseMock) Signup(ctx context.Context, params usecase.SignupParams) (*model.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *AuthUsecaseMock) Signin(ctx context.Context, email, password string) (*usecase.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Session), args.Error(1)
}

func (m *AuthUsecaseMock) Verify(ctx context.Context, email, code string) (*usecase.Session, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Session), args.Error(1)
}

func (m *AuthUsecaseMock) ResendCode(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

type RoomUsecaseMock struct {
	mock.Mock
}

func (m *RoomUsecaseMock) Create(ctx context.Context, hostEmail string) (*model.Room, error) {
	args := m.Called(ctx, hostEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomUsecaseMock) JoinAvailable(ctx context.Context, guestEmail string) (*model.Room, error) {
	args := m.Called(ctx, guestEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomUsecaseMock) Get(ctx context.Context, roomID string) (*model.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomUsecaseMock) Update(ctx context.Context, roomID string, params repository.UpdateRoomParams) (*model.Room, error) {
	args := m.Called(ctx, roomID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomUsecaseMock) SubmitMove(ctx context.Context, roomID, playerEmail string, matched bool, version int64) (*model.Room, error) {
	args := m.Called(ctx, roomID, playerEmail, matched, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *RoomUsecaseMock) Finish(ctx context.Context, roomID, playerEmail string) (*model.Room, error) {
	args := m.Called(ctx, roomID, playerEmail)
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
