package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
	"github.com/brainbreak/brainbreak-api/internal/usecase"
)

func waitingRoom() *model.Room {
	return &model.Room{
		RoomID:       "room_abcd1234",
		Host:         "host@example.com",
		HostUsername: "host",
		Status:       model.RoomStatusWaiting,
		Version:      1,
	}
}

func TestRoomHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "host@example.com")

	env.roomUC.On("Create", mock.Anything, "host@example.com").Return(waitingRoom(), nil)

	var body RoomResponse
	resp := env.request(t, http.MethodPost, "/api/multiplayer/create", token, nil, &body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "room_abcd1234", body.Room.RoomID)
	assert.Equal(t, model.RoomStatusWaiting, body.Room.Status)
}

func TestRoomHandler_Create_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/multiplayer/create", "", nil, nil)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	env.roomUC.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoomHandler_Create_RejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/multiplayer/create", "not-a-token", nil, nil)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoomHandler_Join(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "guest@example.com")
	room := waitingRoom()
	guest := "guest@example.com"
	room.Guest = &guest
	room.Status = model.RoomStatusPlaying
	room.CurrentTurn = model.TurnHost

	env.roomUC.On("JoinAvailable", mock.Anything, guest).Return(room, nil)

	var body RoomResponse
	resp := env.request(t, http.MethodPost, "/api/multiplayer/join", token, nil, &body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.RoomStatusPlaying, body.Room.Status)
	assert.Equal(t, model.TurnHost, body.Room.CurrentTurn)
}

func TestRoomHandler_Join_NoRooms(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "guest@example.com")

	env.roomUC.On("JoinAvailable", mock.Anything, "guest@example.com").
		Return(nil, usecase.ErrNoRoomAvailable)

	resp := env.request(t, http.MethodPost, "/api/multiplayer/join", token, nil, nil)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoomHandler_Get(t *testing.T) {
	env := newTestEnv(t)

	env.roomUC.On("Get", mock.Anything, "room_abcd1234").Return(waitingRoom(), nil)

	var body RoomResponse
	resp := env.request(t, http.MethodGet, "/api/multiplayer/room_abcd1234", "", nil, &body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "host", body.Room.HostUsername)
}

func TestRoomHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	env.roomUC.On("Get", mock.Anything, "room_missing1").Return(nil, usecase.ErrRoomNotFound)

	resp := env.request(t, http.MethodGet, "/api/multiplayer/room_missing1", "", nil, nil)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// A partial update forwards exactly the provided fields; absent ones stay
// nil so the storage layer leaves them untouched.
func TestRoomHandler_Update_MergesNotReplaces(t *testing.T) {
	env := newTestEnv(t)
	score := 20

	env.roomUC.On("Update", mock.Anything, "room_abcd1234",
		mock.MatchedBy(func(params repository.UpdateRoomParams) bool {
			return params.HostScore != nil && *params.HostScore == 20 &&
				params.GuestScore == nil &&
				params.GameMode == nil &&
				params.CurrentTurn == nil &&
				params.Status == nil &&
				params.Version == nil
		})).Return(waitingRoom(), nil)

	resp := env.request(t, http.MethodPut, "/api/multiplayer/room_abcd1234", "",
		UpdateRoomRequest{HostScore: &score}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.roomUC.AssertExpectations(t)
}

func TestRoomHandler_Update_VersionConflict(t *testing.T) {
	env := newTestEnv(t)
	version := int64(3)

	env.roomUC.On("Update", mock.Anything, "room_abcd1234", mock.Anything).
		Return(nil, usecase.ErrVersionConflict)

	resp := env.request(t, http.MethodPut, "/api/multiplayer/room_abcd1234", "",
		UpdateRoomRequest{Version: &version}, nil)

	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRoomHandler_Update_RejectsBadTurnValue(t *testing.T) {
	env := newTestEnv(t)
	turn := "referee"

	resp := env.request(t, http.MethodPut, "/api/multiplayer/room_abcd1234", "",
		UpdateRoomRequest{CurrentTurn: &turn}, nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env.roomUC.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomHandler_Move(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "host@example.com")
	room := waitingRoom()
	room.Status = model.RoomStatusPlaying
	room.HostScore = 10
	room.Version = 4

	env.roomUC.On("SubmitMove", mock.Anything, "room_abcd1234", "host@example.com", true, int64(3)).
		Return(room, nil)

	var body RoomResponse
	resp := env.request(t, http.MethodPost, "/api/multiplayer/room_abcd1234/move", token,
		MoveRequest{Matched: true, Version: 3}, &body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, body.Room.HostScore)
	assert.Equal(t, int64(4), body.Room.Version)
}

func TestRoomHandler_Move_StaleVersion(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "host@example.com")

	env.roomUC.On("SubmitMove", mock.Anything, "room_abcd1234", "host@example.com", false, int64(2)).
		Return(nil, usecase.ErrVersionConflict)

	resp := env.request(t, http.MethodPost, "/api/multiplayer/room_abcd1234/move", token,
		MoveRequest{Matched: false, Version: 2}, nil)

	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRoomHandler_Move_OutOfTurn(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "guest@example.com")

	env.roomUC.On("SubmitMove", mock.Anything, "room_abcd1234", "guest@example.com", true, int64(3)).
		Return(nil, usecase.ErrNotYourTurn)

	resp := env.request(t, http.MethodPost, "/api/multiplayer/room_abcd1234/move", token,
		MoveRequest{Matched: true, Version: 3}, nil)

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRoomHandler_Finish(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "host@example.com")
	room := waitingRoom()
	room.Status = model.RoomStatusFinished
	room.Winner = "host"

	env.roomUC.On("Finish", mock.Anything, "room_abcd1234", "host@example.com").Return(room, nil)

	var body RoomResponse
	resp := env.request(t, http.MethodPost, "/api/multiplayer/room_abcd1234/finish", token, nil, &body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "host", body.Room.Winner)
}

func TestRoomHandler_Finish_NotParticipant(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "stranger@example.com")

	env.roomUC.On("Finish", mock.Anything, "room_abcd1234", "stranger@example.com").
		Return(nil, usecase.ErrNotParticipant)

	resp := env.request(t, http.MethodPost, "/api/multiplayer/room_abcd1234/finish", token, nil, nil)

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
