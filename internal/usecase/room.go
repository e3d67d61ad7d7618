package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
)

// RoomUsecase defines the room lifecycle: creation, matchmaking, snapshot
// reads, partial updates, validated moves and the terminal transition.
type RoomUsecase interface {
	Create(ctx context.Context, hostEmail string) (*model.Room, error)
	JoinAvailable(ctx context.Context, guestEmail string) (*model.Room, error)
	Get(ctx context.Context, roomID string) (*model.Room, error)
	Update(ctx context.Context, roomID string, params repository.UpdateRoomParams) (*model.Room, error)
	SubmitMove(ctx context.Context, roomID, playerEmail string, matched bool, version int64) (*model.Room, error)
	Finish(ctx context.Context, roomID, playerEmail string) (*model.Room, error)
}

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrNoRoomAvailable = errors.New("no available rooms")
	ErrVersionConflict = errors.New("room was modified concurrently")
	ErrNotParticipant  = errors.New("not a participant of this room")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrRoomNotPlaying  = errors.New("room is not in play")
)

// finishRetries bounds the refetch-and-retry loop around the conditional
// terminal transition.
const finishRetries = 3

type roomUsecase struct {
	rooms    repository.RoomRepository
	accounts repository.AccountRepository
	stats    StatsUsecase
	logger   *zerolog.Logger
}

// NewRoomUsecase creates a new RoomUsecase instance.
func NewRoomUsecase(
	rooms repository.RoomRepository,
	accounts repository.AccountRepository,
	stats StatsUsecase,
	logger *zerolog.Logger,
) RoomUsecase {
	return &roomUsecase{
		rooms:    rooms,
		accounts: accounts,
		stats:    stats,
		logger:   logger,
	}
}

func (u *roomUsecase) Create(ctx context.Context, hostEmail string) (*model.Room, error) {
	host, err := u.requireAccount(ctx, hostEmail)
	if err != nil {
		return nil, err
	}

	room, err := u.rooms.Create(ctx, &model.Room{
		RoomID:       newRoomID(),
		Host:         host.Email,
		HostUsername: host.Username,
		Status:       model.RoomStatusWaiting,
		Version:      1,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info().Str("room_id", room.RoomID).Str("host", host.Email).Msg("room created")

	return room, nil
}

func (u *roomUsecase) JoinAvailable(ctx context.Context, guestEmail string) (*model.Room, error) {
	guest, err := u.requireAccount(ctx, guestEmail)
	if err != nil {
		return nil, err
	}

	room, err := u.rooms.ClaimAvailable(ctx, guest.Email, guest.Username, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRoomAvailable
		}

		return nil, err
	}

	u.logger.Info().Str("room_id", room.RoomID).Str("guest", guest.Email).Msg("room joined")

	return room, nil
}

func (u *roomUsecase) Get(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoomNotFound
		}

		return nil, err
	}

	return room, nil
}

func (u *roomUsecase) Update(
	ctx context.Context,
	roomID string,
	params repository.UpdateRoomParams,
) (*model.Room, error) {
	room, err := u.rooms.Update(ctx, roomID, params)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		// Either the room does not exist or a supplied version no longer
		// matches; one read disambiguates.
		if _, getErr := u.Get(ctx, roomID); getErr != nil {
			return nil, getErr
		}

		return nil, ErrVersionConflict
	}

	return room, nil
}

func (u *roomUsecase) SubmitMove(
	ctx context.Context,
	roomID, playerEmail string,
	matched bool,
	version int64,
) (*model.Room, error) {
	room, err := u.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	role := room.RoleOf(playerEmail)
	if role == "" {
		return nil, ErrNotParticipant
	}
	if room.Status != model.RoomStatusPlaying {
		return nil, ErrRoomNotPlaying
	}
	if room.CurrentTurn != role {
		return nil, ErrNotYourTurn
	}

	updated, err := u.rooms.ApplyMove(ctx, roomID, role, matched, version)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVersionConflict
		}

		return nil, err
	}

	return updated, nil
}

// Finish drives the room to its terminal state. Exactly one caller performs
// the transition; that call also records both participants' outcomes. A call
// that observes an already-finished room is a no-op returning the snapshot.
func (u *roomUsecase) Finish(ctx context.Context, roomID, playerEmail string) (*model.Room, error) {
	for attempt := 0; attempt < finishRetries; attempt++ {
		room, err := u.Get(ctx, roomID)
		if err != nil {
			return nil, err
		}

		if room.RoleOf(playerEmail) == "" {
			return nil, ErrNotParticipant
		}

		if room.Status == model.RoomStatusFinished {
			return room, nil
		}
		if room.Status != model.RoomStatusPlaying {
			return nil, ErrRoomNotPlaying
		}

		finished, err := u.rooms.Finish(ctx, roomID, winnerOf(room), time.Now(), room.Version)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// Lost the race against a concurrent move or the other
				// client's finish; refetch and retry.
				continue
			}

			return nil, err
		}

		u.recordOutcomes(ctx, finished)

		return finished, nil
	}

	return nil, ErrVersionConflict
}

// recordOutcomes posts both participants' stats from the single terminal
// event. Failures are logged, not surfaced: the game itself is over either
// way.
func (u *roomUsecase) recordOutcomes(ctx context.Context, room *model.Room) {
	record := func(email string, score int, outcome *bool) {
		if email == "" {
			return
		}
		if _, err := u.stats.UpdateStats(ctx, email, score, outcome); err != nil {
			u.logger.Error().Err(err).
				Str("room_id", room.RoomID).
				Str("email", email).
				Msg("failed to record game outcome")
		}
	}

	var hostOutcome, guestOutcome *bool
	if room.Winner != model.WinnerDraw {
		hostWon := room.Winner == string(model.TurnHost)
		guestWon := !hostWon
		hostOutcome, guestOutcome = &hostWon, &guestWon
	}

	record(room.Host, room.HostScore, hostOutcome)
	if room.Guest != nil {
		record(*room.Guest, room.GuestScore, guestOutcome)
	}

	u.logger.Info().
		Str("room_id", room.RoomID).
		Str("winner", room.Winner).
		Int("host_score", room.HostScore).
		Int("guest_score", room.GuestScore).
		Msg("game finished")
}

func (u *roomUsecase) requireAccount(ctx context.Context, email string) (*model.Account, error) {
	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

func winnerOf(room *model.Room) string {
	switch {
	case room.HostScore > room.GuestScore:
		return string(model.TurnHost)
	case room.GuestScore > room.HostScore:
		return string(model.TurnGuest)
	default:
		return model.WinnerDraw
	}
}

func newRoomID() string {
	return "room_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
