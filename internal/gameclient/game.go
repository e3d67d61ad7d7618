package gameclient

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/brainbreak/brainbreak-api/internal/model"
)

// Phase is the client-side lifecycle of a game.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseMemorize Phase = "memorize"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// PollInterval is how often clients refresh room state from the server.
const PollInterval = time.Second

var (
	ErrNotPlayerTurn = errors.New("not this player's turn")
	ErrWrongPhase    = errors.New("operation not valid in current phase")
)

// Game drives one player's view of a multiplayer match. The board is
// client-local; only move outcomes and scores go over the wire.
type Game struct {
	client *Client
	clock  Clock
	logger *zerolog.Logger

	roomID string
	role   model.TurnRole
	diff   Difficulty
	deck   Deck

	room    *model.Room
	phase   Phase
	flipped []int
}

// NewGame builds a game for the given participant of a room.
func NewGame(client *Client, clock Clock, logger *zerolog.Logger, room *model.Room, email string) (*Game, error) {
	role := room.RoleOf(email)
	if role == "" {
		return nil, fmt.Errorf("account %s is not a participant of room %s", email, room.RoomID)
	}

	mode := DefaultDifficulty
	if room.GameMode != nil && *room.GameMode != "" {
		mode = *room.GameMode
	}
	diff, err := DifficultyByName(mode)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(clock.Now().UnixNano()))
	g := &Game{
		client: client,
		clock:  clock,
		logger: logger,
		roomID: room.RoomID,
		role:   role,
		diff:   diff,
		deck:   NewDeck(diff.Pairs, rng),
	}
	g.sync(room)
	return g, nil
}

func (g *Game) Room() *model.Room     { return g.room }
func (g *Game) Role() model.TurnRole  { return g.role }
func (g *Game) Difficulty() Difficulty { return g.diff }
func (g *Game) Deck() Deck            { return g.deck }
func (g *Game) Phase() Phase          { return g.phase }

func (g *Game) MyScore() int       { return g.room.ScoreOf(g.role) }
func (g *Game) OpponentScore() int { return g.room.ScoreOf(g.role.Opponent()) }

// MyTurn reports whether this player owns the current turn. Rooms created
// before turn tracking carry no currentTurn; for those the legacy rule
// applies: the player with the score lead (or a tie) moves.
func (g *Game) MyTurn() bool {
	if g.room.CurrentTurn != "" {
		return g.room.CurrentTurn == g.role
	}
	return g.MyScore() >= g.OpponentScore()
}

// MemorizeDeadline is when the face-up preview ends, anchored to the
// server-recorded start so both clients agree.
func (g *Game) MemorizeDeadline() time.Time {
	return g.room.StartedAt.Add(g.diff.MemorizeTime)
}

// Deadline is when the match clock runs out.
func (g *Game) Deadline() time.Time {
	return g.MemorizeDeadline().Add(g.diff.TimeLimit)
}

// TimeRemaining is the match clock time left, zero once expired.
func (g *Game) TimeRemaining() time.Duration {
	left := g.Deadline().Sub(g.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Complete reports whether every pair on the board has been claimed,
// judged by the combined server scores.
func (g *Game) Complete() bool {
	return g.room.HostScore+g.room.ScoreOf(model.TurnGuest) >= g.diff.MaxScore()
}

// Over reports whether the match should end: board cleared, clock expired,
// or the server already finished the room.
func (g *Game) Over() bool {
	if g.phase == PhaseFinished {
		return true
	}
	return g.Complete() || g.TimeRemaining() == 0
}

func (g *Game) sync(room *model.Room) {
	g.room = room

	switch room.Status {
	case model.RoomStatusWaiting:
		g.phase = PhaseWaiting
	case model.RoomStatusFinished:
		g.phase = PhaseFinished
	case model.RoomStatusPlaying:
		if g.clock.Now().Before(g.MemorizeDeadline()) {
			g.phase = PhaseMemorize
		} else {
			g.phase = PhasePlaying
		}
	}
}

// Refresh fetches the latest room state and advances the local phase.
func (g *Game) Refresh(ctx context.Context) error {
	room, err := g.client.GetRoom(ctx, g.roomID)
	if err != nil {
		return err
	}
	g.sync(room)
	return nil
}

// WaitForOpponent polls until a guest joins and the room starts.
func (g *Game) WaitForOpponent(ctx context.Context) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for g.phase == PhaseWaiting {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.Refresh(ctx); err != nil {
				g.logger.Warn().Err(err).Str("room_id", g.roomID).Msg("room poll failed")
			}
		}
	}
	return nil
}

// WaitForTurn polls until it is this player's turn, the match is over, or
// the context is cancelled.
func (g *Game) WaitForTurn(ctx context.Context) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for !g.MyTurn() && !g.Over() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.Refresh(ctx); err != nil {
				g.logger.Warn().Err(err).Str("room_id", g.roomID).Msg("room poll failed")
			}
		}
	}
	return nil
}

// FlipResult is the outcome of flipping a card.
type FlipResult struct {
	// Resolved is true once a second card completes the attempt.
	Resolved bool
	Matched  bool
	First    int
	Second   int
}

// Flip turns a card face up. The first flip of an attempt just reveals;
// the second resolves the attempt and turns mismatches back down.
func (g *Game) Flip(index int) (FlipResult, error) {
	if g.phase != PhasePlaying {
		return FlipResult{}, ErrWrongPhase
	}
	if !g.MyTurn() {
		return FlipResult{}, ErrNotPlayerTurn
	}
	if index < 0 || index >= len(g.deck) {
		return FlipResult{}, fmt.Errorf("card index %d out of range", index)
	}

	card := g.deck[index]
	if card.Matched || card.FaceUp {
		return FlipResult{}, fmt.Errorf("card %d is already revealed", index)
	}

	card.FaceUp = true
	g.flipped = append(g.flipped, index)
	if len(g.flipped) < 2 {
		return FlipResult{First: index}, nil
	}

	first, second := g.deck[g.flipped[0]], g.deck[g.flipped[1]]
	result := FlipResult{Resolved: true, First: g.flipped[0], Second: g.flipped[1]}
	if first.Symbol == second.Symbol {
		result.Matched = true
		first.Matched, second.Matched = true, true
	} else {
		first.FaceUp, second.FaceUp = false, false
	}
	g.flipped = nil
	return result, nil
}

// PushMove reports a resolved attempt to the server. The write is
// conditional on the last-seen version; on conflict the room is refetched
// and the move retried once. Other failures are logged and dropped so a
// flaky network never corrupts the local board.
func (g *Game) PushMove(ctx context.Context, matched bool) {
	room, err := g.client.SubmitMove(ctx, g.roomID, matched, g.room.Version)
	if err == nil {
		g.sync(room)
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		if refreshErr := g.Refresh(ctx); refreshErr != nil {
			g.logger.Warn().Err(refreshErr).Str("room_id", g.roomID).Msg("refetch after move conflict failed")
			return
		}
		if g.phase != PhasePlaying || !g.MyTurn() {
			return
		}
		room, err = g.client.SubmitMove(ctx, g.roomID, matched, g.room.Version)
		if err == nil {
			g.sync(room)
			return
		}
	}

	g.logger.Warn().Err(err).Str("room_id", g.roomID).Msg("move push failed")
}

// Finish asks the server to close out the room. The server records the
// winner and both players' stats exactly once; a room that is already
// finished comes back unchanged.
func (g *Game) Finish(ctx context.Context) error {
	room, err := g.client.FinishRoom(ctx, g.roomID)
	if err != nil {
		return err
	}
	g.sync(room)
	return nil
}
