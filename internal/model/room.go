package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RoomStatus is the lifecycle state of a game room.
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusPlaying  RoomStatus = "playing"
	RoomStatusFinished RoomStatus = "finished"
)

// TurnRole identifies a participant within a room.
type TurnRole string

const (
	TurnHost  TurnRole = "host"
	TurnGuest TurnRole = "guest"
)

// Winner values recorded by the terminal transition.
const (
	WinnerDraw = "draw"
)

// Room is the shared document representing one two-player match. Guest fields
// are nil exactly while the room is waiting. Version is an optimistic
// concurrency token incremented on every mutation; moves and the finish
// transition are conditional on it.
type Room struct {
	ID            bson.ObjectID `bson:"_id,omitempty"          json:"-"`
	RoomID        string        `bson:"room_id"                json:"roomId"`
	Host          string        `bson:"host"                   json:"host"`
	HostUsername  string        `bson:"host_username"          json:"hostUsername"`
	HostScore     int           `bson:"host_score"             json:"hostScore"`
	Guest         *string       `bson:"guest"                  json:"guest"`
	GuestUsername *string       `bson:"guest_username"         json:"guestUsername"`
	GuestScore    int           `bson:"guest_score"            json:"guestScore"`
	Status        RoomStatus    `bson:"status"                 json:"status"`
	GameMode      *string       `bson:"game_mode"              json:"gameMode"`
	CurrentTurn   TurnRole      `bson:"current_turn,omitempty" json:"currentTurn,omitempty"`
	Winner        string        `bson:"winner,omitempty"       json:"winner,omitempty"`
	Version       int64         `bson:"version"                json:"version"`
	CreatedAt     time.Time     `bson:"created_at"             json:"createdAt"`
	StartedAt     time.Time     `bson:"started_at,omitempty"   json:"startedAt,omitzero"`
	FinishedAt    time.Time     `bson:"finished_at,omitempty"  json:"finishedAt,omitzero"`
}

// RoleOf returns the role the given email plays in the room, or "" if the
// email is not a participant.
func (r *Room) RoleOf(email string) TurnRole {
	switch {
	case r.Host == email:
		return TurnHost
	case r.Guest != nil && *r.Guest == email:
		return TurnGuest
	default:
		return ""
	}
}

// ScoreOf returns the score belonging to the given role.
func (r *Room) ScoreOf(role TurnRole) int {
	if role == TurnGuest {
		return r.GuestScore
	}
	return r.HostScore
}

// Opponent returns the other participant's role.
func (role TurnRole) Opponent() TurnRole {
	if role == TurnHost {
		return TurnGuest
	}
	return TurnHost
}
