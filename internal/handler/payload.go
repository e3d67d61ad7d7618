package handler

import "github.com/brainbreak/brainbreak-api/internal/model"

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// VerificationCode is only populated outside production, where no email
	// delivery is guaranteed configured.
	VerificationCode string `json:"verificationCode,omitempty"`
}

type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    *model.Account `json:"user"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResendResponse struct {
	Success          bool   `json:"success"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

type RoomResponse struct {
	Room *model.Room `json:"room"`
}

type UpdateRoomRequest struct {
	HostScore   *int    `json:"hostScore"   validate:"omitempty,min=0"`
	GuestScore  *int    `json:"guestScore"  validate:"omitempty,min=0"`
	GameMode    *string `json:"gameMode"    validate:"omitempty,max=30"`
	CurrentTurn *string `json:"currentTurn" validate:"omitempty,oneof=host guest"`
	Status      *string `json:"status"      validate:"omitempty,oneof=waiting playing finished"`
	// Version makes the update conditional on the room's current version;
	// without it, the update is a plain last-write-wins merge.
	Version *int64 `json:"version" validate:"omitempty,min=1"`
}

type MoveRequest struct {
	Matched bool  `json:"matched"`
	Version int64 `json:"version" validate:"required,min=1"`
}

type UpdateStatsRequest struct {
	HighScore int   `json:"highScore" validate:"min=0"`
	Won       *bool `json:"won"`
}

type UserResponse struct {
	User *model.Account `json:"user"`
}

type LeaderboardResponse struct {
	Users []*model.Account `json:"users"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	// NeedsVerification flags the distinct signin failure for correct
	// credentials on an unverified account.
	NeedsVerification bool `json:"needsVerification,omitempty"`
}
