package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Account represents a registered player. Secret fields (password hash,
// verification code and its expiry) never serialize to JSON; an account is
// created unverified and keeps a pending code until it is verified.
type Account struct {
	ID                 bson.ObjectID `bson:"_id,omitempty"                 json:"-"`
	Email              string        `bson:"email"                         json:"email"`
	Username           string        `bson:"username"                      json:"username"`
	PasswordHash       string        `bson:"password_hash"                 json:"-"`
	Verified           bool          `bson:"verified"                      json:"verified"`
	VerificationCode   string        `bson:"verification_code,omitempty"   json:"-"`
	VerificationExpiry time.Time     `bson:"verification_expiry,omitempty" json:"-"`
	HighScore          int           `bson:"high_score"                    json:"highScore"`
	GamesPlayed        int           `bson:"games_played"                  json:"gamesPlayed"`
	Wins               int           `bson:"wins"                          json:"wins"`
	Losses             int           `bson:"losses"                        json:"losses"`
	CreatedAt          time.Time     `bson:"created_at"                    json:"createdAt"`
	LastLogin          time.Time     `bson:"last_login,omitempty"          json:"lastLogin,omitzero"`
}
