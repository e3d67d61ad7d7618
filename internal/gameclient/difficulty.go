package gameclient

import (
	"fmt"
	"time"
)

// Difficulty describes a board size with its matching clock settings.
type Difficulty struct {
	Name         string
	Pairs        int
	TimeLimit    time.Duration
	MemorizeTime time.Duration
}

var difficulties = map[string]Difficulty{
	"easy":   {Name: "easy", Pairs: 6, TimeLimit: 120 * time.Second, MemorizeTime: 5 * time.Second},
	"medium": {Name: "medium", Pairs: 8, TimeLimit: 90 * time.Second, MemorizeTime: 4 * time.Second},
	"hard":   {Name: "hard", Pairs: 10, TimeLimit: 60 * time.Second, MemorizeTime: 3 * time.Second},
}

// DefaultDifficulty is used when a room carries no game mode.
const DefaultDifficulty = "medium"

// DifficultyByName looks up a difficulty by its mode name.
func DifficultyByName(name string) (Difficulty, error) {
	d, ok := difficulties[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
	}
	return d, nil
}

// MaxScore is the total score available on a board of the given difficulty.
func (d Difficulty) MaxScore() int {
	return d.Pairs * MatchPoints
}
