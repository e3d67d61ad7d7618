package gameclient

import "math/rand"

// MatchPoints is awarded for each matched pair.
const MatchPoints = 10

// symbols is the fixed pool that pair values are drawn from. A board uses
// the first N symbols for N pairs.
var symbols = []string{
	"🍎", "🍌", "🍇", "🍓", "🍒", "🍍", "🥝", "🍑",
	"🍋", "🍉", "🥥", "🫐", "🍈", "🍐", "🥭", "🍊",
}

// Card is one face-down tile on the board.
type Card struct {
	Symbol  string
	FaceUp  bool
	Matched bool
}

// Deck is a shuffled board of paired cards.
type Deck []*Card

// NewDeck builds a shuffled deck with the given number of pairs.
func NewDeck(pairs int, rng *rand.Rand) Deck {
	if pairs > len(symbols) {
		pairs = len(symbols)
	}

	deck := make(Deck, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		deck = append(deck, &Card{Symbol: symbols[i]}, &Card{Symbol: symbols[i]})
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// MatchedPairs counts the pairs already cleared from the board.
func (d Deck) MatchedPairs() int {
	n := 0
	for _, c := range d {
		if c.Matched {
			n++
		}
	}
	return n / 2
}

// AllMatched reports whether the board is cleared.
func (d Deck) AllMatched() bool {
	for _, c := range d {
		if !c.Matched {
			return false
		}
	}
	return len(d) > 0
}
