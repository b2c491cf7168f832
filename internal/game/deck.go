package game

import (
	"fmt"
	"math/rand/v2"
)

// Card is one physical card of a Deck.
type Card struct {
	ID      int    `json:"id"`      // Unique within the deck.
	PairID  int    `json:"pair_id"` // Shared by exactly two cards.
	Flipped bool   `json:"flipped"` // Face up because it is (or was just) selected.
	Found   bool   `json:"found"`   // Its pair was matched; permanent for the round.
	Image   string `json:"image"`
}

// Deck is the ordered set of cards on the board.
type Deck []Card

// ImagePath returns the asset shown on the face of the cards of the given pair.
func ImagePath(pairID int) string {
	return fmt.Sprintf("/web/images/%d.jpg", pairID)
}

// GenerateDeck deals 2*pairs cards, two per pair id in [1, pairs], and
// shuffles them. If rng is nil the global random source is used.
func GenerateDeck(pairs int, rng *rand.Rand) Deck {
	if pairs <= 0 {
		return Deck{}
	}
	deck := make(Deck, 0, 2*pairs)
	for i := 1; i <= pairs; i++ {
		image := ImagePath(i)
		deck = append(deck,
			Card{ID: 2*i - 1, PairID: i, Image: image},
			Card{ID: 2 * i, PairID: i, Image: image},
		)
	}
	deck.Shuffle(rng)
	return deck
}

// Shuffle applies a uniform random permutation in place (Fisher-Yates,
// from the last position down to 1).
func (d Deck) Shuffle(rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(d) - 1; i > 0; i-- {
		j := intN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Index returns the position of the card with the given id, or -1.
func (d Deck) Index(id int) int {
	for i := range d {
		if d[i].ID == id {
			return i
		}
	}
	return -1
}

// AllFound reports whether every pair of the deck has been matched.
// An empty deck is never considered solved.
func (d Deck) AllFound() bool {
	if len(d) == 0 {
		return false
	}
	for _, c := range d {
		if !c.Found {
			return false
		}
	}
	return true
}

// FoundPairs counts the matched pairs.
func (d Deck) FoundPairs() int {
	n := 0
	for _, c := range d {
		if c.Found {
			n++
		}
	}
	return n / 2
}

// Clone returns a copy of the deck that shares no state with it.
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}
