package shared

import (
	"log"
	"math/rand/v2"
)

const (
	DeckSize       = 52
	NumPlayers     = 4
	CardsPerPlayer = 13
)

// NewDeck creates the 52 canonical cards in deterministic order
// (suit-major, rank-minor).
func NewDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := 1; rank <= 13; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a new slice holding a uniform permutation of cards.
// The input is not mutated.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal partitions the first numPlayers*cardsPerPlayer cards into contiguous,
// non-overlapping hands in deck order. Returns nil if the deck is too small.
func Deal(cards []Card, numPlayers, cardsPerPlayer int) [][]Card {
	totalCardsNeeded := numPlayers * cardsPerPlayer
	if len(cards) < totalCardsNeeded {
		log.Printf("Error: Not enough cards in deck (%d) to deal %d cards to %d players.", len(cards), cardsPerPlayer, numPlayers)
		return nil
	}

	dealt := make([][]Card, numPlayers)
	start := 0
	for i := 0; i < numPlayers; i++ {
		end := start + cardsPerPlayer
		// Copy so hands never alias the deck slice
		hand := make([]Card, cardsPerPlayer)
		copy(hand, cards[start:end])
		dealt[i] = hand
		start = end
	}
	return dealt
}
