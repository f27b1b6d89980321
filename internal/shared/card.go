package shared

import "fmt"

// Suit represents the suit of a card.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists all four suits in deck-building order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Card represents a single playing card. Cards are immutable once created.
type Card struct {
	ID    string `json:"id"`    // Unique within a deck, "<suit>-<rank>"
	Suit  Suit   `json:"suit"`  // The suit of the card
	Rank  int    `json:"rank"`  // 1 (Ace) through 13 (King)
	Value int    `json:"value"` // Trick-comparison value; equals Rank except Ace counts 14
}

// NewCard creates a card for the given suit and rank.
func NewCard(suit Suit, rank int) Card {
	value := rank
	if rank == 1 {
		value = 14 // Ace is high
	}
	return Card{
		ID:    fmt.Sprintf("%s-%d", suit, rank),
		Suit:  suit,
		Rank:  rank,
		Value: value,
	}
}
