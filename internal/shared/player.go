package shared

import "strings"

// DefaultHumanName is used when the human's chosen name is empty or whitespace.
const DefaultHumanName = "Player"

// Player represents one of the four seats at the table.
type Player struct {
	ID       string `json:"id"`        // Unique identifier for the player
	Name     string `json:"name"`      // Display name
	Hand     []Card `json:"-"`         // Cards currently held, hidden from other players
	Score    int    `json:"score"`     // Tricks won this game
	IsHuman  bool   `json:"is_human"`  // Seat 0 is human, seats 1-3 are bots
	IsActive bool   `json:"is_active"` // True while it is this player's turn
}

// NewPlayer creates a player with an empty hand and zero score.
func NewPlayer(id string, name string, isHuman bool) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Hand:    []Card{},
		IsHuman: isHuman,
	}
}

// Rename sets the player's display name, trimming whitespace.
// Empty or whitespace-only names fall back to the default.
func (p *Player) Rename(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultHumanName
	}
	p.Name = name
}

// HasCard reports whether the player holds the card with the given ID.
func (p *Player) HasCard(cardID string) bool {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return true
		}
	}
	return false
}

// FindCard returns the card with the given ID from the player's hand.
func (p *Player) FindCard(cardID string) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// RemoveCard removes the card with the given ID from the player's hand.
// Returns false if the card is not held.
func (p *Player) RemoveCard(cardID string) bool {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears the player's hand and score for a fresh game.
func (p *Player) Reset() {
	p.Hand = []Card{}
	p.Score = 0
	p.IsActive = false
}
