package shared

// PlayedCard stores a card along with the ID of the player who played it.
type PlayedCard struct {
	Card     Card   `json:"card"`
	PlayerID string `json:"player_id"`
}

// Trick represents the play area of the current, not-yet-resolved trick.
// Cards are kept in play order; the lead player is recorded when the first
// card goes down and cleared together with the cards.
type Trick struct {
	Cards        []PlayedCard `json:"cards"`
	LeadPlayerID string       `json:"lead_player_id"`
}

// NewTrick creates an empty trick.
func NewTrick() *Trick {
	return &Trick{
		Cards: make([]PlayedCard, 0, NumPlayers),
	}
}

// AddCard places a card into the trick for the given player. The first card
// of a trick establishes the lead player. A player may contribute at most one
// card per trick; repeated plays are ignored.
func (t *Trick) AddCard(card Card, playerID string) bool {
	for _, pc := range t.Cards {
		if pc.PlayerID == playerID {
			return false
		}
	}
	if len(t.Cards) == 0 {
		t.LeadPlayerID = playerID
	}
	t.Cards = append(t.Cards, PlayedCard{Card: card, PlayerID: playerID})
	return true
}

// IsComplete reports whether all four players have played into the trick.
func (t *Trick) IsComplete() bool {
	return len(t.Cards) >= NumPlayers
}

// LeadSuit returns the suit of the lead player's card, falling back to the
// first card played if lead tracking is unset. Returns "" for an empty trick.
func (t *Trick) LeadSuit() Suit {
	if len(t.Cards) == 0 {
		return ""
	}
	if t.LeadPlayerID != "" {
		for _, pc := range t.Cards {
			if pc.PlayerID == t.LeadPlayerID {
				return pc.Card.Suit
			}
		}
	}
	return t.Cards[0].Card.Suit
}

// CardFor returns the card the given player contributed to this trick.
func (t *Trick) CardFor(playerID string) (Card, bool) {
	for _, pc := range t.Cards {
		if pc.PlayerID == playerID {
			return pc.Card, true
		}
	}
	return Card{}, false
}
