package rules

import (
	"tricktable-game/internal/shared"
)

// RuleSet decides the winner of a completed trick. Implementations are pure:
// they must not mutate the trick and must return the ID of a player present
// in it (falling back to the lead player for defensive cases).
type RuleSet interface {
	ID() int
	Name() string
	Description() string
	EvaluateWinner(trick *shared.Trick, leadPlayerID string) string
}

// registry holds the fixed rule sets in selection-index order.
var registry = []RuleSet{
	HighestCard{},
	SuitFollows{},
	SpadesTrump{},
}

// ForIndex returns the rule set selected by configuration index.
// Out-of-range indexes fall back to HighestCard.
func ForIndex(index int) RuleSet {
	if index < 0 || index >= len(registry) {
		return registry[0]
	}
	return registry[index]
}

// All returns the registered rule sets in selection order.
func All() []RuleSet {
	out := make([]RuleSet, len(registry))
	copy(out, registry)
	return out
}

// HighestCard awards the trick to the highest-value card regardless of suit.
type HighestCard struct{}

func (HighestCard) ID() int      { return 0 }
func (HighestCard) Name() string { return "Highest Card Wins" }
func (HighestCard) Description() string {
	return "The highest card wins the trick, regardless of suit. Aces are high."
}

func (HighestCard) EvaluateWinner(trick *shared.Trick, leadPlayerID string) string {
	if len(trick.Cards) == 0 {
		return fallbackWinner(trick, leadPlayerID)
	}
	// Strict > while scanning in play order keeps priority with the
	// earliest card reaching the maximum value.
	best := -1
	winner := ""
	for _, pc := range trick.Cards {
		if pc.Card.Value > best {
			best = pc.Card.Value
			winner = pc.PlayerID
		}
	}
	return winner
}

// SuitFollows awards the trick to the highest card of the led suit;
// off-suit cards cannot win regardless of value.
type SuitFollows struct{}

func (SuitFollows) ID() int      { return 1 }
func (SuitFollows) Name() string { return "Suit Follows" }
func (SuitFollows) Description() string {
	return "Only cards matching the lead suit can win; the highest of them takes the trick."
}

func (SuitFollows) EvaluateWinner(trick *shared.Trick, leadPlayerID string) string {
	if len(trick.Cards) == 0 {
		return fallbackWinner(trick, leadPlayerID)
	}
	leadSuit := trick.LeadSuit()
	if winner := highestOfSuit(trick, leadSuit); winner != "" {
		return winner
	}
	// No card of the lead suit. Unreachable when the lead player's own card
	// set the suit; fall back to the lead player per the documented contract.
	return fallbackWinner(trick, leadPlayerID)
}

// SpadesTrump awards the trick to the highest spade if any spade was played;
// otherwise it behaves like SuitFollows.
type SpadesTrump struct{}

func (SpadesTrump) ID() int      { return 2 }
func (SpadesTrump) Name() string { return "Spades Trump" }
func (SpadesTrump) Description() string {
	return "Any spade beats all other suits; otherwise the highest card of the lead suit wins."
}

func (SpadesTrump) EvaluateWinner(trick *shared.Trick, leadPlayerID string) string {
	if len(trick.Cards) == 0 {
		return fallbackWinner(trick, leadPlayerID)
	}
	if winner := highestOfSuit(trick, shared.Spades); winner != "" {
		return winner
	}
	return SuitFollows{}.EvaluateWinner(trick, leadPlayerID)
}

// highestOfSuit returns the player holding the highest-value card of the
// given suit, first-in-play-order on ties, or "" if the suit was not played.
func highestOfSuit(trick *shared.Trick, suit shared.Suit) string {
	best := -1
	winner := ""
	for _, pc := range trick.Cards {
		if pc.Card.Suit == suit && pc.Card.Value > best {
			best = pc.Card.Value
			winner = pc.PlayerID
		}
	}
	return winner
}

// fallbackWinner resolves the defensive cases: the lead player if known,
// otherwise the first entry in the trick, otherwise "".
func fallbackWinner(trick *shared.Trick, leadPlayerID string) string {
	if leadPlayerID != "" {
		return leadPlayerID
	}
	if len(trick.Cards) > 0 {
		return trick.Cards[0].PlayerID
	}
	return ""
}
