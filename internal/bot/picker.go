package bot

import (
	"math/rand/v2"

	"tricktable-game/internal/shared"
)

// CardPicker selects a card for a computer-controlled player to play.
// Implementations must return a card present in hand; hand is never empty
// when the engine invokes the picker.
type CardPicker interface {
	ChooseCard(hand []shared.Card, trick *shared.Trick) shared.Card
}

// RandomPicker plays a uniform-random card from the hand. This is the
// simplest possible policy; smarter policies can replace it behind the
// same interface without touching the state machine.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a picker drawing from the given random source.
func NewRandomPicker(rng *rand.Rand) *RandomPicker {
	return &RandomPicker{rng: rng}
}

func (p *RandomPicker) ChooseCard(hand []shared.Card, _ *shared.Trick) shared.Card {
	return hand[p.rng.IntN(len(hand))]
}
