package bot

import (
	"math/rand/v2"
	"testing"

	"tricktable-game/internal/shared"
)

func TestRandomPickerChoosesFromHand(t *testing.T) {
	picker := NewRandomPicker(rand.New(rand.NewPCG(3, 4)))
	hand := []shared.Card{
		shared.NewCard(shared.Hearts, 2),
		shared.NewCard(shared.Clubs, 10),
		shared.NewCard(shared.Spades, 1),
	}

	for i := 0; i < 50; i++ {
		card := picker.ChooseCard(hand, shared.NewTrick())
		found := false
		for _, c := range hand {
			if c.ID == card.ID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("picker returned %s, not in hand", card.ID)
		}
	}
}

func TestRandomPickerSingleCard(t *testing.T) {
	picker := NewRandomPicker(rand.New(rand.NewPCG(1, 1)))
	hand := []shared.Card{shared.NewCard(shared.Diamonds, 7)}
	if card := picker.ChooseCard(hand, shared.NewTrick()); card.ID != "diamonds-7" {
		t.Fatalf("picker returned %s from a single-card hand", card.ID)
	}
}
