package game

import "tricktable-game/internal/shared"

// EventType identifies an engine event delivered to the presentation layer.
type EventType string

const (
	EventPhaseChanged EventType = "phase_changed"
	EventHandsDealt   EventType = "hands_dealt"
	EventCardPlayed   EventType = "card_played"
	EventTrickWon     EventType = "trick_won"     // immediate winner signal, before the commit delay
	EventTrickCleared EventType = "trick_cleared" // delayed commit: score applied, play area cleared
	EventGameOver     EventType = "game_over"
	EventNotice       EventType = "notice" // advisory toast text, not part of the correctness contract
)

// Event is a single notification from the engine. Only the fields relevant
// to the event type are populated.
type Event struct {
	Type     EventType   `json:"type"`
	Phase    Phase       `json:"phase,omitempty"`
	PlayerID string      `json:"player_id,omitempty"`
	Card     shared.Card `json:"card,omitempty"`
	WinnerID string      `json:"winner_id,omitempty"`
	Message  string      `json:"message,omitempty"`
}

// EventSink receives engine events. The engine calls the sink while holding
// its internal lock, so a sink must never call back into the engine; hand the
// event off to a channel or queue instead.
type EventSink func(Event)
