package protocol

import (
	"encoding/json"

	"tricktable-game/internal/game"
	"tricktable-game/internal/shared"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "create_game", "play_card")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// --- Client -> Server Payload Structs ---

type CreateGamePayload struct {
	Name    string `json:"name"`
	RuleSet int    `json:"rule_set"` // 0: highest card, 1: suit follows, 2: spades trump
}

type PlayCardPayload struct {
	CardID string `json:"card_id"`
}

type RenamePayload struct {
	Name string `json:"name"`
}

// --- Server -> Client Payload Structs ---

type RuleSetInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GameCreatedPayload struct {
	GameID   string        `json:"game_id"`
	PlayerID string        `json:"player_id"` // the human's seat
	RuleSets []RuleSetInfo `json:"rule_sets"`
	RuleSet  int           `json:"rule_set"`
}

type GameStatePayload struct {
	State game.Snapshot `json:"state"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Card     shared.Card `json:"card"`
}

type TrickEndPayload struct {
	WinnerID string `json:"winner_id"`
}

type GameOverPayload struct {
	WinnerID   string `json:"winner_id"`
	WinnerName string `json:"winner_name"`
}

type NotificationPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage builds a JSON-encoded message with the given type and payload.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{
		Type:    msgType,
		Payload: payloadBytes,
	})
}
