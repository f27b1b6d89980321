package game

import "tricktable-game/internal/shared"

// PlayerView is the render-facing view of one seat. The human seat carries
// the full hand; for bot seats only the count is populated, so the
// presentation layer never sees opponents' card faces.
type PlayerView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Score     int           `json:"score"`
	CardCount int           `json:"card_count"`
	IsHuman   bool          `json:"is_human"`
	IsActive  bool          `json:"is_active"`
	Hand      []shared.Card `json:"hand,omitempty"`
}

// Snapshot is a consistent copy of the observable engine state.
type Snapshot struct {
	Phase         Phase                         `json:"phase"`
	CurrentPlayer int                           `json:"current_player"`
	Players       [shared.NumPlayers]PlayerView `json:"players"`
	Table         []shared.PlayedCard           `json:"table"`
	LeadPlayerID  string                        `json:"lead_player_id,omitempty"`
	TrickWinnerID string                        `json:"trick_winner_id,omitempty"`
	Scores        [shared.NumPlayers]int        `json:"scores"`
	Round         int                           `json:"round"`
	MaxRounds     int                           `json:"max_rounds"`
	RuleSetName   string                        `json:"rule_set_name"`
}

// Snapshot returns a copy of the current state for rendering. Safe to call
// from any goroutine, including mid-delay (the phase simply reads as-is).
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Phase:         e.phase,
		CurrentPlayer: e.currentPlayer,
		Table:         make([]shared.PlayedCard, len(e.trick.Cards)),
		LeadPlayerID:  e.trick.LeadPlayerID,
		Round:         e.round,
		MaxRounds:     e.maxRounds,
		RuleSetName:   e.ruleSet.Name(),
	}
	copy(snap.Table, e.trick.Cards)
	if e.trickWinner >= 0 {
		snap.TrickWinnerID = e.players[e.trickWinner].ID
	}
	for i, p := range e.players {
		snap.Players[i] = e.playerViewLocked(i, p.IsHuman)
		snap.Scores[i] = p.Score
	}
	return snap
}

func (e *Engine) playerViewLocked(index int, includeHand bool) PlayerView {
	p := e.players[index]
	view := PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Score:     p.Score,
		CardCount: len(p.Hand),
		IsHuman:   p.IsHuman,
		IsActive:  p.IsActive,
	}
	if includeHand {
		view.Hand = make([]shared.Card, len(p.Hand))
		copy(view.Hand, p.Hand)
	}
	return view
}
