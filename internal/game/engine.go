package game

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"tricktable-game/internal/bot"
	"tricktable-game/internal/rules"
	"tricktable-game/internal/shared"

	"github.com/google/uuid"
)

// Phase represents the coarse-grained state of the game.
type Phase string

const (
	Waiting    Phase = "waiting"    // initial/reset state; accepts only StartGame
	Dealing    Phase = "dealing"    // cards are being dealt (animation pacing)
	Playing    Phase = "playing"    // players are playing tricks
	Evaluating Phase = "evaluating" // trick winner determined, commit pending
	GameOver   Phase = "game_over"  // terminal; accepts only Reset
)

// Timings holds the presentation-pacing delays between engine steps.
// Zero values make every step run synchronously, which tests rely on.
type Timings struct {
	DealAppear     time.Duration // before dealt hands become visible
	DealToPlay     time.Duration // before the phase flips from dealing to playing
	PlayStep       time.Duration // after each play, before the next bot turn
	EvaluateCommit time.Duration // between the winner signal and the trick commit
}

// DefaultTimings returns the production pacing delays.
func DefaultTimings() Timings {
	return Timings{
		DealAppear:     500 * time.Millisecond,
		DealToPlay:     1200 * time.Millisecond,
		PlayStep:       800 * time.Millisecond,
		EvaluateCommit: 1500 * time.Millisecond,
	}
}

// Config parameterizes a new engine instance.
type Config struct {
	RuleSetIndex int            // 0, 1 or 2; fixed for the lifetime of a game
	HumanName    string         // display name for seat 0; trimmed, empty falls back to default
	Timings      Timings        // pacing delays; zero value runs synchronously
	Rand         *rand.Rand     // source for shuffling and bot choice; nil seeds from time
	Picker       bot.CardPicker // bot card policy; nil uses the uniform-random picker
	Sink         EventSink      // receives engine events; may be nil
}

var botNames = [3]string{"West", "North", "East"}

// Engine owns the full state of one game instance: the four players, the
// current trick, the active rule set and the phase state machine. All state
// mutation happens under a single mutex; pacing delays are timer-scheduled
// callbacks that re-check an epoch counter, so a Reset invalidates any
// in-flight timer wholesale.
type Engine struct {
	ID string

	mu            sync.Mutex
	phase         Phase
	players       [shared.NumPlayers]*shared.Player
	trick         *shared.Trick
	ruleSet       rules.RuleSet
	picker        bot.CardPicker
	rng           *rand.Rand
	currentPlayer int
	round         int // tricks resolved so far
	maxRounds     int
	trickWinner   int // index of the pending trick winner, -1 outside evaluating
	dealt         bool
	epoch         uint64
	timer         *time.Timer
	timings       Timings
	sink          EventSink
}

// NewEngine creates an engine in the waiting phase with four players:
// the human at seat 0 and three bots.
func NewEngine(cfg Config) *Engine {
	rng := cfg.Rand
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	picker := cfg.Picker
	if picker == nil {
		picker = bot.NewRandomPicker(rng)
	}

	e := &Engine{
		ID:          uuid.NewString(),
		phase:       Waiting,
		trick:       shared.NewTrick(),
		ruleSet:     rules.ForIndex(cfg.RuleSetIndex),
		picker:      picker,
		rng:         rng,
		trickWinner: -1,
		maxRounds:   shared.CardsPerPlayer,
		timings:     cfg.Timings,
		sink:        cfg.Sink,
	}

	human := shared.NewPlayer(uuid.NewString(), "", true)
	human.Rename(cfg.HumanName)
	e.players[0] = human
	for i, name := range botNames {
		e.players[i+1] = shared.NewPlayer(uuid.NewString(), name, false)
	}
	return e
}

// RuleSet returns the active rule set.
func (e *Engine) RuleSet() rules.RuleSet {
	return e.ruleSet
}

// HumanID returns the ID of the human player at seat 0.
func (e *Engine) HumanID() string {
	return e.players[0].ID
}

// RenameHuman sets the human player's display name.
func (e *Engine) RenameHuman(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.players[0].Rename(name)
}

// StartGame begins a new game. Legal only from the waiting phase;
// calls in any other phase are no-ops.
func (e *Engine) StartGame() {
	e.mu.Lock()
	if e.phase != Waiting {
		log.Printf("Game %s: StartGame ignored in phase %s", e.ID, e.phase)
		e.mu.Unlock()
		return
	}
	e.setPhaseLocked(Dealing)
	e.dealt = false
	e.setCurrentLocked(0)
	log.Printf("Game %s: starting, rule set %q", e.ID, e.ruleSet.Name())
	epoch, d := e.epoch, e.timings.DealAppear
	e.armTimerLocked(epoch, d)
	e.mu.Unlock()
	if d <= 0 {
		e.advance(epoch)
	}
}

// PlayCard plays the identified card for the identified player. Illegal
// attempts (wrong phase, wrong turn, card not in hand) are silent no-ops;
// callers must not rely on errors to detect rejection.
func (e *Engine) PlayCard(playerID, cardID string) {
	e.mu.Lock()
	if e.phase != Playing {
		log.Printf("Game %s: PlayCard ignored in phase %s", e.ID, e.phase)
		e.mu.Unlock()
		return
	}
	current := e.players[e.currentPlayer]
	if current.ID != playerID {
		log.Printf("Game %s: PlayCard from %s out of turn (current: %s)", e.ID, playerID, current.ID)
		e.mu.Unlock()
		return
	}
	card, ok := current.FindCard(cardID)
	if !ok {
		log.Printf("Game %s: PlayCard with card %s not in hand of %s", e.ID, cardID, current.Name)
		e.mu.Unlock()
		return
	}
	d, more := e.applyPlayLocked(e.currentPlayer, card)
	epoch := e.epoch
	if more {
		e.armTimerLocked(epoch, d)
	}
	e.mu.Unlock()
	if more && d <= 0 {
		e.advance(epoch)
	}
}

// Reset reinitializes the engine to the waiting phase: hands and scores
// cleared, play area emptied, any pending timer invalidated. Always legal.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.epoch++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	for _, p := range e.players {
		p.Reset()
	}
	e.trick = shared.NewTrick()
	e.trickWinner = -1
	e.dealt = false
	e.round = 0
	e.currentPlayer = 0
	e.setPhaseLocked(Waiting)
	log.Printf("Game %s: reset", e.ID)
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Winner returns the game winner: the player with the maximum score, ties
// broken by lowest seat index. Valid only once the game is over.
func (e *Engine) Winner() (PlayerView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != GameOver {
		return PlayerView{}, false
	}
	return e.playerViewLocked(e.winnerIndexLocked(), true), true
}

// advance drives the state machine forward until it needs external input,
// a pacing delay, or a terminal state. Replaces the mutual recursion between
// "play card" and "bot turn" handlers with one auditable loop.
func (e *Engine) advance(epoch uint64) {
	for {
		e.mu.Lock()
		if e.epoch != epoch {
			// A reset superseded this callback.
			e.mu.Unlock()
			return
		}
		d, more := e.stepLocked()
		if more && d > 0 {
			e.armTimerLocked(epoch, d)
		}
		e.mu.Unlock()
		if !more || d > 0 {
			return
		}
	}
}

// armTimerLocked schedules advance after d. Callers run advance inline when
// d is zero; the timer path exists only for real pacing delays.
func (e *Engine) armTimerLocked(epoch uint64, d time.Duration) {
	if d <= 0 {
		return
	}
	e.timer = time.AfterFunc(d, func() {
		e.advance(epoch)
	})
}

// stepLocked performs one state-machine step and returns the delay to wait
// before the next step, plus whether a next step is pending at all.
func (e *Engine) stepLocked() (time.Duration, bool) {
	switch e.phase {
	case Dealing:
		if !e.dealt {
			e.dealLocked()
			return e.timings.DealToPlay, true
		}
		e.setPhaseLocked(Playing)
		e.setCurrentLocked(0)
		// Seat 0 is human; wait for external input.
		return 0, false

	case Playing:
		current := e.players[e.currentPlayer]
		if current.IsHuman {
			return 0, false
		}
		card := e.picker.ChooseCard(current.Hand, e.trick)
		return e.applyPlayLocked(e.currentPlayer, card)

	case Evaluating:
		return e.commitTrickLocked()
	}
	return 0, false
}

// dealLocked shuffles a fresh deck and partitions it into the four hands.
func (e *Engine) dealLocked() {
	deck := shared.Shuffle(shared.NewDeck(), e.rng)
	hands := shared.Deal(deck, shared.NumPlayers, shared.CardsPerPlayer)
	for i, hand := range hands {
		e.players[i].Hand = hand
	}
	e.dealt = true
	log.Printf("Game %s: dealt %d cards to %d players", e.ID, shared.CardsPerPlayer, shared.NumPlayers)
	e.emit(Event{Type: EventHandsDealt})
}

// applyPlayLocked commits a validated play: removes the card from the hand,
// places it into the trick, and either triggers evaluation or advances the
// turn. Returns the pacing delay and whether a next step is pending.
func (e *Engine) applyPlayLocked(playerIndex int, card shared.Card) (time.Duration, bool) {
	player := e.players[playerIndex]
	if !player.RemoveCard(card.ID) {
		// Unreachable when callers validate the card first.
		log.Printf("Game %s: failed to remove card %s from %s's hand", e.ID, card.ID, player.Name)
		return 0, false
	}
	e.trick.AddCard(card, player.ID)
	log.Printf("Game %s: %s played %s", e.ID, player.Name, card.ID)
	e.emit(Event{Type: EventCardPlayed, PlayerID: player.ID, Card: card})
	e.emit(Event{Type: EventNotice, Message: fmt.Sprintf("%s plays a card", player.Name)})

	if e.trick.IsComplete() {
		// Immediate winner signal; the state commit follows after the delay.
		e.setPhaseLocked(Evaluating)
		winnerID := e.ruleSet.EvaluateWinner(e.trick, e.trick.LeadPlayerID)
		e.trickWinner = e.indexOfLocked(winnerID)
		if e.trickWinner == -1 {
			// Rule sets return a player present in the trick; fall back to the lead.
			log.Printf("Game %s: rule set returned unknown winner %q, using lead player", e.ID, winnerID)
			e.trickWinner = e.indexOfLocked(e.trick.LeadPlayerID)
		}
		winner := e.players[e.trickWinner]
		log.Printf("Game %s: trick won by %s", e.ID, winner.Name)
		e.emit(Event{Type: EventTrickWon, WinnerID: winner.ID})
		e.emit(Event{Type: EventNotice, Message: fmt.Sprintf("%s wins the trick", winner.Name)})
		return e.timings.EvaluateCommit, true
	}

	e.setCurrentLocked((playerIndex + 1) % shared.NumPlayers)
	if e.players[e.currentPlayer].IsHuman {
		return 0, false
	}
	return e.timings.PlayStep, true
}

// commitTrickLocked applies the delayed part of trick evaluation: score
// update, play-area clear, next-trick or game-over transition.
func (e *Engine) commitTrickLocked() (time.Duration, bool) {
	winner := e.players[e.trickWinner]
	winner.Score++
	e.round++
	e.trick = shared.NewTrick()
	e.setCurrentLocked(e.trickWinner)
	e.trickWinner = -1
	e.emit(Event{Type: EventTrickCleared, WinnerID: winner.ID})

	// The human hand emptying is the authoritative termination check; with
	// symmetric dealing it coincides with all hands emptying.
	if len(e.players[0].Hand) == 0 {
		e.setPhaseLocked(GameOver)
		gameWinner := e.players[e.winnerIndexLocked()]
		log.Printf("Game %s: game over after %d tricks, won by %s", e.ID, e.round, gameWinner.Name)
		e.emit(Event{Type: EventGameOver, WinnerID: gameWinner.ID})
		e.emit(Event{Type: EventNotice, Message: fmt.Sprintf("Game over — %s wins", gameWinner.Name)})
		return 0, false
	}

	e.setPhaseLocked(Playing)
	if e.players[e.currentPlayer].IsHuman {
		return 0, false
	}
	return e.timings.PlayStep, true
}

// winnerIndexLocked returns the seat with the maximum score, lowest index
// first on ties.
func (e *Engine) winnerIndexLocked() int {
	best := 0
	for i, p := range e.players {
		if p.Score > e.players[best].Score {
			best = i
		}
	}
	return best
}

func (e *Engine) indexOfLocked(playerID string) int {
	for i, p := range e.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (e *Engine) setPhaseLocked(phase Phase) {
	if e.phase == phase {
		return
	}
	e.phase = phase
	e.emit(Event{Type: EventPhaseChanged, Phase: phase})
}

func (e *Engine) setCurrentLocked(index int) {
	e.currentPlayer = index
	for i, p := range e.players {
		p.IsActive = i == index
	}
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink(ev)
	}
}
