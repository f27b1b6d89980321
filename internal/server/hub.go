package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"tricktable-game/internal/database"
	"tricktable-game/internal/game"
	"tricktable-game/internal/protocol"
	"tricktable-game/internal/rules"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

// session ties a connected client to its engine instance. Each game has one
// human; the three opponents are in-process bots, so there is no lobby.
type session struct {
	engine *game.Engine
	events chan game.Event
	done   chan struct{}
}

// Hub manages active WebSocket connections and their game sessions.
type Hub struct {
	db             *database.Service
	clients        map[*Client]bool
	sessions       map[*Client]*session
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	sessionMu      sync.RWMutex
}

// NewHub creates a new Hub instance.
func NewHub(db *database.Service) *Hub {
	return &Hub{
		db:             db,
		clients:        make(map[*Client]bool),
		sessions:       make(map[*Client]*session),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString() // Assign a unique ID upon registration
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			// Tear down the session first so the event pump stops writing
			// before the send channel closes.
			h.sessionMu.Lock()
			if sess, ok := h.sessions[client]; ok {
				delete(h.sessions, client)
				// Reset stops in-flight timers; close(done) ends the event pump.
				sess.engine.Reset()
				close(sess.done)
				log.Printf("Session for client %s torn down", client.ID)
			}
			h.sessionMu.Unlock()

			h.clientMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
			}
			h.clientMu.Unlock()

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_game":
		h.handleCreateGame(client, msg)
	case "start_game":
		if eng := h.engineFor(client); eng != nil {
			eng.StartGame()
		} else {
			h.sendErrorToClient(client, "No game created yet.")
		}
	case "play_card":
		h.handlePlayCard(client, msg)
	case "reset_game":
		if eng := h.engineFor(client); eng != nil {
			eng.Reset()
			h.sendStateUpdate(client, eng)
		} else {
			h.sendErrorToClient(client, "No game created yet.")
		}
	case "rename":
		h.handleRename(client, msg)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// handleCreateGame creates a fresh engine for the client: one human seat and
// three bots, with the requested rule set fixed for the game.
func (h *Hub) handleCreateGame(client *Client, msg protocol.Message) {
	h.sessionMu.RLock()
	_, alreadyInGame := h.sessions[client]
	h.sessionMu.RUnlock()
	if alreadyInGame {
		log.Printf("Client %s tried to create a game but already has one.", client.ID)
		h.sendErrorToClient(client, "Already in a game.")
		return
	}

	var payload protocol.CreateGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Error unmarshalling create_game payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid create_game message format.")
		return
	}

	sess := &session{
		events: make(chan game.Event, 64),
		done:   make(chan struct{}),
	}
	sess.engine = game.NewEngine(game.Config{
		RuleSetIndex: payload.RuleSet,
		HumanName:    payload.Name,
		Timings:      game.DefaultTimings(),
		Sink: func(ev game.Event) {
			// Called under the engine lock; never block.
			select {
			case sess.events <- ev:
			default:
				log.Printf("Event channel full for client %s, dropping %s", client.ID, ev.Type)
			}
		},
	})
	client.Name = sess.engine.Snapshot().Players[0].Name

	h.sessionMu.Lock()
	h.sessions[client] = sess
	h.sessionMu.Unlock()

	go h.pumpEvents(client, sess)

	log.Printf("Client %s (%s) created game %s with rule set %q",
		client.ID, client.Name, sess.engine.ID, sess.engine.RuleSet().Name())

	ruleSets := make([]protocol.RuleSetInfo, 0, len(rules.All()))
	for _, rs := range rules.All() {
		ruleSets = append(ruleSets, protocol.RuleSetInfo{ID: rs.ID(), Name: rs.Name(), Description: rs.Description()})
	}
	createdPayload := protocol.GameCreatedPayload{
		GameID:   sess.engine.ID,
		PlayerID: sess.engine.HumanID(),
		RuleSets: ruleSets,
		RuleSet:  sess.engine.RuleSet().ID(),
	}
	createdMsg, _ := protocol.NewMessage("game_created", createdPayload)
	h.sendMessageToClient(client, createdMsg)
	h.sendStateUpdate(client, sess.engine)
}

func (h *Hub) handlePlayCard(client *Client, msg protocol.Message) {
	eng := h.engineFor(client)
	if eng == nil {
		h.sendErrorToClient(client, "No game created yet.")
		return
	}

	var payload protocol.PlayCardPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Error unmarshalling play_card payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid play_card message format.")
		return
	}

	// Illegal plays are silent no-ops in the engine; nothing to report back.
	eng.PlayCard(eng.HumanID(), payload.CardID)
}

func (h *Hub) handleRename(client *Client, msg protocol.Message) {
	eng := h.engineFor(client)
	if eng == nil {
		h.sendErrorToClient(client, "No game created yet.")
		return
	}

	var payload protocol.RenamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Error unmarshalling rename payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid rename message format.")
		return
	}

	eng.RenameHuman(payload.Name)
	client.Name = eng.Snapshot().Players[0].Name
	h.sendStateUpdate(client, eng)
}

// pumpEvents forwards engine events to the client as protocol messages.
// It runs outside the engine lock, so it may query snapshots freely.
func (h *Hub) pumpEvents(client *Client, sess *session) {
	for {
		select {
		case <-sess.done:
			return
		case ev := <-sess.events:
			switch ev.Type {
			case game.EventNotice:
				msg, _ := protocol.NewMessage("notification", protocol.NotificationPayload{Message: ev.Message})
				h.sendMessageToClient(client, msg)
			case game.EventCardPlayed:
				msg, _ := protocol.NewMessage("card_played", protocol.CardPlayedPayload{PlayerID: ev.PlayerID, Card: ev.Card})
				h.sendMessageToClient(client, msg)
				h.sendStateUpdate(client, sess.engine)
			case game.EventTrickWon:
				msg, _ := protocol.NewMessage("trick_end", protocol.TrickEndPayload{WinnerID: ev.WinnerID})
				h.sendMessageToClient(client, msg)
				h.sendStateUpdate(client, sess.engine)
			case game.EventGameOver:
				h.finishGame(client, sess, ev.WinnerID)
			default:
				// Phase changes, deals and trick commits only need fresh state.
				h.sendStateUpdate(client, sess.engine)
			}
		}
	}
}

// finishGame persists the result and notifies the client.
func (h *Hub) finishGame(client *Client, sess *session, winnerID string) {
	snap := sess.engine.Snapshot()
	winnerName := ""
	for _, p := range snap.Players {
		if p.ID == winnerID {
			winnerName = p.Name
			break
		}
	}

	result := database.GameResult{
		ID:         sess.engine.ID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		PlayerName: snap.Players[0].Name,
		RuleSet:    snap.RuleSetName,
		Score0:     snap.Scores[0],
		Score1:     snap.Scores[1],
		Score2:     snap.Scores[2],
		Score3:     snap.Scores[3],
		WinnerName: winnerName,
	}
	if err := h.db.Insert(result); err != nil {
		log.Printf("Failed to store result for game %s: %v", sess.engine.ID, err)
	}

	msg, _ := protocol.NewMessage("game_over", protocol.GameOverPayload{WinnerID: winnerID, WinnerName: winnerName})
	h.sendMessageToClient(client, msg)
	h.sendStateUpdate(client, sess.engine)
}

// engineFor returns the engine for a client's session, or nil.
func (h *Hub) engineFor(client *Client) *game.Engine {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	if sess, ok := h.sessions[client]; ok {
		return sess.engine
	}
	return nil
}

// sendStateUpdate sends the current engine snapshot to the client.
func (h *Hub) sendStateUpdate(client *Client, eng *game.Engine) {
	msg, err := protocol.NewMessage("game_state_update", protocol.GameStatePayload{State: eng.Snapshot()})
	if err != nil {
		log.Printf("Error creating game_state_update for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client, msg)
}

// sendMessageToClient delivers a message without blocking the caller.
func (h *Hub) sendMessageToClient(client *Client, message []byte) {
	h.clientMu.RLock()
	_, connected := h.clients[client]
	h.clientMu.RUnlock()
	if !connected {
		log.Printf("Could not send message to client %s (already disconnected?).", client.ID)
		return
	}

	select {
	case client.send <- message:
	default:
		// Channel is blocked or closed, assume client disconnected
		log.Printf("Failed to send message to client %s (channel full or closed), initiating cleanup.", client.ID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[client]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- client
			}
		}()
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	payload := protocol.ErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage("error", payload)
	if err != nil {
		log.Printf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client, msgBytes)
}
