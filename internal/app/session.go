package app

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"crewhunt/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	SendEvent(event *domain.GameEvent) error
	SendState(state domain.Snapshot) error
	GetPlayerID() string
	Close() error
}

// SessionOptions controls the simulation loop of a session
type SessionOptions struct {
	TickInterval   time.Duration // Zero disables the internal ticker
	BroadcastEvery int           // Send viewer snapshots every N ticks; zero disables
	Seed           int64         // Seed for default nicknames
}

// delivery is one queued outbound message; the recipient is empty for broadcasts
type delivery struct {
	to       string
	event    *domain.GameEvent
	snapshot *domain.Snapshot
}

// GameSession wraps a world with serialized access and client management
type GameSession struct {
	world        *domain.World
	mu           sync.Mutex
	rng          *rand.Rand // guarded by mu
	ticks        int        // guarded by mu
	lastActivity time.Time  // guarded by mu
	createdAt    time.Time
	opts         SessionOptions

	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	// Outbound queue for broadcasting
	outbox    chan delivery
	done      chan struct{}
	closeOnce sync.Once
}

// NewGameSession creates a new game session and starts its loops
func NewGameSession(world *domain.World, opts SessionOptions, logger *slog.Logger) *GameSession {
	now := time.Now()
	session := &GameSession{
		world:        world,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		lastActivity: now,
		createdAt:    now,
		opts:         opts,
		clients:      make(map[string]ClientConnection),
		logger:       logger.With("roomCode", world.ID),
		outbox:       make(chan delivery, 256),
		done:         make(chan struct{}),
	}

	// Start broadcaster
	go session.eventLoop()

	if opts.TickInterval > 0 {
		go session.tickLoop(opts.TickInterval)
	}

	return session
}

// GetRoomCode returns the room code
func (s *GameSession) GetRoomCode() string {
	return s.world.ID
}

// GetCreatedAt returns when the session was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.createdAt
}

// GetPlayerCount returns the number of players on the roster
func (s *GameSession) GetPlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.PlayerCount()
}

// GetStatus returns the current game status
func (s *GameSession) GetStatus() domain.GameStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Status
}

// CanJoin checks if a new player can join the game
func (s *GameSession) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.CanJoin()
}

// HasPlayer checks if the player is on the roster
func (s *GameSession) HasPlayer(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.HasPlayer(playerID)
}

// RegisterClient registers a client connection for a player.
// A connection already registered for the player is closed.
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	old, replaced := s.clients[playerID]
	s.clients[playerID] = client
	s.clientsMu.Unlock()

	if replaced && old != client {
		s.logger.Debug("replacing client connection", "playerID", playerID)
		old.Close()
	}
}

// UnregisterClient removes client if it is still the player's current connection
func (s *GameSession) UnregisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if current, ok := s.clients[playerID]; ok && current == client {
		delete(s.clients, playerID)
	}
}

// GetClient returns the client for a player
func (s *GameSession) GetClient(playerID string) (ClientConnection, bool) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	client, ok := s.clients[playerID]
	return client, ok
}

// GetClientCount returns the number of connected clients
func (s *GameSession) GetClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Join adds a player to the world. An empty nickname gets a default one.
func (s *GameSession) Join(playerID, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Rejected joins must not consume the nickname sequence
	if nickname == "" && !s.world.HasPlayer(playerID) && s.world.CanJoin() {
		taken := make([]string, 0, len(s.world.Players))
		for _, p := range s.world.Players {
			taken = append(taken, p.Nickname)
		}
		nickname = RandomNicknameExcluding(s.rng, taken)
	}

	return s.applyLocked("join", playerID, func() ([]*domain.GameEvent, error) {
		return s.world.Join(playerID, nickname)
	})
}

// UpdateTarget sets the player's movement target
func (s *GameSession) UpdateTarget(playerID string, target domain.Location) error {
	return s.apply("update_target", playerID, func() ([]*domain.GameEvent, error) {
		return s.world.UpdateTarget(playerID, target)
	})
}

// Attack lets an imposter strike
func (s *GameSession) Attack(playerID string) error {
	return s.apply("attack", playerID, func() ([]*domain.GameEvent, error) {
		return s.world.Attack(playerID)
	})
}

// ReportBody reports a nearby body
func (s *GameSession) ReportBody(playerID string) error {
	return s.apply("report_body", playerID, func() ([]*domain.GameEvent, error) {
		return s.world.ReportBody(playerID)
	})
}

// SendVote casts a ballot in the open vote
func (s *GameSession) SendVote(voterID, voteeID string) error {
	return s.apply("send_vote", voterID, func() ([]*domain.GameEvent, error) {
		return s.world.SendVote(voterID, voteeID)
	})
}

// ViewerState returns the world as seen by playerID
func (s *GameSession) ViewerState(playerID string) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.ViewerState(playerID)
}

// Tick advances the simulation by elapsedSeconds and periodically pushes snapshots
func (s *GameSession) Tick(elapsedSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.world.Tick(elapsedSeconds)
	s.ticks++

	if s.opts.BroadcastEvery <= 0 || s.ticks%s.opts.BroadcastEvery != 0 {
		return
	}

	s.clientsMu.RLock()
	viewers := make([]string, 0, len(s.clients))
	for playerID := range s.clients {
		viewers = append(viewers, playerID)
	}
	s.clientsMu.RUnlock()

	for _, playerID := range viewers {
		snap := s.world.ViewerState(playerID)
		s.queue(delivery{to: playerID, snapshot: &snap})
	}
}

// IsStale reports whether nobody is connected and nothing happened for longer than timeout
func (s *GameSession) IsStale(now time.Time, timeout time.Duration) bool {
	if s.GetClientCount() > 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActivity) > timeout
}

// apply runs a world handler under the session lock
func (s *GameSession) apply(action, playerID string, fn func() ([]*domain.GameEvent, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(action, playerID, fn)
}

// applyLocked runs a world handler and queues its events (caller must hold lock)
func (s *GameSession) applyLocked(action, playerID string, fn func() ([]*domain.GameEvent, error)) error {
	before := s.world.Status

	events, err := fn()
	if err != nil {
		s.logger.Debug("action rejected", "action", action, "playerID", playerID, "error", err)
		return err
	}

	s.lastActivity = time.Now()
	if s.world.Status != before {
		s.logger.Info("game status changed", "from", before, "to", s.world.Status)
	}

	for _, event := range events {
		s.queue(delivery{to: event.PlayerID, event: event})
	}
	return nil
}

// queue adds a delivery to the broadcast queue
func (s *GameSession) queue(d delivery) {
	select {
	case s.outbox <- d:
	default:
		s.logger.Warn("outbox full, dropping message", "to", d.to)
	}
}

// tickLoop drives the simulation with the measured elapsed time
func (s *GameSession) tickLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			s.Tick(elapsed)
		}
	}
}

// eventLoop delivers queued messages to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case d := <-s.outbox:
			s.deliver(d)
		}
	}
}

// deliver sends a message to the appropriate clients
func (s *GameSession) deliver(d delivery) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	send := func(playerID string, client ClientConnection) {
		var err error
		if d.snapshot != nil {
			err = client.SendState(*d.snapshot)
		} else {
			err = client.SendEvent(d.event)
		}
		if err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}

	// If player-specific, send only to that player
	if d.to != "" {
		if client, ok := s.clients[d.to]; ok {
			send(d.to, client)
		}
		return
	}

	for playerID, client := range s.clients {
		send(playerID, client)
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		// Close all client connections
		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConnection)
		s.clientsMu.Unlock()
	})
}
