package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"crewhunt/internal/domain"
)

const (
	// DefaultRoomCodeLength is the default length for room codes
	DefaultRoomCodeLength = 6

	// DefaultStaleGameTimeout is how long before an abandoned game is cleaned up
	DefaultStaleGameTimeout = 2 * time.Hour
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HubOptions configures the games created by a hub
type HubOptions struct {
	Settings         domain.Settings
	Session          SessionOptions
	RoomCodeLength   int
	StaleGameTimeout time.Duration
	CleanupInterval  time.Duration
	Seed             int64 // Zero seeds from the clock
}

// GameHub manages all active game sessions
type GameHub struct {
	sessions map[string]*GameSession
	mu       sync.RWMutex
	opts     HubOptions
	seeds    *mathrand.Rand // guarded by mu
	logger   *slog.Logger
	done     chan struct{}
	once     sync.Once
}

// NewGameHub creates a new game hub
func NewGameHub(opts HubOptions, logger *slog.Logger) *GameHub {
	if opts.RoomCodeLength <= 0 {
		opts.RoomCodeLength = DefaultRoomCodeLength
	}
	if opts.StaleGameTimeout <= 0 {
		opts.StaleGameTimeout = DefaultStaleGameTimeout
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 10 * time.Minute
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	hub := &GameHub{
		sessions: make(map[string]*GameSession),
		opts:     opts,
		seeds:    mathrand.New(mathrand.NewSource(seed)),
		logger:   logger,
		done:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// CreateGame creates a new game and returns its session
func (h *GameHub) CreateGame() (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Generate unique room code
	var roomCode string
	for attempts := 0; attempts < 10; attempts++ {
		roomCode = h.generateRoomCode()
		if _, exists := h.sessions[roomCode]; !exists {
			break
		}
	}

	// Check if we found a unique code
	if _, exists := h.sessions[roomCode]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	assigner := domain.NewRandomRoleAssigner(mathrand.New(mathrand.NewSource(h.seeds.Int63())), h.opts.Settings.Imposters)
	world := domain.NewWorld(roomCode, h.opts.Settings, assigner)

	sessionOpts := h.opts.Session
	sessionOpts.Seed = h.seeds.Int63()
	session := NewGameSession(world, sessionOpts, h.logger)
	h.sessions[roomCode] = session

	h.logger.Info("game created", "roomCode", roomCode, "capacity", world.Settings.Capacity)

	return session, nil
}

// GetSession returns a game session by room code
func (h *GameHub) GetSession(roomCode string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrGameNotFound
	}

	return session, nil
}

// DeleteSession removes a game session
func (h *GameHub) DeleteSession(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[roomCode]; ok {
		session.Close()
		delete(h.sessions, roomCode)
		h.logger.Info("game deleted", "roomCode", roomCode)
	}
}

// GetSessionCount returns the number of active sessions
func (h *GameHub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// GetTotalPlayerCount returns the total number of players across all sessions
func (h *GameHub) GetTotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetPlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	h.once.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()

		for _, session := range h.sessions {
			session.Close()
		}
		h.sessions = make(map[string]*GameSession)
	})
}

// generateRoomCode generates a random room code
func (h *GameHub) generateRoomCode() string {
	b := make([]byte, h.opts.RoomCodeLength)
	rand.Read(b)

	code := make([]byte, h.opts.RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically cleans up stale games
func (h *GameHub) cleanupLoop() {
	ticker := time.NewTicker(h.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			h.cleanupStaleGames(now)
		}
	}
}

// cleanupStaleGames removes games that have been abandoned for too long
func (h *GameHub) cleanupStaleGames(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	stale := make([]string, 0)
	for roomCode, session := range h.sessions {
		if session.IsStale(now, h.opts.StaleGameTimeout) {
			stale = append(stale, roomCode)
		}
	}

	for _, roomCode := range stale {
		if session, ok := h.sessions[roomCode]; ok {
			session.Close()
			delete(h.sessions, roomCode)
			h.logger.Info("stale game cleaned up", "roomCode", roomCode)
		}
	}

	return len(stale)
}
