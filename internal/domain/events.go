package domain

import "fmt"

// EventType represents the type of game event
type EventType string

const (
	EventPlayerJoined     EventType = "PLAYER_JOINED"
	EventGameStarted      EventType = "GAME_STARTED"
	EventRoleAssigned     EventType = "ROLE_ASSIGNED"
	EventPlayerMoving     EventType = "PLAYER_MOVING"
	EventPlayerEliminated EventType = "PLAYER_ELIMINATED"
	EventBodyReported     EventType = "BODY_REPORTED"
	EventVoteStarted      EventType = "VOTE_STARTED"
	EventVoteCast         EventType = "VOTE_CAST"
	EventVoteConcluded    EventType = "VOTE_CONCLUDED"
	EventGameEnded        EventType = "GAME_ENDED"
)

// GameEvent is an informational notification emitted after a mutation has been applied.
// Delivery is best effort.
type GameEvent struct {
	Type     EventType   `json:"type"`
	GameID   string      `json:"gameId"`
	PlayerID string      `json:"playerId,omitempty"` // If event is player-specific
	Message  string      `json:"message"`
	Payload  interface{} `json:"payload,omitempty"`
}

// NewEvent creates a new game event addressed to everybody
func NewEvent(eventType EventType, gameID string, payload interface{}, format string, args ...interface{}) *GameEvent {
	return &GameEvent{
		Type:    eventType,
		GameID:  gameID,
		Message: fmt.Sprintf(format, args...),
		Payload: payload,
	}
}

// NewPlayerEvent creates a new player-specific game event
func NewPlayerEvent(eventType EventType, gameID, playerID string, payload interface{}, format string, args ...interface{}) *GameEvent {
	e := NewEvent(eventType, gameID, payload, format, args...)
	e.PlayerID = playerID
	return e
}

// Payload types for different events

// PlayerJoinedPayload is sent when a player joins the lobby
type PlayerJoinedPayload struct {
	PlayerID    string `json:"playerId"`
	Nickname    string `json:"nickname"`
	PlayerCount int    `json:"playerCount"`
	Capacity    int    `json:"capacity"`
}

// RoleAssignedPayload is sent to each player with their own team
type RoleAssignedPayload struct {
	Team Team `json:"team"`
}

// PlayerMovingPayload is sent when a player commands a new target
type PlayerMovingPayload struct {
	PlayerID string   `json:"playerId"`
	Target   Location `json:"target"`
}

// PlayerEliminatedPayload is sent when an attack lands
type PlayerEliminatedPayload struct {
	PlayerID string   `json:"playerId"`
	Location Location `json:"location"`
}

// BodyReportedPayload is sent when a body is discovered
type BodyReportedPayload struct {
	Reporter string `json:"reporter"`
	DeadBody string `json:"deadBody"`
}

// VoteStartedPayload is sent when a report opens a vote.
// RequiredVotes is informational; the quorum is recounted on every ballot.
type VoteStartedPayload struct {
	Reporter      string `json:"reporter"`
	DeadBody      string `json:"deadBody"`
	RequiredVotes int    `json:"requiredVotes"`
}

// VoteCastPayload is sent when a ballot is recorded (without revealing the choice)
type VoteCastPayload struct {
	VoterID       string `json:"voterId"`
	VotedCount    int    `json:"votedCount"`
	RequiredVotes int    `json:"requiredVotes"`
}

// VoteConcludedPayload is sent when a voting round closes
type VoteConcludedPayload struct {
	Tally  []TallyEntry `json:"tally"`
	Result VoteResult   `json:"result"`
}

// GameEndedPayload is sent when the world reaches a terminal status
type GameEndedPayload struct {
	Status GameStatus `json:"status"`
}
