package ws

import "time"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoinGame   MessageType = "join_game"
	MsgMoveTo     MessageType = "move_to"
	MsgAttack     MessageType = "attack"
	MsgReportBody MessageType = "report_body"
	MsgSendVote   MessageType = "send_vote"
	MsgPing       MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgEvent     MessageType = "event"
	MsgState     MessageType = "state"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// JoinGamePayload is the payload for join_game message
type JoinGamePayload struct {
	Nickname string `json:"nickname"`
}

// MoveToPayload is the payload for move_to message
type MoveToPayload struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// SendVotePayload is the payload for send_vote message
type SendVotePayload struct {
	Votee string `json:"votee"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	PlayerID string      `json:"playerId"`
	GameID   string      `json:"gameId"`
	State    interface{} `json:"state"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeGameNotFound     = "GAME_NOT_FOUND"
	ErrCodeDuplicateJoin    = "DUPLICATE_JOIN"
	ErrCodeGameClosed       = "GAME_CLOSED"
	ErrCodeNotJoined        = "NOT_JOINED"
	ErrCodeGameNotStarted   = "GAME_NOT_STARTED"
	ErrCodeGameFinished     = "GAME_FINISHED"
	ErrCodeGameNotOngoing   = "GAME_NOT_ONGOING"
	ErrCodeNotImposter      = "NOT_IMPOSTER"
	ErrCodeNoVoteInProgress = "NO_VOTE_IN_PROGRESS"
	ErrCodeDuplicateVote    = "DUPLICATE_VOTE"
	ErrCodeVoterDead        = "VOTER_DEAD"
	ErrCodeUnknownVotee     = "UNKNOWN_VOTEE"
	ErrCodeVoteeDead        = "VOTEE_DEAD"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)
