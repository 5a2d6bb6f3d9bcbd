package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"crewhunt/internal/app"
	"crewhunt/internal/domain"
)

// Response is the envelope of every API reply
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is an error with a fixed HTTP status and wire code
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string {
	return e.message
}

var (
	errMissingRoomCode = &apiError{http.StatusBadRequest, "MISSING_ROOM_CODE", "Room code is required"}
	errRoomNotFound    = &apiError{http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found"}
	errPlayerNotFound  = &apiError{http.StatusNotFound, "PLAYER_NOT_FOUND", "Player is not in this room"}
	errCreationFailed  = &apiError{http.StatusInternalServerError, "CREATION_FAILED", "Failed to create room"}
	errInternal        = &apiError{http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"}
)

// CreateRoomResponse is returned by POST /api/rooms
type CreateRoomResponse struct {
	RoomCode   string `json:"roomCode"`
	InviteLink string `json:"inviteLink"`
}

// RoomResponse summarizes a room for the lobby screen
type RoomResponse struct {
	RoomCode    string            `json:"roomCode"`
	PlayerCount int               `json:"playerCount"`
	Capacity    int               `json:"capacity"`
	Status      domain.GameStatus `json:"status"`
	CanJoin     bool              `json:"canJoin"`
}

// RoomExistsResponse is returned by GET /api/rooms/{roomCode}/exists
type RoomExistsResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is returned by GET /api/stats
type StatsResponse struct {
	ActiveGames  int `json:"activeGames"`
	TotalPlayers int `json:"totalPlayers"`
}

// apiHandler produces the data of a successful reply or an error
type apiHandler func(r *http.Request) (interface{}, error)

// api adapts an apiHandler to net/http and writes the envelope
func (s *Server) api(h apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, &Response{Success: true, Data: data})
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		apiErr = errInternal
	}
	writeJSON(w, apiErr.status, &Response{
		Error: &ErrorInfo{Code: apiErr.code, Message: apiErr.message},
	})
}

func writeJSON(w http.ResponseWriter, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// handleCreateRoom handles POST /api/rooms
func (s *Server) handleCreateRoom(r *http.Request) (interface{}, error) {
	session, err := s.hub.CreateGame()
	if err != nil {
		s.logger.Error("failed to create room", "error", err)
		return nil, errCreationFailed
	}

	return &CreateRoomResponse{
		RoomCode:   session.GetRoomCode(),
		InviteLink: inviteLink(r, session.GetRoomCode()),
	}, nil
}

// inviteLink points at the websocket endpoint clients join through
func inviteLink(r *http.Request, roomCode string) string {
	scheme := "ws"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "wss"
	}
	return scheme + "://" + r.Host + "/ws?roomCode=" + roomCode
}

// handleGetRoom handles GET /api/rooms/{roomCode}
func (s *Server) handleGetRoom(r *http.Request) (interface{}, error) {
	session, err := s.room(r)
	if err != nil {
		return nil, err
	}

	return &RoomResponse{
		RoomCode:    session.GetRoomCode(),
		PlayerCount: session.GetPlayerCount(),
		Capacity:    session.ViewerState("").Capacity,
		Status:      session.GetStatus(),
		CanJoin:     session.CanJoin(),
	}, nil
}

// handleRoomExists handles GET /api/rooms/{roomCode}/exists
func (s *Server) handleRoomExists(r *http.Request) (interface{}, error) {
	_, err := s.room(r)
	if errors.Is(err, errMissingRoomCode) {
		return nil, err
	}
	return &RoomExistsResponse{Exists: err == nil}, nil
}

// handleRoomState handles GET /api/rooms/{roomCode}/state?playerId=
// An empty playerId yields a spectator view.
func (s *Server) handleRoomState(r *http.Request) (interface{}, error) {
	session, err := s.room(r)
	if err != nil {
		return nil, err
	}

	playerID := r.URL.Query().Get("playerId")
	if playerID != "" && !session.HasPlayer(playerID) {
		return nil, errPlayerNotFound
	}
	return session.ViewerState(playerID), nil
}

func (s *Server) handleHealth(r *http.Request) (interface{}, error) {
	return &HealthResponse{Status: "ok"}, nil
}

func (s *Server) handleStats(r *http.Request) (interface{}, error) {
	return &StatsResponse{
		ActiveGames:  s.hub.GetSessionCount(),
		TotalPlayers: s.hub.GetTotalPlayerCount(),
	}, nil
}

// room resolves the {roomCode} path value; codes are case-insensitive
func (s *Server) room(r *http.Request) (*app.GameSession, error) {
	roomCode := r.PathValue("roomCode")
	if roomCode == "" {
		return nil, errMissingRoomCode
	}

	session, err := s.hub.GetSession(strings.ToUpper(roomCode))
	if errors.Is(err, domain.ErrGameNotFound) {
		return nil, errRoomNotFound
	}
	return session, err
}
