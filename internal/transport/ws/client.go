package ws

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"crewhunt/internal/app"
	"crewhunt/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	codec    Codec
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, codec Codec, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		codec:    codec,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// SendEvent implements app.ClientConnection interface
func (c *Client) SendEvent(event *domain.GameEvent) error {
	return c.Send(NewServerMessage(MsgEvent, event))
}

// SendState implements app.ClientConnection interface
func (c *Client) SendState(state domain.Snapshot) error {
	return c.Send(NewServerMessage(MsgState, state))
}

// Send encodes a message and queues it for the write pump
func (c *Client) Send(message interface{}) error {
	data, err := c.codec.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID, c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.writeFrames(message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeFrames writes message plus anything already queued. Text frames batch
// newline-separated documents; binary frames carry one document each.
func (c *Client) writeFrames(message []byte) error {
	frameType := c.codec.FrameType()
	if frameType == websocket.BinaryMessage {
		if err := c.conn.WriteMessage(frameType, message); err != nil {
			return err
		}
		n := len(c.send)
		for i := 0; i < n; i++ {
			if err := c.conn.WriteMessage(frameType, <-c.send); err != nil {
				return err
			}
		}
		return nil
	}

	w, err := c.conn.NextWriter(frameType)
	if err != nil {
		return err
	}
	w.Write(message)

	// Add queued messages to the current websocket message
	n := len(c.send)
	for i := 0; i < n; i++ {
		w.Write([]byte{'\n'})
		w.Write(<-c.send)
	}

	return w.Close()
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := c.codec.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoinGame:
		c.handleJoinGame(msg.Payload)
	case MsgMoveTo:
		c.handleMoveTo(msg.Payload)
	case MsgAttack:
		c.reply(c.session.Attack(c.playerID))
	case MsgReportBody:
		c.reply(c.session.ReportBody(c.playerID))
	case MsgSendVote:
		c.handleSendVote(msg.Payload)
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleJoinGame handles a join_game message
func (c *Client) handleJoinGame(payload interface{}) {
	var p JoinGamePayload
	if payload != nil {
		if err := decodePayload(c.codec, payload, &p); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Invalid payload")
			return
		}
	}

	if err := c.session.Join(c.playerID, p.Nickname); err != nil {
		c.reply(err)
		return
	}

	// Send connected confirmation
	c.sendConnected()
}

// handleMoveTo handles a move_to message
func (c *Client) handleMoveTo(payload interface{}) {
	var p MoveToPayload
	if err := decodePayload(c.codec, payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}
	if p.X == nil || p.Y == nil {
		c.sendError(ErrCodeInvalidMessage, "Target x and y are required")
		return
	}

	c.reply(c.session.UpdateTarget(c.playerID, domain.Location{X: *p.X, Y: *p.Y}))
}

// handleSendVote handles a send_vote message
func (c *Client) handleSendVote(payload interface{}) {
	var p SendVotePayload
	if err := decodePayload(c.codec, payload, &p); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}
	if p.Votee == "" {
		c.sendError(ErrCodeInvalidMessage, "Votee is required")
		return
	}

	c.reply(c.session.SendVote(c.playerID, p.Votee))
}

// reply reports a rejected action back to the client; success is silent
// because the resulting events are broadcast
func (c *Client) reply(err error) {
	if err == nil {
		return
	}
	c.sendError(errorCode(err), err.Error())
}

// errorCode maps domain errors to wire error codes
func errorCode(err error) string {
	codes := []struct {
		err  error
		code string
	}{
		{domain.ErrGameNotFound, ErrCodeGameNotFound},
		{domain.ErrDuplicateJoin, ErrCodeDuplicateJoin},
		{domain.ErrGameClosed, ErrCodeGameClosed},
		{domain.ErrNotJoined, ErrCodeNotJoined},
		{domain.ErrGameNotStarted, ErrCodeGameNotStarted},
		{domain.ErrGameFinished, ErrCodeGameFinished},
		{domain.ErrGameNotOngoing, ErrCodeGameNotOngoing},
		{domain.ErrNotImposter, ErrCodeNotImposter},
		{domain.ErrNoVoteInProgress, ErrCodeNoVoteInProgress},
		{domain.ErrDuplicateVote, ErrCodeDuplicateVote},
		{domain.ErrVoterDead, ErrCodeVoterDead},
		{domain.ErrUnknownVotee, ErrCodeUnknownVotee},
		{domain.ErrVoteeDead, ErrCodeVoteeDead},
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ErrCodeInternalError
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		PlayerID: c.playerID,
		GameID:   c.session.GetRoomCode(),
		State:    c.session.ViewerState(c.playerID),
	}

	msg := NewServerMessage(MsgConnected, payload)
	c.Send(msg)
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	msg := NewServerMessage(MsgError, payload)
	c.Send(msg)
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	msg := NewServerMessage(MsgPong, nil)
	c.Send(msg)
}
