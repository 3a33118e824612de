package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// MaxFrameSize is the largest frame accepted from a client. Join frames carry the
	// avatar as a data URL, so this matches the usual 1 MB socket buffer.
	MaxFrameSize = 1 << 20

	// sendQueueSize is the number of outbound frames buffered per client.
	sendQueueSize = 256
)

// Client is one accepted WebSocket connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	// send queues encoded frames for WritePump.
	send chan []byte

	// closed is set once send has been closed; guarded by hub.mu.
	closed bool

	logger zerolog.Logger
}

// NewClient wraps an upgraded connection under the given connection id.
func NewClient(hub *Hub, conn *websocket.Conn, connID string) *Client {
	return &Client{
		id:     connID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
		logger: logx.Component("ws").With().Str("conn_id", connID).Logger(),
	}
}

// ID returns the connection id.
func (c *Client) ID() string {
	return c.id
}

// ReadPump reads frames until the connection fails, forwarding each decoded envelope to
// the hub. On exit it unregisters the client and closes the socket.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(MaxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection closed unexpectedly")
			}
			return
		}

		if messageType != websocket.TextMessage {
			c.logger.Debug().Int("message_type", messageType).Msg("Ignoring non-text frame")
			continue
		}

		var envelope Envelope
		if err := json.Unmarshal(frame, &envelope); err != nil || envelope.Event == "" {
			c.logger.Debug().Err(err).Int("frame_bytes", len(frame)).Msg("Client sent invalid envelope")
			continue
		}

		c.hub.dispatch(c, envelope.Event, envelope.Data)
	}
}

func (c *Client) cleanupOnDisconnect() {
	c.hub.unregisterClient(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump drains the send queue to the socket and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame, or a close frame when the queue was closed.
// It reports whether WritePump should continue.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// trySend queues frame without blocking. Caller holds hub.mu.
func (c *Client) trySend(frame []byte) bool {
	if c.closed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the send queue once. Caller holds hub.mu for writing.
func (c *Client) closeSend() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// closeConn closes the socket, which ends ReadPump and triggers the normal unregister path.
func (c *Client) closeConn() {
	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}
