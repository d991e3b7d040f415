package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	sendBufferSize = 256
)

// UserClient is one realtime connection. A user may hold several.
type UserClient struct {
	Id     string
	UserId string
	Role   string

	// Conversation is the conversation room this connection currently
	// follows. Only the connection's read goroutine touches it.
	Conversation string

	hub    IHub
	conn   *websocket.Conn
	send   chan []byte
	logger zerolog.Logger

	// guarded by the hub mutex
	rooms  map[string]struct{}
	closed bool
}

func NewClient(userId, role string, hub IHub, conn *websocket.Conn, logger zerolog.Logger) *UserClient {
	id := uuid.New().String()
	return &UserClient{
		Id:     id,
		UserId: userId,
		Role:   role,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]struct{}),
		logger: logger.With().Str("conn_id", id).Str("user_id", userId).Logger(),
	}
}

// ReadPump hands every inbound frame to handle until the connection fails,
// then unregisters the client.
func (c *UserClient) ReadPump(handle func(data []byte)) {
	defer func() {
		c.hub.UnregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		handle(data)
	}
}

// WritePump drains the send buffer to the socket and keeps the connection
// alive with pings. It exits when the hub closes the buffer.
func (c *UserClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug().Err(err).Msg("websocket write failed")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
