package coordinator

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// maxMessageSize bounds inbound frames; a full card pool fits comfortably.
const maxMessageSize = 65536

// sendBufferSize is the per-client outbound queue. A client that cannot
// drain it is dropped rather than awaited.
const sendBufferSize = 16

// Client is one websocket connection. Its ID doubles as the participant
// identity inside a room. The room field is only touched from the
// coordinator's dispatch goroutine.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan Outbound

	room   string
	closed bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Outbound, sendBufferSize),
	}
}

// ID returns the opaque connection identifier.
func (c *Client) ID() string {
	return c.id
}

// readPump feeds inbound frames into the coordinator until the connection
// drops, then reports the disconnect. Runs on the connection's goroutine.
func (c *Client) readPump(co *Coordinator) {
	defer func() {
		co.reportDisconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}
		co.submit(inboundEvent{client: c, env: env})
	}
}

// writePump drains the send channel onto the socket. Closing the channel
// ends the pump and the connection.
func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
