package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID is the opaque connection identifier
	ID string

	// RoomID is the room this connection belongs to
	RoomID string

	// Name is the self-reported display name
	Name string

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, roomID, name string) *Client {
	return &Client{
		Conn:   conn,
		ID:     uuid.New().String(),
		RoomID: roomID,
		Name:   name,
		send:   make(chan interface{}, 256),
		Close:  make(chan string),
	}
}

// Send sends a message to the web client
// Returns false if the client's buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outgoing messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the connection
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.RoomID, c.ID)
}

// Intent is the format we expect from the JS client
type Intent struct {
	Action string `json:"action"`
	RoomID string `json:"roomId,omitempty"`
	Name   string `json:"name,omitempty"`
	Card   string `json:"card,omitempty"`
	Chat   string `json:"chat,omitempty"`
}

// Message is an event as delivered to the web client
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *Intent) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
