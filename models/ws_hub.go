package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub tracks connected dashboard clients. Its maps are owned by the
// goroutine running HubService.Run.
type Hub struct {
	Clients     map[*Client]bool
	Broadcast   chan Envelope
	Direct      chan Directed
	Register    chan *Client
	Unregister  chan *Client
	UserClients map[uint][]*Client
	// Done is closed once the hub stops running.
	Done chan struct{}
}

type Client struct {
	ID      string
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	UserID  uint
	IsAdmin bool
}

// Envelope is a serialized message addressed to admins and to UserIDs.
type Envelope struct {
	UserIDs []uint
	Payload []byte
}

func (e Envelope) AddressedTo(userID uint) bool {
	for _, id := range e.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Directed is a serialized reply for a single client.
type Directed struct {
	Client  *Client
	Payload []byte
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:     make(map[*Client]bool),
		Broadcast:   make(chan Envelope, 256),
		Direct:      make(chan Directed, 64),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		UserClients: make(map[uint][]*Client),
		Done:        make(chan struct{}),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, isAdmin bool) *Client {
	return &Client{
		ID:      uuid.New().String(),
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		UserID:  userID,
		IsAdmin: isAdmin,
	}
}
