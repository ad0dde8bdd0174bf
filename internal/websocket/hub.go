package websocket

import "github.com/rs/zerolog/log"

// targeted is a message addressed to one user or one role audience.
type targeted struct {
	userID  string
	role    string
	payload []byte
}

// Hub maintains the set of active clients and pushes messages to them.
// Clients are keyed by the user they authenticated as, so services can
// target a single recipient or a whole role audience. All map access
// happens on the Run goroutine; targeted sends are funneled through
// channels so request goroutines never touch the maps.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Messages addressed to a single user or a role audience.
	toUser chan targeted
	toRole chan targeted

	// A map of user IDs to the set of that user's connections.
	byUser map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		toUser:     make(chan targeted),
		toRole:     make(chan targeted),
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			if h.byUser[client.UserID] == nil {
				h.byUser[client.UserID] = make(map[*Client]bool)
			}
			h.byUser[client.UserID][client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
		case msg := <-h.toUser:
			for client := range h.byUser[msg.userID] {
				h.deliver(client, msg.payload)
			}
		case msg := <-h.toRole:
			for client := range h.clients {
				if client.HasRole(msg.role) {
					h.deliver(client, msg.payload)
				}
			}
		}
	}
}

// BroadcastToUser sends a message to every connection of a single user.
// Safe to call from any goroutine.
func (h *Hub) BroadcastToUser(userID string, message []byte) {
	h.toUser <- targeted{userID: userID, payload: message}
}

// BroadcastToRole sends a message to every connection whose user holds role.
// Safe to call from any goroutine.
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.toRole <- targeted{role: role, payload: message}
}

// deliver queues a message on a client, dropping the client if its send
// buffer is full. Must run on the Run goroutine.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	if conns, ok := h.byUser[client.UserID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
}
