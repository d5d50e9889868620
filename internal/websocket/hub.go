package websocket

import "github.com/rs/zerolog/log"

// targetedMessage is a message bound for one user's subscribers.
type targetedMessage struct {
	userID  string
	message []byte
}

// Hub maintains the set of active clients and broadcasts activity messages
// to them. The client and subscription maps are owned by the Run loop;
// everything else talks to it through channels.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Inbound messages for a single user's feed.
	broadcastTo chan targetedMessage

	// A map of user IDs to the set of clients subscribed to that user's
	// activity.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		broadcastTo:   make(chan targetedMessage),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			// If the client asked for a user's feed on connect, subscribe it.
			if client.UserID != "" {
				h.addSubscription(client, client.UserID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				// Remove from global clients and any subscriptions
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case tm := <-h.broadcastTo:
			h.sendToUser(tm.userID, tm.message)
		}
	}
}

// BroadcastTo sends a message to all clients subscribed to a user's feed.
// The delivery happens on the Run loop, so callers on request goroutines
// never touch the hub's maps.
func (h *Hub) BroadcastTo(userID string, message []byte) {
	h.broadcastTo <- targetedMessage{userID: userID, message: message}
}

// sendToUser delivers a message to a user's subscribers. Only called from
// the Run loop.
func (h *Hub) sendToUser(userID string, message []byte) {
	for client := range h.subscriptions[userID] {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
			delete(h.subscriptions[userID], client)
		}
	}
}

func (h *Hub) addSubscription(client *Client, userID string) {
	if h.subscriptions[userID] == nil {
		h.subscriptions[userID] = make(map[*Client]bool)
	}
	h.subscriptions[userID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for userID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, userID)
			}
		}
	}
}
