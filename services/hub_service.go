package services

import (
	"context"
	"encoding/json"
	"log"

	"blogapi/models"
)

// Event types pushed to dashboard clients.
const (
	EventPostCreated     = "post_created"
	EventPostUpdated     = "post_updated"
	EventPostPublished   = "post_published"
	EventPostUnpublished = "post_unpublished"
	EventPostDeleted     = "post_deleted"
	EventCommentCreated  = "comment_created"
	EventCommentUpdated  = "comment_updated"
	EventCommentDeleted  = "comment_deleted"
)

// Notifier delivers an event to every admin and to the users owning the
// affected resource.
type Notifier interface {
	Notify(messageType string, data interface{}, ownerIDs ...uint)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, interface{}, ...uint) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

type HubService struct {
	hub *models.Hub
}

func NewHubService() *HubService {
	return &HubService{hub: models.NewHub()}
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

// Run owns the hub maps until ctx is cancelled; every connected client is
// closed on exit.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.hub.Done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.hub.Clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case envelope := <-h.hub.Broadcast:
			h.deliver(envelope)

		case reply := <-h.hub.Direct:
			if h.hub.Clients[reply.Client] {
				h.send(reply.Client, reply.Payload)
			}
		}
	}
}

// Register hands client to the hub. It reports false once the hub stopped.
func (h *HubService) Register(client *models.Client) bool {
	select {
	case h.hub.Register <- client:
		return true
	case <-h.hub.Done:
		return false
	}
}

func (h *HubService) Unregister(client *models.Client) {
	select {
	case h.hub.Unregister <- client:
	case <-h.hub.Done:
	}
}

// Reply queues msg for a single client.
func (h *HubService) Reply(client *models.Client, msg models.WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return
	}

	select {
	case h.hub.Direct <- models.Directed{Client: client, Payload: payload}:
	case <-h.hub.Done:
	default:
		log.Printf("Dropping %s reply for client %s: queue full", msg.Type, client.ID)
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	h.hub.UserClients[client.UserID] = append(h.hub.UserClients[client.UserID], client)
	log.Printf("Client %s registered for user %d (admin=%t)", client.ID, client.UserID, client.IsAdmin)
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	delete(h.hub.Clients, client)
	close(client.Send)

	if clients, exists := h.hub.UserClients[client.UserID]; exists {
		for i, c := range clients {
			if c == client {
				h.hub.UserClients[client.UserID] = append(clients[:i], clients[i+1:]...)
				break
			}
		}
		if len(h.hub.UserClients[client.UserID]) == 0 {
			delete(h.hub.UserClients, client.UserID)
		}
	}
	log.Printf("Client %s unregistered for user %d", client.ID, client.UserID)
}

func (h *HubService) deliver(envelope models.Envelope) {
	for client := range h.hub.Clients {
		if !client.IsAdmin && !envelope.AddressedTo(client.UserID) {
			continue
		}
		h.send(client, envelope.Payload)
	}
}

// send drops clients that stopped draining their buffer.
func (h *HubService) send(client *models.Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		h.unregisterClient(client)
	}
}

func (h *HubService) Notify(messageType string, data interface{}, ownerIDs ...uint) {
	messageBytes, err := json.Marshal(models.WSMessage{Type: messageType, Data: data})
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return
	}

	select {
	case h.hub.Broadcast <- models.Envelope{UserIDs: ownerIDs, Payload: messageBytes}:
	default:
		log.Printf("Dropping %s event: broadcast queue full", messageType)
	}
}
