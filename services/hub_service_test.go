package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"blogapi/models"
)

func receive(t *testing.T, client *models.Client) models.WSMessage {
	t.Helper()
	select {
	case payload, ok := <-client.Send:
		if !ok {
			t.Fatalf("client %d channel closed", client.UserID)
		}
		var msg models.WSMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("client %d received nothing", client.UserID)
	}
	return models.WSMessage{}
}

func expectSilence(t *testing.T, client *models.Client) {
	t.Helper()
	select {
	case payload := <-client.Send:
		t.Fatalf("client %d unexpectedly received %s", client.UserID, payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRoutesEventsToAdminsAndOwners(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hubService := NewHubService()
	go hubService.Run(ctx)

	hub := hubService.GetHub()
	admin := models.NewClient(hub, nil, 1, true)
	owner := models.NewClient(hub, nil, 2, false)
	other := models.NewClient(hub, nil, 3, false)
	for _, c := range []*models.Client{admin, owner, other} {
		if !hubService.Register(c) {
			t.Fatalf("hub refused client")
		}
	}

	hubService.Notify(EventPostCreated, map[string]uint{"id": 7}, owner.UserID)

	if msg := receive(t, admin); msg.Type != EventPostCreated {
		t.Fatalf("admin got %q", msg.Type)
	}
	if msg := receive(t, owner); msg.Type != EventPostCreated {
		t.Fatalf("owner got %q", msg.Type)
	}
	expectSilence(t, other)

	hubService.Reply(other, models.WSMessage{Type: "client_connected"})
	if msg := receive(t, other); msg.Type != "client_connected" {
		t.Fatalf("reply got %q", msg.Type)
	}

	cancel()
	select {
	case <-hub.Done:
	case <-time.After(2 * time.Second):
		t.Fatalf("hub did not stop")
	}
	if _, ok := <-admin.Send; ok {
		t.Fatalf("client channels should be closed on shutdown")
	}
	if hubService.Register(models.NewClient(hub, nil, 4, false)) {
		t.Fatalf("stopped hub accepted a client")
	}
	hubService.Unregister(owner)
}
