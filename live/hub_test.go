package live

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func clientsIn(h *Hub, room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func TestBroadcastReachesRoomOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	inRoom := NewClient(hub, nil, Room(1))
	otherRoom := NewClient(hub, nil, Room(2))
	hub.Register <- inRoom
	hub.Register <- otherRoom
	waitFor(t, func() bool { return clientsIn(hub, Room(1)) == 1 && clientsIn(hub, Room(2)) == 1 })

	hub.BroadcastToRoom(Room(1), TypeMatchUpdated, map[string]int{"id": 4})

	select {
	case raw := <-inRoom.Send:
		var msg struct {
			Type    string         `json:"type"`
			RoomID  string         `json:"room_id"`
			Payload map[string]int `json:"payload"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != TypeMatchUpdated || msg.RoomID != "tournament_1" || msg.Payload["id"] != 4 {
			t.Errorf("message = %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}

	select {
	case <-otherRoom.Send:
		t.Fatal("message leaked to another room")
	default:
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	c := NewClient(hub, nil, Room(3))
	hub.Register <- c
	hub.Unregister <- c
	waitFor(t, func() bool { return clientsIn(hub, Room(3)) == 0 })

	if _, ok := <-c.Send; ok {
		t.Fatal("Send still open after unregister")
	}
	hub.BroadcastToRoom(Room(3), TypeResultSaved, nil)
}

func TestShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := NewClient(hub, nil, Room(5))
	hub.Register <- c
	cancel()
	<-stopped

	if _, ok := <-c.Send; ok {
		t.Fatal("Send still open after shutdown")
	}
}

func TestJoinAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	if !hub.Join(NewClient(hub, nil, Room(6))) {
		t.Fatal("Join() = false on a running hub")
	}
	cancel()
	<-stopped

	joined := make(chan bool, 1)
	go func() { joined <- hub.Join(NewClient(hub, nil, Room(6))) }()
	select {
	case ok := <-joined:
		if ok {
			t.Error("Join() = true after shutdown")
		}
	case <-time.After(time.Second):
		t.Fatal("Join() blocked after shutdown")
	}
}
