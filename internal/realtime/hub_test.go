package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"callcrm_backend/platform/logger"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.New("test"))
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func subscribe(t *testing.T, conn *websocket.Conn, room string) {
	t.Helper()
	if err := conn.WriteJSON(command{Action: "subscribe", Room: room}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env
}

func TestBroadcastReachesSubscribedClients(t *testing.T) {
	hub, server := newTestHub(t)
	conn := dial(t, server)
	waitForClients(t, hub, 1)
	subscribe(t, conn, RoomLeads)

	// The subscribe command is handled by the read pump; give it a moment.
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast(RoomLeads, "lead:created", map[string]string{"business_name": "John Smith Plumbing"})

	env := readEnvelope(t, conn)
	if env.Event != "lead:created" {
		t.Errorf("event = %q, want lead:created", env.Event)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["business_name"] != "John Smith Plumbing" {
		t.Errorf("data = %v", env.Data)
	}
}

func TestBroadcastSkipsOtherRooms(t *testing.T) {
	hub, server := newTestHub(t)
	conn := dial(t, server)
	waitForClients(t, hub, 1)
	subscribe(t, conn, RoomCampaigns)
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(RoomLeads, "lead:created", map[string]string{"id": "x"})
	hub.Broadcast(RoomCampaigns, "campaign:created", map[string]string{"name": "Q4 Push"})

	env := readEnvelope(t, conn)
	if env.Event != "campaign:created" {
		t.Errorf("first delivered event = %q, want campaign:created", env.Event)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub, server := newTestHub(t)
	conn := dial(t, server)
	waitForClients(t, hub, 1)
	subscribe(t, conn, RoomCallLogs)
	time.Sleep(50 * time.Millisecond)

	if err := conn.WriteJSON(command{Action: "unsubscribe", Room: RoomCallLogs}); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(RoomCallLogs, "callLog:created", map[string]string{"id": "x"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected no delivery after unsubscribe")
	}
}

func TestInvalidRoomIsIgnored(t *testing.T) {
	hub, server := newTestHub(t)
	conn := dial(t, server)
	waitForClients(t, hub, 1)
	subscribe(t, conn, "admin")
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(RoomLeads, "lead:created", map[string]string{"id": "x"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected no delivery for an unknown room")
	}
}

func TestClientCountTracksDisconnects(t *testing.T) {
	hub, server := newTestHub(t)
	conn := dial(t, server)
	second := dial(t, server)
	waitForClients(t, hub, 2)

	conn.Close()
	waitForClients(t, hub, 1)
	second.Close()
	waitForClients(t, hub, 0)
}
