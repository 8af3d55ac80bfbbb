package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/pour/components"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(msg, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return f
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func testFrame(tick int32) *Frame {
	return &Frame{
		Tick:    tick,
		Width:   480,
		Height:  900,
		Pouring: true,
		StreamX: 240,
		Particles: []components.ParticleView{
			{X: 240, Y: 500, R: 17, Hex: "#f1ab62"},
		},
	}
}

func TestHubSendsLatestOnConnect(t *testing.T) {
	h := NewHub(0)
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	if _, err := h.Publish(testFrame(7)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	conn := dial(t, srv)
	f := readFrame(t, conn)
	if f.Tick != 7 || len(f.Particles) != 1 || f.Particles[0].Hex != "#f1ab62" {
		t.Errorf("frame = %+v", f)
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(0)
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitClients(t, h, 2)

	sent, err := h.Publish(testFrame(42))
	if err != nil || !sent {
		t.Fatalf("publish: sent=%v err=%v", sent, err)
	}

	for i, conn := range []*websocket.Conn{a, b} {
		f := readFrame(t, conn)
		if f.Tick != 42 || f.StreamX != 240 || !f.Pouring {
			t.Errorf("client %d frame = %+v", i, f)
		}
	}
}

func TestHubRateLimit(t *testing.T) {
	h := NewHub(1)

	first, _ := h.Publish(testFrame(1))
	second, _ := h.Publish(testFrame(2))
	if !first || second {
		t.Errorf("sent = %v, %v; want true, false within one interval", first, second)
	}
}

func TestHubClientDisconnect(t *testing.T) {
	h := NewHub(0)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, h, 1)

	conn.Close()
	waitClients(t, h, 0)
}
