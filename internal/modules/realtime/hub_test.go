package realtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := gin.New()
	NewHandler(hub).RegisterRoutes(r.Group("/api/v1"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, hotelID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/hotels/" + hotelID + "/availability/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestHub_BroadcastsToHotelWatchers(t *testing.T) {
	hub, srv := newServer(t)

	lagoon := dial(t, srv, "h1")
	other := dial(t, srv, "h2")
	assert.Equal(t, EventConnected, readEvent(t, lagoon).Type)
	assert.Equal(t, EventConnected, readEvent(t, other).Type)

	hub.AvailabilityChanged("h1", "b1")

	ev := readEvent(t, lagoon)
	assert.Equal(t, EventAvailabilityUpdate, ev.Type)
	assert.Equal(t, "h1", ev.HotelID)
	assert.Equal(t, "b1", ev.BookingID)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "h2 watcher must not receive h1 events")
}

func TestHub_SubscribeToAnotherHotel(t *testing.T) {
	hub, srv := newServer(t)

	conn := dial(t, srv, "h1")
	readEvent(t, conn)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "hotelId": "h3"}))

	require.Eventually(t, func() bool { return hub.Subscribers("h3") == 1 }, 2*time.Second, 5*time.Millisecond)
	hub.AvailabilityChanged("h3", "")
	assert.Equal(t, "h3", readEvent(t, conn).HotelID)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv := newServer(t)

	conn := dial(t, srv, "h1")
	readEvent(t, conn)
	assert.Equal(t, 1, hub.Subscribers("h1"))

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("h1") == 0 }, 2*time.Second, 5*time.Millisecond)

	// broadcasting with nobody listening is a no-op
	hub.AvailabilityChanged("h1", "b1")
}
