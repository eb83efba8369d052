package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	EventConnected          = "connected"
	EventAvailabilityUpdate = "availability_update"
)

// Event is pushed to every client watching HotelID.
type Event struct {
	Type      string    `json:"type"`
	HotelID   string    `json:"hotelId"`
	BookingID string    `json:"bookingId,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type connection struct {
	conn   *websocket.Conn
	send   chan []byte
	hotels map[string]bool
}

// Hub fans availability changes out to websocket clients grouped by hotel.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	log         *slog.Logger
	now         func() time.Time
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
		now:         time.Now,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// AvailabilityChanged tells watchers of hotelID to refresh their counts.
func (h *Hub) AvailabilityChanged(hotelID, bookingID string) {
	h.Broadcast(Event{
		Type:      EventAvailabilityUpdate,
		HotelID:   hotelID,
		BookingID: bookingID,
		UpdatedAt: h.now().UTC(),
	})
}

// Broadcast never blocks; clients whose buffer is full miss the event.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.hotels[event.HotelID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("realtime client too slow, event dropped", "hotelId", event.HotelID)
		}
	}
}

// Subscribers counts the clients currently watching hotelID.
func (h *Hub) Subscribers(hotelID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.connections {
		if c.hotels[hotelID] {
			n++
		}
	}
	return n
}

// ServeWS registers conn for hotelID and runs its read/write loops until the
// client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, hotelID string) {
	c := &connection{
		conn:   conn,
		send:   make(chan []byte, 64),
		hotels: map[string]bool{hotelID: true},
	}
	h.register(c)

	if hello, err := json.Marshal(Event{Type: EventConnected, HotelID: hotelID, UpdatedAt: h.now().UTC()}); err == nil {
		c.send <- hello
	}

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var req struct {
			Type    string `json:"type"`
			HotelID string `json:"hotelId"`
		}
		if err := json.Unmarshal(msg, &req); err != nil || req.HotelID == "" {
			continue
		}

		switch req.Type {
		case "subscribe":
			h.mu.Lock()
			c.hotels[req.HotelID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.hotels, req.HotelID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
