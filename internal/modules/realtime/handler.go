package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hut/internal/pkg/response"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/hotels/:hotelId/availability/ws", h.Watch)
}

// Watch upgrades to a websocket that receives availability_update events
// for the hotel in the path.
func (h *Handler) Watch(c *gin.Context) {
	hotelID := c.Param("hotelId")
	if hotelID == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_HOTEL", "Hotel id is required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.hub.ServeWS(conn, hotelID)
}
