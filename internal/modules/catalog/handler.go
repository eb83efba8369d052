package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hut/internal/domain/stay"
	"hut/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	hotels := public.Group("/hotels")
	{
		hotels.GET("", h.Search)
		hotels.GET("/:hotelId", h.GetHotel)
		hotels.GET("/:hotelId/availability", h.GetAvailability)
	}
}

// Search handles GET /hotels?destination&minPrice&maxPrice&sort&checkInDate&checkOutDate
func (h *Handler) Search(c *gin.Context) {
	in, out, ok := h.stay(c)
	if !ok {
		return
	}

	f := SearchFilter{
		Destination:  c.Query("destination"),
		Sort:         Sort(c.Query("sort")),
		CheckInDate:  in,
		CheckOutDate: out,
	}
	if v, err := strconv.ParseInt(c.Query("minPrice"), 10, 64); err == nil && v > 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseInt(c.Query("maxPrice"), 10, 64); err == nil && v > 0 {
		f.MaxPrice = v
	}

	res, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetHotel(c *gin.Context) {
	in, out, ok := h.stay(c)
	if !ok {
		return
	}
	page, err := h.service.Hotel(c.Request.Context(), c.Param("hotelId"), in, out)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	in, out, ok := h.stay(c)
	if !ok {
		return
	}
	res, err := h.service.Availability(c.Request.Context(), c.Param("hotelId"), in, out)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) stay(c *gin.Context) (stay.Date, stay.Date, bool) {
	in, out, err := h.service.ResolveStay(c.Query("checkInDate"), c.Query("checkOutDate"))
	if err != nil {
		handleError(c, err)
		return stay.Date{}, stay.Date{}, false
	}
	return in, out, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stay.ErrInvalidStay), errors.Is(err, stay.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_STAY", "Check-out date must be after check-in date.")
	case errors.Is(err, ErrInvalidSort):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown sort order")
	case errors.Is(err, ErrHotelNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found.")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
