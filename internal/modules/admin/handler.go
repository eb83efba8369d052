package admin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hut/internal/domain/stay"
	"hut/internal/middleware"
	"hut/internal/pkg/response"
)

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// RegisterRoutes expects protected to run behind JWTAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/hotels", h.ListHotels)
		admin.POST("/hotels", middleware.PlatformAdminOnly(), h.CreateHotel)
		admin.POST("/hotels/:hotelId/rooms", h.CreateRoom)
		admin.POST("/hotels/:hotelId/subscription/renew", h.RenewPremium)
		admin.GET("/hotels/:hotelId/dashboard", h.Dashboard)
		admin.POST("/hotels/:hotelId/settle", middleware.PlatformAdminOnly(), h.Settle)
		admin.GET("/owner-dashboard", middleware.PlatformAdminOnly(), h.OwnerDashboard)
	}
}

func (h *Handler) ListHotels(c *gin.Context) {
	hotels, err := h.service.ListHotels(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	res, err := h.service.CreateHotel(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), middleware.UserID(c), c.Param("hotelId"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

func (h *Handler) RenewPremium(c *gin.Context) {
	hotel, err := h.service.RenewPremium(c.Request.Context(), middleware.UserID(c), c.Param("hotelId"), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

// Dashboard handles GET /admin/hotels/:hotelId/dashboard?checkInDate&checkOutDate
func (h *Handler) Dashboard(c *gin.Context) {
	now := h.now()
	today := stay.NewDate(now)
	checkIn, checkOut := c.Query("checkInDate"), c.Query("checkOutDate")
	if checkIn == "" {
		checkIn = today.AddDays(1).String()
	}
	if checkOut == "" {
		checkOut = today.AddDays(2).String()
	}
	in, out, _, err := stay.ValidateStrings(checkIn, checkOut)
	if err != nil {
		h.fail(c, err)
		return
	}

	d, err := h.service.HotelDashboard(c.Request.Context(), middleware.UserID(c), c.Param("hotelId"), in, out, now)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Settle(c *gin.Context) {
	res, err := h.service.SettlePayouts(c.Request.Context(), middleware.UserID(c), c.Param("hotelId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) OwnerDashboard(c *gin.Context) {
	d, err := h.service.OwnerDashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this hotel.")
	case errors.Is(err, ErrHotelNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hotel not found.")
	case errors.Is(err, ErrMissingHotelDetails):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Hotel name and bank details are required.")
	case errors.Is(err, ErrIncompleteAdmin):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Provide full hotel admin account details or leave all blank.")
	case errors.Is(err, ErrAdminPasswordShort):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("Admin password must be at least %d characters.", h.service.MinPasswordLength()))
	case errors.Is(err, ErrAdminEmailExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Hotel admin email already exists.")
	case errors.Is(err, ErrInvalidRoom):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Room category, price and units are required.")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hotel details.")
	case errors.Is(err, stay.ErrInvalidStay), errors.Is(err, stay.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_STAY", "Check-out date must be after check-in date.")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process admin request")
	}
}
