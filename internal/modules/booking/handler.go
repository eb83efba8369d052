package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hut/internal/domain"
	"hut/internal/domain/stay"
	"hut/internal/middleware"
	"hut/internal/modules/availability"
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
	customer := middleware.RequireRole(domain.RoleCustomer)

	protected.POST("/bookings", customer, h.Create)
	protected.GET("/bookings/:id", h.Get)
	protected.GET("/bookings/:id/refund-preview", h.RefundPreview)
	protected.POST("/bookings/:id/cancel", customer, h.Cancel)
	protected.GET("/me/bookings", customer, h.ListMine)
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/payments/callback/:provider", h.PaymentCallback)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.CustomerID = middleware.UserID(c)
	req.CallbackURL = callbackURL(c, h.service.provider.Name())

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.service.GetFor(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) RefundPreview(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.service.GetFor(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	r, err := h.service.RefundPreview(ctx, c.Param("id"), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Cancel(c *gin.Context) {
	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"), middleware.UserID(c), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking": b,
		"message": "Booking cancelled successfully.",
	})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListForCustomer(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) PaymentCallback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("tx_ref")
	}
	if strings.TrimSpace(reference) == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing payment reference in callback.")
		return
	}

	query := make(map[string]string, len(c.Request.URL.Query()))
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	bookingID, err := h.service.ConfirmPayment(c.Request.Context(), c.Param("provider"), reference, query)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookingId": bookingID, "paymentStatus": domain.PaymentPaid})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required booking information.")
	case errors.Is(err, stay.ErrInvalidStay), errors.Is(err, stay.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_STAY", "Check-out date must be after check-in date.")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusUnauthorized, "SESSION_INVALID", "Your account session is no longer valid. Please log in again.")
	case errors.Is(err, ErrHotelNotFound):
		response.Error(c, http.StatusNotFound, "HOTEL_NOT_FOUND", "Selected hotel/room no longer exists.")
	case errors.Is(err, availability.ErrSoldOut):
		response.Error(c, http.StatusConflict, "SOLD_OUT", "Selected room category is no longer available for these dates.")
	case errors.Is(err, ErrFraudBlocked):
		response.Error(c, http.StatusForbidden, "FRAUD_BLOCKED",
			"Booking blocked by fraud protection. Contact support on WhatsApp for manual review.")
	case errors.Is(err, ErrPaymentInit):
		response.Error(c, http.StatusBadGateway, "PAYMENT_INIT_FAILED", "Unable to initialize payment. Please try again later.")
	case errors.Is(err, ErrPaymentSessionNotFound):
		response.Error(c, http.StatusNotFound, "PAYMENT_SESSION_NOT_FOUND", "Payment session not found for callback reference.")
	case errors.Is(err, ErrPaymentVerification):
		response.Error(c, http.StatusPaymentRequired, "PAYMENT_VERIFICATION_FAILED",
			"Payment verification failed. You can retry payment from your booking page.")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found.")
	case errors.Is(err, ErrAlreadyCancelled):
		response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Booking has already been cancelled.")
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Only confirmed bookings can be cancelled online.")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}

func callbackURL(c *gin.Context, provider string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return fmt.Sprintf("%s://%s/api/v1/payments/callback/%s", scheme, c.Request.Host, provider)
}
