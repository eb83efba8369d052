package wallet

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"hut/internal/middleware"
	"hut/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type topUpRequest struct {
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

func (h *Handler) GetMyWallet(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	balance, err := h.service.Balance(ctx, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	txs, err := h.service.Transactions(ctx, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"balance":      balance,
		"transactions": txs,
		"canTopUp":     middleware.Role(c) != "hotel_admin",
	})
}

func (h *Handler) ListMyTransactions(c *gin.Context) {
	txs, err := h.service.Transactions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transactions": txs})
}

func (h *Handler) TopUp(c *gin.Context) {
	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tx, err := h.service.TopUp(c.Request.Context(), middleware.UserID(c), int64(math.Round(req.Amount)), req.Reference)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"transaction": tx,
		"balance":     tx.BalanceAfter,
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidWalletAmount):
		response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", "Top-up amount must be greater than zero.")
	case errors.Is(err, ErrTopUpNotAllowed):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Hotel admins cannot credit virtual wallets.")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Wallet user not found.")
	case errors.Is(err, ErrInsufficientFunds):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_FUNDS", "Insufficient wallet balance.")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Wallet operation failed")
	}
}
