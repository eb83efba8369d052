package wallet

import "github.com/gin-gonic/gin"

// RegisterRoutes expects rg to run behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.GetMyWallet)
		wallet.GET("/transactions", h.ListMyTransactions)
		wallet.POST("/topup", h.TopUp)
	}
}
