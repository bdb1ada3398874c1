package handlers

import (
	"net/http"

	"aurora_backend/internal/economy"

	"github.com/gin-gonic/gin"
)

type PurchaseGoldRequest struct {
	AmountUsd float64 `json:"amount_usd" binding:"required,gt=0"`
}

type WithdrawRequest struct {
	Gold int64 `json:"gold" binding:"required,min=1"`
}

// PurchaseGold converts a USD payment into gold at the configured rate.
// Dollars only exist at this boundary; everything below works in cents.
func (h *Handler) PurchaseGold(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req PurchaseGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	usdCents := economy.DollarsToCents(req.AmountUsd)
	gold, user, err := h.Wallet.PurchaseGold(c.Request.Context(), userID, usdCents)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gold_credited": gold,
		"user":          user,
	})
}

// Withdraw converts gold back to a USD payout at the withdraw rate.
func (h *Handler) Withdraw(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	usdCents, user, err := h.Wallet.WithdrawGold(c.Request.Context(), userID, req.Gold)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usd_paid_out": float64(usdCents) / 100,
		"user":         user,
	})
}
