package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdCompleteRequest struct {
	Token     string `json:"token" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Network   string `json:"network"`
}

// AdStart issues a signed one-time token for an ad session.
func (h *Handler) AdStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	result, err := h.Ads.Start(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdComplete redeems a signed token and credits the reward once.
func (h *Handler) AdComplete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req AdCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Ads.Complete(c.Request.Context(), userID, req.Token, req.Signature, req.Network)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
