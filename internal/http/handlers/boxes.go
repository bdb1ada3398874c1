package handlers

import (
	"net/http"

	"aurora_backend/internal/economy"

	"github.com/gin-gonic/gin"
)

type OpenBoxRequest struct {
	Box string `json:"box"`
}

func (h *Handler) BoxConfigs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"boxes": economy.Boxes()})
}

func (h *Handler) OpenBox(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req OpenBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Box.Open(c.Request.Context(), userID, req.Box)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
