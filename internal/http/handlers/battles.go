package handlers

import (
	"net/http"
	"strconv"

	"aurora_backend/internal/economy"

	"github.com/gin-gonic/gin"
)

type EnterBattleRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) BattleModes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modes": economy.BattleModes()})
}

func (h *Handler) EnterBattle(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req EnterBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Battle.Enter(c.Request.Context(), userID, req.Mode)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecentBattles lists the latest resolved battles with their participants.
func (h *Handler) RecentBattles(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	battles, participants, err := h.Battle.Recent(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": battles, "participants": participants})
}
