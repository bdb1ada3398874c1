package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.AdminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := service.GenerateAdminJWT()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) AdminMetrics(c *gin.Context) {
	metrics, err := h.Admin.GetMetrics(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *Handler) AdminGetSettings(c *gin.Context) {
	settings, err := h.Admin.GetSettings(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) AdminUpdateSettings(c *gin.Context) {
	var patch domain.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	settings, err := h.Admin.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) AdminUsers(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	users, err := h.Admin.ListUsers(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) AdminTransactions(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	txs, err := h.Admin.ListTransactions(c.Request.Context(), limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// AdminLive upgrades to a websocket that streams every committed ledger
// entry as it happens.
func (h *Handler) AdminLive(c *gin.Context) {
	if err := h.Feed.Subscribe(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upgrade failed"})
	}
}
