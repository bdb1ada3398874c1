package handlers

import (
	"net/http"

	"aurora_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=32"`
	DisplayName string `json:"display_name" binding:"max=64"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Account.Register(c.Request.Context(), req.Username, req.DisplayName)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Account.Login(c.Request.Context(), req.Username)
	if err != nil {
		serviceError(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
