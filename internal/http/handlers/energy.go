package handlers

import (
	"net/http"

	"aurora_backend/internal/economy"

	"github.com/gin-gonic/gin"
)

type BuyEnergyRequest struct {
	Package string `json:"package"`
}

func (h *Handler) EnergyPackages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packages": economy.EnergyPackages()})
}

func (h *Handler) BuyEnergy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyEnergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, pkg, err := h.Shop.PurchaseEnergy(c.Request.Context(), userID, req.Package)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg, "user": user})
}
