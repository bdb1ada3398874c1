package handlers

import (
	"net/http"

	"aurora_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// FarmStatus returns the pending accrual without claiming it.
func (h *Handler) FarmStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	user, err := repository.NewUserRepository(h.DB).GetByID(ctx, userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	farm, err := h.Farm.Projection(ctx, user)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"farm": farm})
}

// FarmClaim credits the accrued gold and resets the accrual clock.
func (h *Handler) FarmClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	result, err := h.Farm.Claim(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
