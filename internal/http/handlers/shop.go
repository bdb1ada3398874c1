package handlers

import (
	"net/http"
	"strconv"

	"aurora_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNFTs(c *gin.Context) {
	templates, err := repository.NewCatalogRepository(h.DB).ListNFTTemplates(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nfts": templates})
}

func (h *Handler) ListBoosts(c *gin.Context) {
	templates, err := repository.NewCatalogRepository(h.DB).ListBoostTemplates(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boosts": templates})
}

func (h *Handler) ListCosmetics(c *gin.Context) {
	items, err := repository.NewCatalogRepository(h.DB).ListCosmeticItems(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cosmetics": items})
}

func templateIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) BuyNFT(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := templateIDParam(c)
	if !ok {
		return
	}

	user, err := h.Shop.BuyNFT(c.Request.Context(), userID, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) BuyBoost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := templateIDParam(c)
	if !ok {
		return
	}

	user, err := h.Shop.BuyBoost(c.Request.Context(), userID, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) BuyCosmetic(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := templateIDParam(c)
	if !ok {
		return
	}

	user, err := h.Shop.BuyCosmetic(c.Request.Context(), userID, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
