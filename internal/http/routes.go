package http

import (
	"aurora_backend/internal/config"
	"aurora_backend/internal/http/handlers"
	"aurora_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, cfg.AdminPassword)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth (stricter per-IP window)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// Player state and ledger
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/me/transactions", middleware.JWT(), h.History)

	// Money-moving endpoints get a per-user limiter on top
	econRL := middleware.EconomyRateLimit(cfg.EconomyRateLimit, cfg.EconomyRateWindow)

	// Wallet
	v1.POST("/wallet/purchase", middleware.JWT(), econRL, h.PurchaseGold)
	v1.POST("/wallet/withdraw", middleware.JWT(), econRL, h.Withdraw)

	// Farm
	v1.GET("/farm", middleware.JWT(), h.FarmStatus)
	v1.POST("/farm/claim", middleware.JWT(), econRL, h.FarmClaim)

	// Shop catalog + purchases
	v1.GET("/shop/nfts", h.ListNFTs)
	v1.GET("/shop/boosts", h.ListBoosts)
	v1.GET("/shop/cosmetics", h.ListCosmetics)
	v1.POST("/shop/nfts/:id/buy", middleware.JWT(), econRL, h.BuyNFT)
	v1.POST("/shop/boosts/:id/buy", middleware.JWT(), econRL, h.BuyBoost)
	v1.POST("/shop/cosmetics/:id/buy", middleware.JWT(), econRL, h.BuyCosmetic)

	// Energy
	v1.GET("/energy/packages", h.EnergyPackages)
	v1.POST("/energy/buy", middleware.JWT(), econRL, h.BuyEnergy)

	// Loot boxes
	v1.GET("/boxes", h.BoxConfigs)
	v1.POST("/boxes/open", middleware.JWT(), econRL, h.OpenBox)

	// Battles
	v1.GET("/battles/modes", h.BattleModes)
	v1.GET("/battles/recent", h.RecentBattles)
	v1.POST("/battles/enter", middleware.JWT(), econRL, h.EnterBattle)

	// Rewarded ads
	v1.POST("/ads/start", middleware.JWT(), h.AdStart)
	v1.POST("/ads/complete", middleware.JWT(), econRL, h.AdComplete)

	// Admin
	v1.POST("/admin/login", authRL, h.AdminLogin)
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminJWT())
	{
		admin.GET("/metrics", h.AdminMetrics)
		admin.GET("/settings", h.AdminGetSettings)
		admin.PATCH("/settings", h.AdminUpdateSettings)
		admin.GET("/users", h.AdminUsers)
		admin.GET("/transactions", h.AdminTransactions)
		admin.GET("/live", h.AdminLive)
	}
}
