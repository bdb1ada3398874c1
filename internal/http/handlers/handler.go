package handlers

import (
	"errors"
	"net/http"

	"aurora_backend/internal/logger"
	"aurora_backend/internal/service"
	"aurora_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB            *pgxpool.Pool
	AdminPassword string

	Feed    *ws.Feed
	Ledger  *service.LedgerService
	Account *service.AccountService
	Wallet  *service.WalletService
	Farm    *service.FarmService
	Shop    *service.ShopService
	Box     *service.BoxService
	Battle  *service.BattleService
	Ads     *service.AdsService
	Player  *service.PlayerService
	Admin   *service.AdminService
}

func NewHandler(db *pgxpool.Pool, adminPassword string) *Handler {
	feed := ws.NewFeed()
	ledger := service.NewLedgerService(db, feed)
	farm := service.NewFarmService(db, ledger)
	ads := service.NewAdsService(db, ledger)
	return &Handler{
		DB:            db,
		AdminPassword: adminPassword,
		Feed:          feed,
		Ledger:        ledger,
		Account:       service.NewAccountService(db),
		Wallet:        service.NewWalletService(db, ledger),
		Farm:          farm,
		Shop:          service.NewShopService(db, ledger),
		Box:           service.NewBoxService(db, ledger),
		Battle:        service.NewBattleService(db, ledger),
		Ads:           ads,
		Player:        service.NewPlayerService(db, farm, ads, ledger),
		Admin:         service.NewAdminService(db),
	}
}

func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// serviceError translates service sentinels into HTTP responses with a
// stable machine-readable code. Unknown errors become a logged 500.
func serviceError(c *gin.Context, err error) {
	type mapping struct {
		status int
		code   string
	}
	known := []struct {
		err error
		m   mapping
	}{
		{service.ErrUserNotFound, mapping{http.StatusNotFound, "USER_NOT_FOUND"}},
		{service.ErrUsernameTaken, mapping{http.StatusConflict, "USERNAME_TAKEN"}},
		{service.ErrInvalidAmount, mapping{http.StatusBadRequest, "INVALID_AMOUNT"}},
		{service.ErrInvalidInput, mapping{http.StatusBadRequest, "INVALID_INPUT"}},
		{service.ErrInsufficientGold, mapping{http.StatusBadRequest, "INSUFFICIENT_GOLD"}},
		{service.ErrInsufficientUsd, mapping{http.StatusBadRequest, "INSUFFICIENT_USD"}},
		{service.ErrInsufficientEnergy, mapping{http.StatusBadRequest, "INSUFFICIENT_ENERGY"}},
		{service.ErrInsufficientFunds, mapping{http.StatusBadRequest, "INSUFFICIENT_FUNDS"}},
		{service.ErrTemplateNotFound, mapping{http.StatusNotFound, "TEMPLATE_NOT_FOUND"}},
		{service.ErrAlreadyOwned, mapping{http.StatusConflict, "ALREADY_OWNED"}},
		{service.ErrNothingToClaim, mapping{http.StatusBadRequest, "NOTHING_TO_CLAIM"}},
		{service.ErrDailyLimitReached, mapping{http.StatusTooManyRequests, "DAILY_LIMIT_REACHED"}},
		{service.ErrInvalidSignature, mapping{http.StatusBadRequest, "INVALID_SIGNATURE"}},
		{service.ErrAdNotFound, mapping{http.StatusNotFound, "AD_NOT_FOUND"}},
		{service.ErrAlreadyRedeemed, mapping{http.StatusConflict, "ALREADY_REDEEMED"}},
		{service.ErrSettingsMissing, mapping{http.StatusInternalServerError, "SETTINGS_MISSING"}},
	}
	for _, k := range known {
		if errors.Is(err, k.err) {
			c.JSON(k.m.status, gin.H{"error": err.Error(), "code": k.m.code})
			return
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "NOT_FOUND"})
		return
	}
	logger.Error("request failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "INTERNAL"})
}
