package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/economy"
	"aurora_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SignAdToken computes the HMAC-SHA256 signature handed to the client
// alongside a fresh ad token. The client replays it to the network SDK
// without ever holding the secret.
func SignAdToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyAdToken checks a claimed signature in constant time.
func VerifyAdToken(token, signature, secret string) bool {
	expected := SignAdToken(token, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// AdsService issues signed one-time ad reward tokens and redeems them.
// Each token moves ISSUED -> CONSUMED exactly once; the daily quota
// counts consumed views only.
type AdsService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	adViews  *repository.AdViewRepository
	settings *repository.SettingsRepository
	ledger   *LedgerService
	now      func() time.Time
}

func NewAdsService(db *pgxpool.Pool, ledger *LedgerService) *AdsService {
	return NewAdsServiceWithClock(db, ledger, time.Now)
}

func NewAdsServiceWithClock(db *pgxpool.Pool, ledger *LedgerService, now func() time.Time) *AdsService {
	return &AdsService{
		db:       db,
		users:    repository.NewUserRepository(db),
		adViews:  repository.NewAdViewRepository(db),
		settings: repository.NewSettingsRepository(db),
		ledger:   ledger,
		now:      now,
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartResult is handed to the client to drive the ad flow.
type StartResult struct {
	Token      string   `json:"token"`
	Signature  string   `json:"signature"`
	RewardGold int64    `json:"reward_gold"`
	Remaining  int      `json:"remaining"`
	Networks   []string `json:"allowed_networks"`
}

// Start issues a fresh signed token unless the daily quota is spent.
// The reward amount is snapshotted onto the view at issuance.
func (s *AdsService) Start(ctx context.Context, userID int64) (*StartResult, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}

	consumedToday, err := s.adViews.CountConsumedSince(ctx, userID, startOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	if consumedToday >= settings.AdDailyLimit {
		return nil, ErrDailyLimitReached
	}

	view := &domain.AdView{
		UserID:     userID,
		Token:      uuid.NewString(),
		RewardGold: settings.AdRewardGold,
	}
	if err := s.adViews.Create(ctx, view); err != nil {
		return nil, err
	}

	return &StartResult{
		Token:      view.Token,
		Signature:  SignAdToken(view.Token, settings.AdVerificationSecret),
		RewardGold: view.RewardGold,
		Remaining:  settings.AdDailyLimit - consumedToday,
		Networks:   domain.AdNetworks,
	}, nil
}

// CompleteResult echoes the credited reward.
type CompleteResult struct {
	RewardGold int64        `json:"reward_gold"`
	UsdCents   int64        `json:"usd_cents"`
	User       *domain.User `json:"user"`
}

// Complete redeems a token. The consumed flag flips via compare-and-set,
// so two racing completions of one token credit exactly once; the loser
// gets ErrAlreadyRedeemed. The quota is re-checked here against a burst
// of concurrently started views.
func (s *AdsService) Complete(ctx context.Context, userID int64, token, signature, network string) (*CompleteResult, error) {
	if token == "" || signature == "" {
		return nil, ErrInvalidInput
	}
	if network != "" && !domain.KnownAdNetwork(network) {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.users.GetForUpdate(ctx, tx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	settings, err := s.settings.GetTx(ctx, tx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}

	if !VerifyAdToken(token, signature, settings.AdVerificationSecret) {
		return nil, ErrInvalidSignature
	}

	view, err := s.adViews.GetByToken(ctx, tx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	if view.UserID != userID {
		return nil, ErrAdNotFound
	}
	if view.Consumed {
		return nil, ErrAlreadyRedeemed
	}

	consumedToday, err := s.adViews.CountConsumedSinceTx(ctx, tx, userID, startOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	if consumedToday >= settings.AdDailyLimit {
		return nil, ErrDailyLimitReached
	}

	consumed, err := s.adViews.Consume(ctx, tx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyRedeemed
		}
		return nil, err
	}

	usdCents, err := economy.GoldToUsdCents(consumed.RewardGold, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     consumed.RewardGold,
		UsdDeltaCents: usdCents,
		UsdValueCents: usdCents,
		Type:          domain.TxAdReward,
		Meta:          map[string]interface{}{"token": token, "network": network},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(txRecord)

	return &CompleteResult{RewardGold: consumed.RewardGold, UsdCents: usdCents, User: user}, nil
}

// ViewsToday returns the consumed count for the player state endpoint.
func (s *AdsService) ViewsToday(ctx context.Context, userID int64) (int, error) {
	return s.adViews.CountConsumedSince(ctx, userID, startOfDay(s.now()))
}
