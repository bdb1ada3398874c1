package service

import (
	"context"
	"errors"
	"time"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/economy"
	"aurora_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FarmService projects and claims passive GOLD accrual.
type FarmService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	catalog  *repository.CatalogRepository
	settings *repository.SettingsRepository
	ledger   *LedgerService
	now      func() time.Time
}

func NewFarmService(db *pgxpool.Pool, ledger *LedgerService) *FarmService {
	return NewFarmServiceWithClock(db, ledger, time.Now)
}

// NewFarmServiceWithClock injects the clock for tests.
func NewFarmServiceWithClock(db *pgxpool.Pool, ledger *LedgerService, now func() time.Time) *FarmService {
	return &FarmService{
		db:       db,
		users:    repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		settings: repository.NewSettingsRepository(db),
		ledger:   ledger,
		now:      now,
	}
}

// Projection computes the pending accrual without mutating anything.
func (s *FarmService) Projection(ctx context.Context, user *domain.User) (economy.FarmAccrual, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return economy.FarmAccrual{}, ErrSettingsMissing
		}
		return economy.FarmAccrual{}, err
	}
	return s.projectionWithSettings(ctx, user, settings)
}

func (s *FarmService) projectionWithSettings(ctx context.Context, user *domain.User, settings *domain.Settings) (economy.FarmAccrual, error) {
	nfts, err := s.catalog.ListUserNFTs(ctx, user.ID)
	if err != nil {
		return economy.FarmAccrual{}, err
	}
	boosts, err := s.catalog.ListUserBoosts(ctx, user.ID)
	if err != nil {
		return economy.FarmAccrual{}, err
	}

	return economy.CalculateFarmAccrual(nfts, boosts, user.FarmLastClaimedAt,
		settings.FarmBaseMultiplier, s.now()), nil
}

// projectionLocked reads the instance listings through the claim's own
// transaction, so the accrual is computed from the same snapshot the
// claim is about to reset.
func (s *FarmService) projectionLocked(ctx context.Context, dbTx pgx.Tx, user *domain.User, settings *domain.Settings) (economy.FarmAccrual, error) {
	nfts, err := s.catalog.ListUserNFTsTx(ctx, dbTx, user.ID)
	if err != nil {
		return economy.FarmAccrual{}, err
	}
	boosts, err := s.catalog.ListUserBoostsTx(ctx, dbTx, user.ID)
	if err != nil {
		return economy.FarmAccrual{}, err
	}

	return economy.CalculateFarmAccrual(nfts, boosts, user.FarmLastClaimedAt,
		settings.FarmBaseMultiplier, s.now()), nil
}

// ClaimResult echoes what the claim credited.
type ClaimResult struct {
	Farm     economy.FarmAccrual `json:"farm"`
	UsdCents int64               `json:"usd_cents"`
	User     *domain.User        `json:"user"`
}

// Claim credits the pending accrual and resets the farm clock. Claims
// for one user serialize on the locked row, so a double-claim computes
// its accrual from the already-reset timestamp and finds nothing.
func (s *FarmService) Claim(ctx context.Context, userID int64) (*ClaimResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := s.users.GetForUpdate(ctx, tx, userID)
	if err != nil {
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

	farm, err := s.projectionLocked(ctx, tx, locked, settings)
	if err != nil {
		return nil, err
	}
	if farm.Gold <= 0 {
		return nil, ErrNothingToClaim
	}

	usdCents, err := economy.GoldToUsdCents(farm.Gold, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	claimedAt := s.now()
	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     farm.Gold,
		UsdDeltaCents: usdCents,
		UsdValueCents: usdCents,
		Type:          domain.TxFarmReward,
		Meta: map[string]interface{}{
			"gold":          farm.Gold,
			"hours":         farm.Hours,
			"minutes":       farm.Minutes,
			"rate_per_hour": farm.RatePerHour,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchFarmClaim(ctx, tx, userID, claimedAt); err != nil {
		return nil, err
	}
	user.FarmLastClaimedAt = claimedAt

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(txRecord)

	return &ClaimResult{Farm: farm, UsdCents: usdCents, User: user}, nil
}
