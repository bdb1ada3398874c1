package service

import (
	"context"
	"errors"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/economy"
	"aurora_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletService converts between GOLD and the USD balance. Purchases and
// withdrawals are internal ledger entries; no real funds move here.
type WalletService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	settings *repository.SettingsRepository
	ledger   *LedgerService
}

func NewWalletService(db *pgxpool.Pool, ledger *LedgerService) *WalletService {
	return &WalletService{
		db:       db,
		users:    repository.NewUserRepository(db),
		settings: repository.NewSettingsRepository(db),
		ledger:   ledger,
	}
}

// PurchaseGold credits GOLD for a USD amount at the purchase rate.
func (s *WalletService) PurchaseGold(ctx context.Context, userID, usdCents int64) (int64, *domain.User, error) {
	if usdCents <= 0 {
		return 0, nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.users.GetForUpdate(ctx, tx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, err
	}

	settings, err := s.settings.GetTx(ctx, tx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrSettingsMissing
		}
		return 0, nil, err
	}

	gold, err := economy.UsdCentsToGold(usdCents, settings.GoldPurchaseRate)
	if err != nil {
		return 0, nil, err
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     gold,
		UsdValueCents: usdCents,
		Type:          domain.TxPurchaseGold,
		Note:          "Gold purchase via dashboard",
	})
	if err != nil {
		return 0, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, nil, err
	}
	s.ledger.Announce(txRecord)

	return gold, user, nil
}

// WithdrawGold converts GOLD back to USD at the withdraw rate. The check
// and the decrement run against a row locked FOR UPDATE inside one
// transaction, so concurrent spends cannot overdraw either balance; the
// ledger's conditional update remains the final backstop.
func (s *WalletService) WithdrawGold(ctx context.Context, userID, gold int64) (int64, *domain.User, error) {
	if gold <= 0 {
		return 0, nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := s.users.GetForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, err
	}

	settings, err := s.settings.GetTx(ctx, tx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, ErrSettingsMissing
		}
		return 0, nil, err
	}

	usdCents, err := economy.GoldToUsdCents(gold, settings.GoldWithdrawRate)
	if err != nil {
		return 0, nil, err
	}

	if locked.GoldBalance < gold {
		return 0, nil, ErrInsufficientGold
	}
	if locked.UsdCents < usdCents {
		return 0, nil, ErrInsufficientUsd
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     -gold,
		UsdDeltaCents: -usdCents,
		UsdValueCents: usdCents,
		Type:          domain.TxWithdrawGold,
		Note:          "Withdrawal request",
	})
	if err != nil {
		return 0, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, nil, err
	}
	s.ledger.Announce(txRecord)

	return usdCents, user, nil
}
