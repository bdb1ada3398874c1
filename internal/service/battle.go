package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/economy"
	"aurora_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BattleService resolves server-side battles. A battle is created,
// fought and resolved within one request; the entry fee is charged up
// front and the reward is credited only on a win.
type BattleService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	battles  *repository.BattleRepository
	settings *repository.SettingsRepository
	ledger   *LedgerService
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewBattleService(db *pgxpool.Pool, ledger *LedgerService) *BattleService {
	return NewBattleServiceWithRand(db, ledger, economy.NewRand(), time.Now)
}

func NewBattleServiceWithRand(db *pgxpool.Pool, ledger *LedgerService, rng *rand.Rand, now func() time.Time) *BattleService {
	return &BattleService{
		db:       db,
		users:    repository.NewUserRepository(db),
		battles:  repository.NewBattleRepository(db),
		settings: repository.NewSettingsRepository(db),
		ledger:   ledger,
		now:      now,
		rng:      rng,
	}
}

// EnterResult reports the battle outcome to the client.
type EnterResult struct {
	Result domain.BattleResult `json:"result"`
	DidWin bool                `json:"did_win"`
	User   *domain.User        `json:"user"`
}

func (s *BattleService) Enter(ctx context.Context, userID int64, modeKey string) (*EnterResult, error) {
	mode := economy.BattleModeByKey(modeKey)

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

	if locked.GoldBalance < mode.EntryGold {
		return nil, ErrInsufficientGold
	}
	if locked.Energy < mode.EnergyCost {
		return nil, ErrInsufficientEnergy
	}

	entryValue, err := economy.GoldToUsdCents(mode.EntryGold, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}
	rewardValue, err := economy.GoldToUsdCents(mode.RewardGold, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	battle := &domain.Battle{
		Mode:           mode.Key,
		EntryGold:      mode.EntryGold,
		RewardGold:     mode.RewardGold,
		RewardUsdCents: rewardValue,
	}
	if err := s.battles.Create(ctx, tx, battle); err != nil {
		return nil, err
	}

	user, entryRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     -mode.EntryGold,
		EnergyDelta:   -mode.EnergyCost,
		UsdValueCents: entryValue,
		Type:          domain.TxBattleEntry,
		Meta:          map[string]interface{}{"mode": mode.Key},
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	didWin := economy.ResolveBattle(s.rng, mode)
	s.mu.Unlock()

	result := domain.BattleLoss
	var rewardRecord *domain.Transaction
	if didWin {
		result = domain.BattleWin
		user, rewardRecord, err = s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
			UserID:        userID,
			GoldDelta:     mode.RewardGold,
			UsdDeltaCents: rewardValue,
			UsdValueCents: rewardValue,
			Type:          domain.TxBattleReward,
			Meta:          map[string]interface{}{"mode": mode.Key},
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.battles.AddParticipation(ctx, tx, &domain.BattleParticipation{
		BattleID: battle.ID,
		UserID:   userID,
		Result:   result,
	}); err != nil {
		return nil, err
	}
	if err := s.battles.Resolve(ctx, tx, battle.ID, s.now()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(entryRecord)
	s.ledger.Announce(rewardRecord)

	return &EnterResult{Result: result, DidWin: didWin, User: user}, nil
}

// Recent returns the latest battles with participants for display.
func (s *BattleService) Recent(ctx context.Context, limit int) ([]*domain.Battle, map[int64][]domain.BattleParticipation, error) {
	return s.battles.ListRecent(ctx, limit)
}
