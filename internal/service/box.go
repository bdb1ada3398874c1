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

// BoxService resolves loot box purchases. The charge, the drawn reward
// and the ledger entry land in one transaction; the entry's gold amount
// is the net of cost and any gold payout so the ledger replays to the
// exact balance.
type BoxService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	catalog  *repository.CatalogRepository
	settings *repository.SettingsRepository
	ledger   *LedgerService
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewBoxService(db *pgxpool.Pool, ledger *LedgerService) *BoxService {
	return NewBoxServiceWithRand(db, ledger, economy.NewRand(), time.Now)
}

// NewBoxServiceWithRand injects the randomness source and clock for
// deterministic tests.
func NewBoxServiceWithRand(db *pgxpool.Pool, ledger *LedgerService, rng *rand.Rand, now func() time.Time) *BoxService {
	return &BoxService{
		db:       db,
		users:    repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		settings: repository.NewSettingsRepository(db),
		ledger:   ledger,
		now:      now,
		rng:      rng,
	}
}

// OpenResult describes the resolved box for the client.
type OpenResult struct {
	Box    string                 `json:"box"`
	Reward map[string]interface{} `json:"reward"`
	User   *domain.User           `json:"user"`
}

func (s *BoxService) Open(ctx context.Context, userID int64, boxKey string) (*OpenResult, error) {
	box := economy.BoxByKey(boxKey)

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

	if locked.GoldBalance < box.CostGold {
		return nil, ErrInsufficientGold
	}

	costValue, err := economy.GoldToUsdCents(box.CostGold, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	reward := economy.PickReward(s.rng, box.Rewards)
	var rolledGold int64
	if reward.Kind == economy.RewardGold {
		rolledGold = economy.RollGold(s.rng, reward.MinGold, reward.MaxGold)
	}
	s.mu.Unlock()

	entry := LedgerEntry{
		UserID:        userID,
		GoldDelta:     -box.CostGold,
		UsdValueCents: costValue,
		Type:          domain.TxBuyBox,
	}
	summary := map[string]interface{}{"type": string(reward.Kind)}

	switch reward.Kind {
	case economy.RewardGold:
		usdReward, err := economy.GoldToUsdCents(rolledGold, settings.GoldWithdrawRate)
		if err != nil {
			return nil, err
		}
		entry.GoldDelta += rolledGold
		entry.UsdDeltaCents += usdReward
		summary["gold"] = rolledGold
		summary["usd_cents"] = usdReward

	case economy.RewardEnergy:
		entry.EnergyDelta = reward.Energy
		summary["energy"] = reward.Energy

	case economy.RewardNFT:
		template, err := s.catalog.BestNFTTemplateByRarity(ctx, reward.Rarity)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if template != nil {
			if err := s.catalog.CreateNFTInstance(ctx, tx, &domain.NFTInstance{
				OwnerID:    userID,
				TemplateID: template.ID,
			}); err != nil {
				return nil, err
			}
			summary["nft_template_id"] = template.ID
			summary["nft_name"] = template.Name
		} else {
			// No template of this rarity in the catalog: pay the flat
			// fallback instead of failing the already-charged open.
			usdReward, err := economy.GoldToUsdCents(economy.NFTFallbackGold, settings.GoldWithdrawRate)
			if err != nil {
				return nil, err
			}
			entry.GoldDelta += economy.NFTFallbackGold
			entry.UsdDeltaCents += usdReward
			summary["type"] = string(economy.RewardGold)
			summary["gold"] = int64(economy.NFTFallbackGold)
			summary["usd_cents"] = usdReward
			summary["fallback"] = true
		}

	case economy.RewardBoost:
		template, err := s.catalog.StrongestBoostTemplate(ctx)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if template != nil {
			activatedAt := s.now()
			if err := s.catalog.ActivateBoost(ctx, tx, &domain.BoostInstance{
				OwnerID:     userID,
				TemplateID:  template.ID,
				ActivatedAt: activatedAt,
				ExpiresAt:   activatedAt.Add(time.Duration(template.DurationHours) * time.Hour),
			}); err != nil {
				return nil, err
			}
			summary["boost_template_id"] = template.ID
			summary["boost_name"] = template.Name
		}
	}

	entry.Meta = map[string]interface{}{"box": box.Key, "reward": summary}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(txRecord)

	return &OpenResult{Box: box.Key, Reward: summary, User: user}, nil
}
