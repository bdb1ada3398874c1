package service

import (
	"context"
	"errors"
	"time"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService backs the operator surface: economy metrics, the settings
// singleton, and cross-user listings.
type AdminService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	catalog      *repository.CatalogRepository
	transactions *repository.TransactionRepository
	settings     *repository.SettingsRepository
	now          func() time.Time
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:           db,
		users:        repository.NewUserRepository(db),
		catalog:      repository.NewCatalogRepository(db),
		transactions: repository.NewTransactionRepository(db),
		settings:     repository.NewSettingsRepository(db),
		now:          time.Now,
	}
}

// Metrics is the operator overview of the economy.
type Metrics struct {
	UserCount      int64          `json:"user_count"`
	TotalGold      int64          `json:"total_gold"`
	TotalUsdCents  int64          `json:"total_usd_cents"`
	NFTCount       int64          `json:"nft_count"`
	AdRewardsToday int64          `json:"ad_rewards_today"`
	TopUsers       []*domain.User `json:"top_users"`
}

func (s *AdminService) GetMetrics(ctx context.Context) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.UserCount, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if m.TotalGold, err = s.transactions.SumGold(ctx); err != nil {
		return nil, err
	}
	if m.TotalUsdCents, err = s.transactions.SumUsdCents(ctx); err != nil {
		return nil, err
	}
	if m.NFTCount, err = s.catalog.CountNFTInstances(ctx); err != nil {
		return nil, err
	}
	if m.AdRewardsToday, err = s.transactions.SumGoldByTypeSince(ctx, domain.TxAdReward, startOfDay(s.now())); err != nil {
		return nil, err
	}
	if m.TopUsers, err = s.users.TopByGold(ctx, 5); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AdminService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}
	return settings, nil
}

// UpdateSettings applies a partial patch. Rates and limits must stay
// positive; a bad patch is rejected before touching the row.
func (s *AdminService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error) {
	if patch.GoldPurchaseRate != nil && *patch.GoldPurchaseRate <= 0 {
		return nil, ErrInvalidInput
	}
	if patch.GoldWithdrawRate != nil && *patch.GoldWithdrawRate <= 0 {
		return nil, ErrInvalidInput
	}
	if patch.AdDailyLimit != nil && *patch.AdDailyLimit < 0 {
		return nil, ErrInvalidInput
	}
	if patch.AdRewardGold != nil && *patch.AdRewardGold < 0 {
		return nil, ErrInvalidInput
	}
	if patch.FarmBaseMultiplier != nil && *patch.FarmBaseMultiplier <= 0 {
		return nil, ErrInvalidInput
	}
	if patch.AdVerificationSecret != nil && *patch.AdVerificationSecret == "" {
		return nil, ErrInvalidInput
	}

	updated, err := s.settings.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}
	return updated, nil
}

func (s *AdminService) ListUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	return s.users.ListRecent(ctx, limit)
}

func (s *AdminService) ListTransactions(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	return s.transactions.ListRecent(ctx, limit)
}
