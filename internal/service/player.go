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

// PlayerService assembles the read-only dashboard aggregate.
type PlayerService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	catalog  *repository.CatalogRepository
	settings *repository.SettingsRepository
	farm     *FarmService
	ads      *AdsService
	ledger   *LedgerService
}

func NewPlayerService(db *pgxpool.Pool, farm *FarmService, ads *AdsService, ledger *LedgerService) *PlayerService {
	return &PlayerService{
		db:       db,
		users:    repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		settings: repository.NewSettingsRepository(db),
		farm:     farm,
		ads:      ads,
		ledger:   ledger,
	}
}

// PlayerState is everything the dashboard renders in one request.
type PlayerState struct {
	User         *domain.User              `json:"user"`
	NFTs         []domain.NFTInstance      `json:"nfts"`
	Boosts       []domain.BoostInstance    `json:"boosts"`
	Cosmetics    []domain.CosmeticInstance `json:"cosmetics"`
	Settings     *domain.Settings          `json:"settings"`
	Farm         economy.FarmAccrual       `json:"farm"`
	AdViewsToday int                       `json:"ad_views_today"`
	Transactions []*domain.Transaction     `json:"transactions"`
}

func (s *PlayerService) State(ctx context.Context, userID int64) (*PlayerState, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}

	nfts, err := s.catalog.ListUserNFTs(ctx, userID)
	if err != nil {
		return nil, err
	}
	boosts, err := s.catalog.ListUserBoosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	cosmetics, err := s.catalog.ListUserCosmetics(ctx, userID)
	if err != nil {
		return nil, err
	}

	farm, err := s.farm.projectionWithSettings(ctx, user, settings)
	if err != nil {
		return nil, err
	}

	adViewsToday, err := s.ads.ViewsToday(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.ledger.History(ctx, userID, 20)
	if err != nil {
		return nil, err
	}

	return &PlayerState{
		User:         user,
		NFTs:         nfts,
		Boosts:       boosts,
		Cosmetics:    cosmetics,
		Settings:     settings,
		Farm:         farm,
		AdViewsToday: adViewsToday,
		Transactions: transactions,
	}, nil
}
