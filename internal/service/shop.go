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

// ShopService sells catalog items for GOLD: NFTs, boosts, cosmetics and
// energy packages. Every sale is one locked check-then-spend transaction
// that mints the purchased record and appends the ledger entry together.
type ShopService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	catalog  *repository.CatalogRepository
	settings *repository.SettingsRepository
	ledger   *LedgerService
	now      func() time.Time
}

func NewShopService(db *pgxpool.Pool, ledger *LedgerService) *ShopService {
	return NewShopServiceWithClock(db, ledger, time.Now)
}

func NewShopServiceWithClock(db *pgxpool.Pool, ledger *LedgerService, now func() time.Time) *ShopService {
	return &ShopService{
		db:       db,
		users:    repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		settings: repository.NewSettingsRepository(db),
		ledger:   ledger,
		now:      now,
	}
}

// beginPurchase locks the user row and loads settings for a spend.
func (s *ShopService) beginPurchase(ctx context.Context, tx pgx.Tx, userID int64) (*domain.User, *domain.Settings, error) {
	locked, err := s.users.GetForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	settings, err := s.settings.GetTx(ctx, tx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrSettingsMissing
		}
		return nil, nil, err
	}
	return locked, settings, nil
}

// BuyNFT purchases a template copy at its base price.
func (s *ShopService) BuyNFT(ctx context.Context, userID, templateID int64) (*domain.User, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, settings, err := s.beginPurchase(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	template, err := s.catalog.GetNFTTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if locked.GoldBalance < template.BasePriceGold {
		return nil, ErrInsufficientGold
	}

	usdValue, err := economy.GoldToUsdCents(template.BasePriceGold, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.CreateNFTInstance(ctx, tx, &domain.NFTInstance{
		OwnerID:    userID,
		TemplateID: template.ID,
	}); err != nil {
		return nil, err
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     -template.BasePriceGold,
		UsdValueCents: usdValue,
		Type:          domain.TxBuyNFT,
		Meta:          map[string]interface{}{"template_id": template.ID},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(txRecord)
	return user, nil
}

// BuyBoost purchases and immediately activates a boost.
func (s *ShopService) BuyBoost(ctx context.Context, userID, templateID int64) (*domain.User, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, settings, err := s.beginPurchase(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	template, err := s.catalog.GetBoostTemplate(ctx, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if locked.GoldBalance < template.GoldCost {
		return nil, ErrInsufficientGold
	}

	usdValue, err := economy.GoldToUsdCents(template.GoldCost, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	activatedAt := s.now()
	expiresAt := activatedAt.Add(time.Duration(template.DurationHours) * time.Hour)
	if err := s.catalog.ActivateBoost(ctx, tx, &domain.BoostInstance{
		OwnerID:     userID,
		TemplateID:  template.ID,
		ActivatedAt: activatedAt,
		ExpiresAt:   expiresAt,
	}); err != nil {
		return nil, err
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     -template.GoldCost,
		UsdValueCents: usdValue,
		Type:          domain.TxBuyBoost,
		Meta: map[string]interface{}{
			"template_id": template.ID,
			"expires_at":  expiresAt,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(txRecord)
	return user, nil
}

// BuyCosmetic purchases a cosmetic; a second purchase of the same item
// fails with ErrAlreadyOwned. The uniqueness check runs inside the same
// transaction that mints the instance, and the table's unique constraint
// on (owner, item) closes the remaining race.
func (s *ShopService) BuyCosmetic(ctx context.Context, userID, itemID int64) (*domain.User, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, settings, err := s.beginPurchase(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.catalog.GetCosmeticItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	owned, err := s.catalog.CosmeticOwned(ctx, tx, userID, item.ID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, ErrAlreadyOwned
	}

	if locked.GoldBalance < item.GoldCost {
		return nil, ErrInsufficientGold
	}

	usdValue, err := economy.GoldToUsdCents(item.GoldCost, settings.GoldWithdrawRate)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.CreateCosmeticInstance(ctx, tx, &domain.CosmeticInstance{
		OwnerID: userID,
		ItemID:  item.ID,
	}); err != nil {
		return nil, err
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     -item.GoldCost,
		UsdValueCents: usdValue,
		Type:          domain.TxBuyCosmetic,
		Meta:          map[string]interface{}{"item_id": item.ID},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	s.ledger.Announce(txRecord)
	return user, nil
}

// PurchaseEnergy sells a fixed energy bundle; the credited energy clamps
// at the cap.
func (s *ShopService) PurchaseEnergy(ctx context.Context, userID int64, packageKey string) (*domain.User, economy.EnergyPackage, error) {
	pkg := economy.EnergyPackageByKey(packageKey)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, pkg, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	locked, settings, err := s.beginPurchase(ctx, tx, userID)
	if err != nil {
		return nil, pkg, err
	}

	if locked.GoldBalance < pkg.GoldCost {
		return nil, pkg, ErrInsufficientGold
	}

	usdValue, err := economy.GoldToUsdCents(pkg.GoldCost, settings.GoldWithdrawRate)
	if err != nil {
		return nil, pkg, err
	}

	user, txRecord, err := s.ledger.ApplyWithTx(ctx, tx, LedgerEntry{
		UserID:        userID,
		GoldDelta:     -pkg.GoldCost,
		EnergyDelta:   pkg.Energy,
		UsdValueCents: usdValue,
		Type:          domain.TxBuyEnergy,
		Meta:          map[string]interface{}{"package": pkg.Key},
	})
	if err != nil {
		return nil, pkg, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pkg, err
	}
	s.ledger.Announce(txRecord)
	return user, pkg, nil
}
