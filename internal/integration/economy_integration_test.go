package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aurora_backend/internal/domain"
	"aurora_backend/internal/repository"
	"aurora_backend/internal/service"
	"aurora_backend/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)

	if err := repository.NewSettingsRepository(db).Bootstrap(context.Background(), domain.Settings{
		GoldPurchaseRate:     10,
		GoldWithdrawRate:     20,
		AdDailyLimit:         8,
		AdRewardGold:         5,
		FarmBaseMultiplier:   1,
		AdVerificationSecret: "test-secret",
	}); err != nil {
		t.Fatalf("bootstrap settings: %v", err)
	}
	return db
}

func registerTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	account := service.NewAccountService(db)
	username := fmt.Sprintf("itest_%d", time.Now().UnixNano())
	user, err := account.Register(context.Background(), username, "Integration Tester")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

// Each balance mutation appends exactly one ledger row, so replaying the
// ledger for a user must reproduce the live gold balance.
func TestLedgerReconciliation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	ledger := service.NewLedgerService(db, ws.NewFeed())
	wallet := service.NewWalletService(db, ledger)
	ads := service.NewAdsService(db, ledger)

	// 10 USD at rate 10 -> 100 gold, no withdrawable USD value
	gold, _, err := wallet.PurchaseGold(ctx, user.ID, 1000)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if gold != 100 {
		t.Fatalf("expected 100 gold credited, got %d", gold)
	}

	// purchased gold carries no USD backing so withdrawing it is refused
	if _, _, err := wallet.WithdrawGold(ctx, user.ID, 40); err != service.ErrInsufficientUsd {
		t.Fatalf("expected ErrInsufficientUsd, got %v", err)
	}

	// earn 5 gold (+USD value) via an ad reward, then withdraw it
	started, err := ads.Start(ctx, user.ID)
	if err != nil {
		t.Fatalf("ad start: %v", err)
	}
	earned, err := ads.Complete(ctx, user.ID, started.Token, started.Signature, "UnityAds")
	if err != nil {
		t.Fatalf("ad complete: %v", err)
	}

	usdCents, _, err := wallet.WithdrawGold(ctx, user.ID, earned.RewardGold)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if usdCents != earned.UsdCents {
		t.Fatalf("payout %d does not match earned value %d", usdCents, earned.UsdCents)
	}

	current, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	ledgerSum, err := repository.NewTransactionRepository(db).SumGoldForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if current.GoldBalance != ledgerSum {
		t.Fatalf("balance %d diverged from ledger sum %d", current.GoldBalance, ledgerSum)
	}
	if current.GoldBalance != 100 {
		t.Fatalf("expected 100 gold after earn and withdraw, got %d", current.GoldBalance)
	}
	if current.UsdCents != 0 {
		t.Fatalf("expected 0 usd cents after withdrawing earnings, got %d", current.UsdCents)
	}
}

func TestWithdrawInsufficientGold(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	ledger := service.NewLedgerService(db, ws.NewFeed())
	wallet := service.NewWalletService(db, ledger)

	if _, _, err := wallet.WithdrawGold(ctx, user.ID, 1000); err != service.ErrInsufficientGold {
		t.Fatalf("expected ErrInsufficientGold, got %v", err)
	}

	// a failed withdraw leaves no ledger row behind
	sum, err := repository.NewTransactionRepository(db).SumGoldForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected empty ledger, got sum %d", sum)
	}
}

// A signed ad token pays out exactly once no matter how many times the
// client retries completion.
func TestAdRewardIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	ledger := service.NewLedgerService(db, ws.NewFeed())
	ads := service.NewAdsService(db, ledger)

	started, err := ads.Start(ctx, user.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	first, err := ads.Complete(ctx, user.ID, started.Token, started.Signature, "UnityAds")
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if first.RewardGold != started.RewardGold {
		t.Fatalf("reward %d does not match issued %d", first.RewardGold, started.RewardGold)
	}

	if _, err := ads.Complete(ctx, user.ID, started.Token, started.Signature, "UnityAds"); err != service.ErrAlreadyRedeemed {
		t.Fatalf("expected ErrAlreadyRedeemed on replay, got %v", err)
	}

	sum, err := repository.NewTransactionRepository(db).SumGoldForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if sum != started.RewardGold {
		t.Fatalf("expected single payout of %d, ledger sums to %d", started.RewardGold, sum)
	}
}

// Opening a box posts one net ledger entry, so the ledger keeps summing
// to the live balance whatever the box paid out.
func TestBoxOpenKeepsLedgerConsistent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	ledger := service.NewLedgerService(db, ws.NewFeed())
	wallet := service.NewWalletService(db, ledger)
	boxes := service.NewBoxService(db, ledger)

	if _, _, err := wallet.PurchaseGold(ctx, user.ID, 10000); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := boxes.Open(ctx, user.ID, "bronze"); err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
	}

	current, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	ledgerSum, err := repository.NewTransactionRepository(db).SumGoldForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if current.GoldBalance != ledgerSum {
		t.Fatalf("balance %d diverged from ledger sum %d", current.GoldBalance, ledgerSum)
	}
}

func TestCosmeticPurchaseIsUnique(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	var itemID int64
	err := db.QueryRow(ctx, `
		INSERT INTO cosmetic_items (name, description, gold_cost, image_url)
		VALUES ($1, '', 10, '')
		ON CONFLICT (name) DO UPDATE SET gold_cost = EXCLUDED.gold_cost
		RETURNING id`,
		fmt.Sprintf("itest_cosmetic_%d", time.Now().UnixNano())).Scan(&itemID)
	if err != nil {
		t.Fatalf("seed cosmetic: %v", err)
	}

	ledger := service.NewLedgerService(db, ws.NewFeed())
	wallet := service.NewWalletService(db, ledger)
	shop := service.NewShopService(db, ledger)

	if _, _, err := wallet.PurchaseGold(ctx, user.ID, 1000); err != nil {
		t.Fatalf("purchase gold: %v", err)
	}

	if _, err := shop.BuyCosmetic(ctx, user.ID, itemID); err != nil {
		t.Fatalf("first buy: %v", err)
	}
	if _, err := shop.BuyCosmetic(ctx, user.ID, itemID); err != service.ErrAlreadyOwned {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

// The daily quota counts consumed views, gates both token issuance and
// redemption, and is re-checked inside the redeem transaction so a token
// issued under quota cannot be cashed after the quota fills.
func TestAdDailyLimit(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	current := time.Now()
	ledger := service.NewLedgerService(db, ws.NewFeed())
	ads := service.NewAdsServiceWithClock(db, ledger, func() time.Time { return current })

	// issued while the quota is open, redeemed after it fills
	spare, err := ads.Start(ctx, user.ID)
	if err != nil {
		t.Fatalf("start spare: %v", err)
	}

	for i := 0; i < 8; i++ {
		started, err := ads.Start(ctx, user.ID)
		if err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		if _, err := ads.Complete(ctx, user.ID, started.Token, started.Signature, "UnityAds"); err != nil {
			t.Fatalf("complete %d: %v", i, err)
		}
	}

	if _, err := ads.Start(ctx, user.ID); err != service.ErrDailyLimitReached {
		t.Fatalf("expected ErrDailyLimitReached on 9th start, got %v", err)
	}
	if _, err := ads.Complete(ctx, user.ID, spare.Token, spare.Signature, "UnityAds"); err != service.ErrDailyLimitReached {
		t.Fatalf("expected ErrDailyLimitReached redeeming spare token, got %v", err)
	}

	views, err := ads.ViewsToday(ctx, user.ID)
	if err != nil {
		t.Fatalf("views today: %v", err)
	}
	if views != 8 {
		t.Fatalf("expected 8 consumed views, got %d", views)
	}
	sum, err := repository.NewTransactionRepository(db).SumGoldForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if sum != 8*5 {
		t.Fatalf("expected 8 payouts of 5 gold, ledger sums to %d", sum)
	}
}

// Claiming credits the accrued gold once and resets the farm clock, so
// an immediate re-claim finds nothing.
func TestFarmClaimResetsAccrual(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	current := time.Now()
	ledger := service.NewLedgerService(db, ws.NewFeed())
	farm := service.NewFarmServiceWithClock(db, ledger, func() time.Time { return current })

	// no NFTs yet, nothing accrues
	if _, err := farm.Claim(ctx, user.ID); err != service.ErrNothingToClaim {
		t.Fatalf("expected ErrNothingToClaim without NFTs, got %v", err)
	}

	var templateID int64
	err := db.QueryRow(ctx, `
		INSERT INTO nft_templates (name, rarity, gold_per_hour, base_price_gold)
		VALUES ($1, 'COMMON', 10, 100)
		ON CONFLICT (name) DO UPDATE SET gold_per_hour = EXCLUDED.gold_per_hour
		RETURNING id`,
		fmt.Sprintf("itest_nft_%d", time.Now().UnixNano())).Scan(&templateID)
	if err != nil {
		t.Fatalf("seed template: %v", err)
	}
	if _, err := db.Exec(ctx, `
		INSERT INTO nft_instances (owner_id, template_id) VALUES ($1, $2)`,
		user.ID, templateID); err != nil {
		t.Fatalf("seed instance: %v", err)
	}

	base := current
	if _, err := db.Exec(ctx, `
		UPDATE users SET farm_last_claimed_at = $1 WHERE id = $2`,
		base, user.ID); err != nil {
		t.Fatalf("set last claim: %v", err)
	}

	// 4 hours at 10 gold/hour, base multiplier 1
	current = base.Add(4 * time.Hour)
	claimed, err := farm.Claim(ctx, user.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Farm.Gold != 40 {
		t.Fatalf("expected 40 gold claimed, got %d", claimed.Farm.Gold)
	}

	// the claim reset the clock, so nothing is left at the same instant
	if _, err := farm.Claim(ctx, user.ID); err != service.ErrNothingToClaim {
		t.Fatalf("expected ErrNothingToClaim right after claiming, got %v", err)
	}

	currentUser, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	ledgerSum, err := repository.NewTransactionRepository(db).SumGoldForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if currentUser.GoldBalance != 40 || ledgerSum != 40 {
		t.Fatalf("expected balance and ledger sum of 40, got %d and %d",
			currentUser.GoldBalance, ledgerSum)
	}
}

func TestAdCompleteRejectsBadSignature(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	user := registerTestUser(t, db)

	ledger := service.NewLedgerService(db, ws.NewFeed())
	ads := service.NewAdsService(db, ledger)

	started, err := ads.Start(ctx, user.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := ads.Complete(ctx, user.ID, started.Token, "forged", "UnityAds"); err != service.ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}
