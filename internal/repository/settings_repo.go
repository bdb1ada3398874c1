package repository

import (
	"context"

	"aurora_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// settingsID pins the singleton row.
const settingsID = 1

const settingsColumns = `gold_purchase_rate, gold_withdraw_rate, ad_daily_limit, ad_reward_gold, farm_base_multiplier, ad_verification_secret`

// SettingsRepository reads and updates the singleton economy settings row.
// Reads go straight to the database every time; operations see the rate
// in effect at their own transaction, never a stale process cache.
type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(&s.GoldPurchaseRate, &s.GoldWithdrawRate, &s.AdDailyLimit,
		&s.AdRewardGold, &s.FarmBaseMultiplier, &s.AdVerificationSecret)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns the settings row. pgx.ErrNoRows here is a server-side fatal
// precondition: every money-moving path depends on this row existing.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	return scanSettings(r.db.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM admin_settings WHERE id = $1`, settingsID))
}

// GetTx reads the settings inside an operation's transaction.
func (r *SettingsRepository) GetTx(ctx context.Context, dbTx pgx.Tx) (*domain.Settings, error) {
	return scanSettings(dbTx.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM admin_settings WHERE id = $1`, settingsID))
}

// Update applies a partial patch in place; nil fields keep their value.
// The UPDATE is a single statement, so readers never observe a torn row.
func (r *SettingsRepository) Update(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error) {
	return scanSettings(r.db.QueryRow(ctx,
		`UPDATE admin_settings SET
			gold_purchase_rate = COALESCE($1, gold_purchase_rate),
			gold_withdraw_rate = COALESCE($2, gold_withdraw_rate),
			ad_daily_limit = COALESCE($3, ad_daily_limit),
			ad_reward_gold = COALESCE($4, ad_reward_gold),
			farm_base_multiplier = COALESCE($5, farm_base_multiplier),
			ad_verification_secret = COALESCE($6, ad_verification_secret)
		 WHERE id = $7
		 RETURNING `+settingsColumns,
		patch.GoldPurchaseRate, patch.GoldWithdrawRate, patch.AdDailyLimit,
		patch.AdRewardGold, patch.FarmBaseMultiplier, patch.AdVerificationSecret,
		settingsID))
}

// Bootstrap inserts the default settings row if it does not exist yet.
func (r *SettingsRepository) Bootstrap(ctx context.Context, defaults domain.Settings) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_settings (id, `+settingsColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		settingsID, defaults.GoldPurchaseRate, defaults.GoldWithdrawRate,
		defaults.AdDailyLimit, defaults.AdRewardGold, defaults.FarmBaseMultiplier,
		defaults.AdVerificationSecret)
	return err
}
