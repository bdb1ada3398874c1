package domain

// Settings is the singleton economy configuration (one row, fixed id).
// It is read by nearly every money-moving operation and mutated only
// through the admin path. Created once at bootstrap, never deleted.
type Settings struct {
	GoldPurchaseRate     float64 `db:"gold_purchase_rate" json:"gold_purchase_rate"`
	GoldWithdrawRate     float64 `db:"gold_withdraw_rate" json:"gold_withdraw_rate"`
	AdDailyLimit         int     `db:"ad_daily_limit" json:"ad_daily_limit"`
	AdRewardGold         int64   `db:"ad_reward_gold" json:"ad_reward_gold"`
	FarmBaseMultiplier   float64 `db:"farm_base_multiplier" json:"farm_base_multiplier"`
	AdVerificationSecret string  `db:"ad_verification_secret" json:"-"`
}

// SettingsPatch carries a partial admin update; nil fields are left as-is.
type SettingsPatch struct {
	GoldPurchaseRate     *float64 `json:"gold_purchase_rate"`
	GoldWithdrawRate     *float64 `json:"gold_withdraw_rate"`
	AdDailyLimit         *int     `json:"ad_daily_limit"`
	AdRewardGold         *int64   `json:"ad_reward_gold"`
	FarmBaseMultiplier   *float64 `json:"farm_base_multiplier"`
	AdVerificationSecret *string  `json:"ad_verification_secret"`
}
