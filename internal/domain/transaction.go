package domain

import "time"

// TransactionType - kind of ledger entry
type TransactionType string

const (
	TxPurchaseGold    TransactionType = "PURCHASE_GOLD"
	TxWithdrawGold    TransactionType = "WITHDRAW_GOLD"
	TxBuyNFT          TransactionType = "BUY_NFT"
	TxFarmReward      TransactionType = "FARM_REWARD"
	TxAdReward        TransactionType = "AD_REWARD"
	TxBuyEnergy       TransactionType = "BUY_ENERGY"
	TxBuyBoost        TransactionType = "BUY_BOOST"
	TxBattleEntry     TransactionType = "BATTLE_ENTRY"
	TxBattleReward    TransactionType = "BATTLE_REWARD"
	TxBuyBox          TransactionType = "BUY_BOX"
	TxBuyCosmetic     TransactionType = "BUY_COSMETIC"
	TxAdminAdjustment TransactionType = "ADMIN_ADJUSTMENT"
)

// Transaction is one append-only ledger entry. GoldAmount is signed
// (negative for spends); UsdCents is the signed valuation at the rate in
// effect when the entry was recorded. Rows are never updated or deleted.
type Transaction struct {
	ID         int64                  `db:"id" json:"id"`
	UserID     int64                  `db:"user_id" json:"user_id"`
	Type       TransactionType        `db:"type" json:"type"`
	GoldAmount int64                  `db:"gold_amount" json:"gold_amount"`
	UsdCents   int64                  `db:"usd_cents" json:"usd_cents"`
	Note       string                 `db:"note" json:"note,omitempty"`
	Meta       map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt  time.Time              `db:"created_at" json:"created_at"`

	// DisplayName is joined in for admin listings, not stored on the row.
	DisplayName string `db:"-" json:"display_name,omitempty"`
}
